// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"fmt"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	GetByName(ctx context.Context, name string) (*Category, error)
	ListActive(ctx context.Context) ([]Category, error)
	Update(ctx context.Context, c *Category) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name, description, sub_categories, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (id, name, description, sub_categories, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		c.ID, c.Name, c.Description, c.SubCategories, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create category: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// GetByID returns the category whatever its status.
func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	var c Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return nil, core.NotFoundOr("get category", err)
	}
	return &c, nil
}

// GetByName returns the category whatever its status.
func (r *repository) GetByName(ctx context.Context, name string) (*Category, error) {
	var c Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	if err := r.db.GetContext(ctx, &c, query, name); err != nil {
		return nil, core.NotFoundOr("get category by name", err)
	}
	return &c, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE status = $1
		ORDER BY name`

	categories := []Category{}
	if err := r.db.SelectContext(ctx, &categories, query, core.StatusActive); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Update overwrites every mutable column, status included.
func (r *repository) Update(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, sub_categories = $4, status = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID, c.Name, c.Description, c.SubCategories, c.Status,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("update category: %w", core.ErrDuplicateKey)
		}
		return core.NotFoundOr("update category", err)
	}

	return nil
}
