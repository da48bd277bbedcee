// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	ListActive(ctx context.Context, page core.PageParams) ([]Product, int, error)
	SearchByName(ctx context.Context, categoryID, name string) ([]Product, error)
	Filter(ctx context.Context, params FilterParams) ([]Product, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, description, price, stock, category_id,
	sub_category, image, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products
			(id, name, description, price, stock, category_id, sub_category, image, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock,
		p.CategoryID, p.SubCategory, p.Image, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

// GetByID returns the product whatever its status.
func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, core.NotFoundOr("get product", err)
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    category_id = $6, sub_category = $7, image = $8, status = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock,
		p.CategoryID, p.SubCategory, p.Image, p.Status,
	)
	if err != nil {
		return core.NotFoundOr("update product", err)
	}

	return nil
}

func (r *repository) ListActive(
	ctx context.Context,
	page core.PageParams,
) ([]Product, int, error) {
	page.Normalize()

	var total int
	countQuery := `SELECT COUNT(*) FROM products WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, core.StatusActive); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query,
		core.StatusActive, page.PageSize, page.Offset(),
	); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

// SearchByName matches a case-insensitive substring of the product name.
func (r *repository) SearchByName(
	ctx context.Context,
	categoryID, name string,
) ([]Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category_id = $1 AND status = $2 AND name ILIKE $3
		ORDER BY name`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query,
		categoryID, core.StatusActive, "%"+core.EscapeLike(name)+"%",
	); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	return products, nil
}

func (r *repository) Filter(ctx context.Context, params FilterParams) ([]Product, error) {
	query, args := buildFilterQuery(params)

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}

	return products, nil
}

// buildFilterQuery renders the WHERE clause for the bounds that are set.
func buildFilterQuery(params FilterParams) (string, []any) {
	conditions := []string{"category_id = $1", "status = $2"}
	args := []any{params.CategoryID, core.StatusActive}

	add := func(clause string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if params.SubCategory != "" {
		add("sub_category = $%d", params.SubCategory)
	}
	if params.MinPrice != nil {
		add("price >= $%d", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		add("price <= $%d", *params.MaxPrice)
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY price, name`

	return query, args
}
