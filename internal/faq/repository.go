// AngelaMos | 2026
// repository.go

package faq

import (
	"context"
	"fmt"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	ListActive(ctx context.Context) ([]Entry, error)
	Update(ctx context.Context, e *Entry) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const entryColumns = `id, question, answer, status, created_at, updated_at`

func (r *repository) Create(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO faqs (id, question, answer, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	if err := r.db.QueryRowxContext(ctx, query, e.ID, e.Question, e.Answer, e.Status).
		Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("create faq: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	query := `SELECT ` + entryColumns + ` FROM faqs WHERE id = $1`
	if err := r.db.GetContext(ctx, &e, query, id); err != nil {
		return nil, core.NotFoundOr("get faq", err)
	}
	return &e, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	query := `SELECT ` + entryColumns + ` FROM faqs WHERE status = 'active' ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	return entries, nil
}

func (r *repository) Update(ctx context.Context, e *Entry) error {
	query := `
		UPDATE faqs
		SET question = $2, answer = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	if err := r.db.GetContext(ctx, &e.UpdatedAt, query, e.ID, e.Question, e.Answer, e.Status); err != nil {
		return core.NotFoundOr("update faq", err)
	}
	return nil
}
