// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"fmt"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context) ([]Message, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO contacts (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	if err := r.db.QueryRowxContext(ctx, query, m.ID, m.Name, m.Email, m.Message).
		Scan(&m.CreatedAt); err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]Message, error) {
	var messages []Message
	query := `SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return messages, nil
}
