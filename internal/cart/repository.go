// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Repository interface {
	GetByUser(ctx context.Context, userID string) (*Cart, error)
	// Save upserts the cart row and replaces its items.
	Save(ctx context.Context, c *Cart) error
	DeleteByUser(ctx context.Context, userID string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUser(ctx context.Context, userID string) (*Cart, error) {
	var c Cart
	query := `
		SELECT id, user_id, total, created_at, updated_at
		FROM carts
		WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &c, query, userID); err != nil {
		return nil, core.NotFoundOr("get cart", err)
	}

	itemsQuery := `
		SELECT ci.product_id, ci.quantity, ci.price,
		       p.name  AS "product.name",
		       p.price AS "product.price",
		       p.image AS "product.image",
		       p.stock AS "product.stock"
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.position`
	if err := r.db.SelectContext(ctx, &c.Items, itemsQuery, c.ID); err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}

	return &c, nil
}

func (r *repository) Save(ctx context.Context, c *Cart) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		upsert := `
			INSERT INTO carts (id, user_id, total)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET total = EXCLUDED.total, updated_at = NOW()
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, upsert, c.ID, c.UserID, c.TotalPrice).
			Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("upsert cart: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, c.ID); err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}

		insert := `
			INSERT INTO cart_items (cart_id, product_id, position, quantity, price)
			VALUES ($1, $2, $3, $4, $5)`
		for i, item := range c.Items {
			if _, err := tx.ExecContext(ctx, insert,
				c.ID, item.ProductID, i, item.Quantity, item.Price,
			); err != nil {
				return fmt.Errorf("insert cart item: %w", err)
			}
		}

		return nil
	})
}

func (r *repository) DeleteByUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete cart: %w", core.ErrNotFound)
	}

	return nil
}
