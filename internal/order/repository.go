// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

// Tx is the set of writes a checkout performs atomically.
type Tx interface {
	// LockProduct reads a product row and holds its lock until the
	// transaction ends.
	LockProduct(ctx context.Context, id string) (*StockRow, error)
	// DecrementStock lowers stock only when enough remains, failing with
	// core.ErrInsufficientStock otherwise.
	DecrementStock(ctx context.Context, id string, quantity int) error
	InsertOrder(ctx context.Context, o *Order) error
}

type Repository interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Overview(ctx context.Context) (*Overview, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&checkoutTx{tx: tx})
	})
}

type checkoutTx struct {
	tx *sqlx.Tx
}

func (c *checkoutTx) LockProduct(ctx context.Context, id string) (*StockRow, error) {
	var row StockRow
	query := `
		SELECT id, name, price, stock, status
		FROM products
		WHERE id = $1
		FOR UPDATE`
	if err := c.tx.GetContext(ctx, &row, query, id); err != nil {
		return nil, core.NotFoundOr("lock product", err)
	}
	return &row, nil
}

func (c *checkoutTx) DecrementStock(ctx context.Context, id string, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2`

	res, err := c.tx.ExecContext(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("decrement stock: %w", core.ErrInsufficientStock)
	}

	return nil
}

func (c *checkoutTx) InsertOrder(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (id, user_id, total_price, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := c.tx.QueryRowxContext(ctx, query, o.ID, o.UserID, o.TotalPrice, o.Status).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, position, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	for i, item := range o.Items {
		if _, err := c.tx.ExecContext(ctx, itemQuery,
			o.ID, item.ProductID, i, item.Quantity, item.Price,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return nil
}

const orderSelect = `
	SELECT o.id, o.user_id, o.total_price, o.status, o.created_at, o.updated_at,
	       COALESCE(u.user_name, '') AS "owner.user_name",
	       COALESCE(u.email, '')     AS "owner.email"
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id`

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := r.db.GetContext(ctx, &o, orderSelect+` WHERE o.id = $1`, id); err != nil {
		return nil, core.NotFoundOr("get order", err)
	}

	orders := []Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, orderSelect+` ORDER BY o.created_at DESC`); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	query := orderSelect + ` WHERE o.user_id = $1 ORDER BY o.created_at DESC`
	if err := r.db.SelectContext(ctx, &orders, query, userID); err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the lines of all given orders in one query.
func (r *repository) attachItems(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
	}

	query := `
		SELECT oi.order_id, oi.product_id, oi.quantity, oi.price,
		       p.name  AS "product.name",
		       p.price AS "product.price"
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.order_id, oi.position`

	var items []Item
	if err := r.db.SelectContext(ctx, &items, query, ids); err != nil {
		return fmt.Errorf("load order items: %w", err)
	}

	for _, item := range items {
		i := index[item.OrderID]
		orders[i].Items = append(orders[i].Items, item)
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return requireRow(res, "update order status")
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return requireRow(res, "delete order")
}

func (r *repository) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview
	query := `SELECT COUNT(*) AS orders, COALESCE(SUM(total_price), 0) AS revenue FROM orders`
	if err := r.db.GetContext(ctx, &ov, query); err != nil {
		return nil, fmt.Errorf("order overview: %w", err)
	}
	return &ov, nil
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireRow(res rowsAffecter, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}
