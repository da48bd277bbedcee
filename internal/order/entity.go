// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	ID         string          `db:"id"`
	UserID     string          `db:"user_id"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Status     string          `db:"status"`
	Owner      Owner           `db:"owner"`
	Items      []Item          `db:"-"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// Owner is the ordering user as joined on read.
type Owner struct {
	UserName string `db:"user_name"`
	Email    string `db:"email"`
}

// Item is an order line. Price is the snapshot taken at checkout.
type Item struct {
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	Product   ProductRef      `db:"product"`
}

type ProductRef struct {
	Name  string          `db:"name"`
	Price decimal.Decimal `db:"price"`
}

// LineItem is one requested product of a checkout.
type LineItem struct {
	ProductID string
	Quantity  int
}

// StockRow is a product row read under lock during checkout.
type StockRow struct {
	ID     string          `db:"id"`
	Name   string          `db:"name"`
	Price  decimal.Decimal `db:"price"`
	Stock  int             `db:"stock"`
	Status string          `db:"status"`
}

// Overview aggregates order figures for the admin dashboard.
type Overview struct {
	Orders  int             `db:"orders"`
	Revenue decimal.Decimal `db:"revenue"`
}
