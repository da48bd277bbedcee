// AngelaMos | 2026
// entity.go

package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

// Cart is the single shopping cart of a user. A persisted cart always
// holds at least one item.
type Cart struct {
	ID         string          `db:"id"`
	UserID     string          `db:"user_id"`
	TotalPrice decimal.Decimal `db:"total"`
	Items      []Item          `db:"-"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// Item is a cart line. Price is captured when the product is first added;
// Product carries current catalog details joined on read.
type Item struct {
	ProductID string          `db:"product_id"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	Product   ProductDetails  `db:"product"`
}

type ProductDetails struct {
	Name  string          `db:"name"`
	Price decimal.Decimal `db:"price"`
	Image string          `db:"image"`
	Stock int             `db:"stock"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Recalculate sets TotalPrice to the sum of quantity × captured price.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(core.LineTotal(item.Price, item.Quantity))
	}
	c.TotalPrice = total
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
)

func (a Action) Valid() bool {
	return a == ActionIncrease || a == ActionDecrease
}
