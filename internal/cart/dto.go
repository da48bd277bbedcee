// AngelaMos | 2026
// dto.go

package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,min=1,max=1000"`
}

type UpdateQuantityRequest struct {
	Action Action `json:"action"`
}

type ItemResponse struct {
	ProductID string             `json:"productId"`
	Quantity  int                `json:"quantity"`
	Price     decimal.Decimal    `json:"price"`
	Product   ProductSummaryView `json:"product"`
}

type ProductSummaryView struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type CartResponse struct {
	ID         string          `json:"id"`
	User       string          `json:"user"`
	Products   []ItemResponse  `json:"products"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type SummaryLine struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Summary struct {
	TotalItems     int             `json:"totalItems"`
	UniqueProducts int             `json:"uniqueProducts"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	Products       []SummaryLine   `json:"products"`
}

func ToCartResponse(c *Cart) CartResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Product: ProductSummaryView{
				Name:  item.Product.Name,
				Price: item.Product.Price,
				Image: item.Product.Image,
			},
		})
	}

	return CartResponse{
		ID:         c.ID,
		User:       c.UserID,
		Products:   items,
		TotalPrice: c.TotalPrice,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
