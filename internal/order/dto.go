// AngelaMos | 2026
// dto.go

package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1,max=1000"`
}

type CreateOrderRequest struct {
	Products []LineItemRequest `json:"products" validate:"dive"`
}

func (r CreateOrderRequest) LineItems() []LineItem {
	items := make([]LineItem, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, LineItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	return items
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"max=50"`
}

type OwnerResponse struct {
	ID       string `json:"id"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
}

type ItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID         string          `json:"id"`
	User       OwnerResponse   `json:"user"`
	Products   []ItemResponse  `json:"products"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func ToOrderResponse(o *Order) OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return OrderResponse{
		ID: o.ID,
		User: OwnerResponse{
			ID:       o.UserID,
			UserName: o.Owner.UserName,
			Email:    o.Owner.Email,
		},
		Products:   items,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func ToOrderResponseList(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out
}
