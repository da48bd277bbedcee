// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name        string           `json:"name"        validate:"required,max=200"`
	Description string           `json:"description" validate:"max=5000"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	Stock       *int             `json:"stock"       validate:"required,gte=0"`
	Category    string           `json:"category"    validate:"required"`
	SubCategory string           `json:"subCategory" validate:"max=100"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"        validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"       validate:"omitempty,gte=0"`
	Category    *string          `json:"category,omitempty"`
	SubCategory *string          `json:"subCategory,omitempty" validate:"omitempty,max=100"`
}

type FilterRequest struct {
	Category    string           `json:"category"    validate:"required"`
	SubCategory string           `json:"subCategory" validate:"max=100"`
	MinPrice    *decimal.Decimal `json:"minPrice"`
	MaxPrice    *decimal.Decimal `json:"maxPrice"`
}

// ImageUpload is an optional image submitted alongside a product.
type ImageUpload struct {
	Filename string
	Content  []byte
}

type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	SubCategory string          `json:"subCategory"`
	Image       string          `json:"image"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func ToProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.CategoryID,
		SubCategory: p.SubCategory,
		Image:       p.Image,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
