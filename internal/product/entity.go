// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Product struct {
	ID          string            `db:"id"           json:"id"`
	Name        string            `db:"name"         json:"name"`
	Description string            `db:"description"  json:"description"`
	Price       decimal.Decimal   `db:"price"        json:"price"`
	Stock       int               `db:"stock"        json:"stock"`
	CategoryID  string            `db:"category_id"  json:"categoryId"`
	SubCategory string            `db:"sub_category" json:"subCategory"`
	Image       string            `db:"image"        json:"image"`
	Status      core.RecordStatus `db:"status"       json:"status"`
	CreatedAt   time.Time         `db:"created_at"   json:"createdAt"`
	UpdatedAt   time.Time         `db:"updated_at"   json:"updatedAt"`
}

func (p *Product) IsDeleted() bool {
	return p.Status.IsDeleted()
}

// FilterParams narrows a category listing. Nil bounds are not applied.
type FilterParams struct {
	CategoryID  string
	SubCategory string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}
