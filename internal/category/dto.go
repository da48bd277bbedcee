// AngelaMos | 2026
// dto.go

package category

import (
	"time"
)

type AddCategoryRequest struct {
	Name        string   `json:"name"        validate:"required,max=50"`
	Description string   `json:"description" validate:"max=1000"`
	SubCategory []string `json:"subCategory" validate:"omitempty,dive,required,max=100"`
}

type UpdateCategoryRequest struct {
	Name        *string   `json:"name,omitempty"        validate:"omitempty,max=50"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=1000"`
	SubCategory *[]string `json:"subCategory,omitempty" validate:"omitempty,dive,required,max=100"`
}

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SubCategory []string  `json:"subCategory"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToCategoryResponse(c *Category) CategoryResponse {
	sub := []string(c.SubCategories)
	if sub == nil {
		sub = []string{}
	}

	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SubCategory: sub,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, ToCategoryResponse(&categories[i]))
	}
	return out
}
