// AngelaMos | 2026
// repository_test.go

package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

func TestBuildFilterQuery(t *testing.T) {
	lo := decimal.NewFromInt(10)
	hi := decimal.NewFromInt(50)

	tests := []struct {
		name     string
		params   FilterParams
		contains []string
		absent   []string
		args     []any
	}{
		{
			name:     "category only",
			params:   FilterParams{CategoryID: "c1"},
			contains: []string{"category_id = $1", "status = $2"},
			absent:   []string{"sub_category =", "price >=", "price <="},
			args:     []any{"c1", core.StatusActive},
		},
		{
			name:     "all bounds",
			params:   FilterParams{CategoryID: "c1", SubCategory: "shirts", MinPrice: &lo, MaxPrice: &hi},
			contains: []string{"sub_category = $3", "price >= $4", "price <= $5"},
			args:     []any{"c1", core.StatusActive, "shirts", lo, hi},
		},
		{
			name:     "max only",
			params:   FilterParams{CategoryID: "c1", MaxPrice: &hi},
			contains: []string{"price <= $3"},
			absent:   []string{"price >=", "sub_category ="},
			args:     []any{"c1", core.StatusActive, hi},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildFilterQuery(tt.params)
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, query, s)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}
