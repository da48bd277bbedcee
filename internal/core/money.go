// AngelaMos | 2026
// money.go

package core

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are emitted as JSON numbers, matching what storefront clients
	// already parse.
	decimal.MarshalJSONWithoutQuotes = true
}

// LineTotal returns price × quantity rounded to cents.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
