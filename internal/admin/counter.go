// AngelaMos | 2026
// counter.go

package admin

import (
	"context"
	"fmt"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type CatalogCounts struct {
	Users    int `db:"users"`
	Products int `db:"products"`
}

type CatalogCounter interface {
	Counts(ctx context.Context) (*CatalogCounts, error)
}

type catalogCounter struct {
	db core.DBTX
}

func NewCatalogCounter(db core.DBTX) CatalogCounter {
	return &catalogCounter{db: db}
}

// Counts reports registered users and active products.
func (c *catalogCounter) Counts(ctx context.Context) (*CatalogCounts, error) {
	var counts CatalogCounts
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM products WHERE status = 'active') AS products`
	if err := c.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("catalog counts: %w", err)
	}
	return &counts, nil
}
