// AngelaMos | 2026
// entity.go

package category

import (
	"time"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

const (
	NameMen   = "men"
	NameWomen = "women"
)

type Category struct {
	ID            string            `db:"id"`
	Name          string            `db:"name"`
	Description   string            `db:"description"`
	SubCategories core.StringList   `db:"sub_categories"`
	Status        core.RecordStatus `db:"status"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}

func (c *Category) IsDeleted() bool {
	return c.Status.IsDeleted()
}

// IsAllowedName reports whether name is in the closed category set.
func IsAllowedName(name string) bool {
	return name == NameMen || name == NameWomen
}
