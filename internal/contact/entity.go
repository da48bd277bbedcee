// AngelaMos | 2026
// entity.go

package contact

import (
	"time"
)

// Message is a note left through the public contact form.
type Message struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
