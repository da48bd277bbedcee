// AngelaMos | 2026
// dto.go

package contact

import (
	"time"
)

type CreateRequest struct {
	Name    string `json:"name"    validate:"max=200"`
	Email   string `json:"email"   validate:"omitempty,email,max=320"`
	Message string `json:"message" validate:"max=5000"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
