// AngelaMos | 2026
// entity.go

package faq

import (
	"time"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Entry struct {
	ID        string            `db:"id"`
	Question  string            `db:"question"`
	Answer    string            `db:"answer"`
	Status    core.RecordStatus `db:"status"`
	CreatedAt time.Time         `db:"created_at"`
	UpdatedAt time.Time         `db:"updated_at"`
}

type AddRequest struct {
	Question string `json:"question" validate:"max=1000"`
	Answer   string `json:"answer"   validate:"max=5000"`
}

type UpdateRequest struct {
	Question *string `json:"question,omitempty" validate:"omitempty,min=1,max=1000"`
	Answer   *string `json:"answer,omitempty"   validate:"omitempty,min=1,max=5000"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToEntryResponse(e *Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Question:  e.Question,
		Answer:    e.Answer,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToEntryResponseList(entries []Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToEntryResponse(&entries[i]))
	}
	return out
}
