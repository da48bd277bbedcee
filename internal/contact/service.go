// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Message, error) {
	m := &Message{
		ID:      uuid.New().String(),
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: strings.TrimSpace(req.Message),
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, fmt.Errorf("create contact: %w", core.ValidationError("All fields are required"))
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns every message, newest first.
func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.repo.List(ctx)
}
