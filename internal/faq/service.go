// AngelaMos | 2026
// service.go

package faq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

var errInvalidID = core.ValidationError("Invalid FAQ id")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns active entries, newest first.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("list faqs: %w", core.NotFoundMessage("FAQ is empty"))
	}
	return entries, nil
}

func (s *Service) Add(ctx context.Context, req AddRequest) (*Entry, error) {
	e := &Entry{
		ID:       uuid.New().String(),
		Question: strings.TrimSpace(req.Question),
		Answer:   strings.TrimSpace(req.Answer),
		Status:   core.StatusActive,
	}
	if e.Question == "" || e.Answer == "" {
		return nil, fmt.Errorf("add faq: %w", core.ValidationError("All fields are required"))
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error) {
	e, err := s.loadActive(ctx, id, "FAQ not found")
	if err != nil {
		return nil, err
	}

	if req.Question != nil {
		e.Question = strings.TrimSpace(*req.Question)
	}
	if req.Answer != nil {
		e.Answer = strings.TrimSpace(*req.Answer)
	}
	if e.Question == "" || e.Answer == "" {
		return nil, fmt.Errorf("update faq: %w", core.ValidationError("question and answer cannot be empty"))
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string) (*Entry, error) {
	e, err := s.loadActive(ctx, id, fmt.Sprintf("Question with id %s not found", id))
	if err != nil {
		return nil, err
	}

	e.Status = core.StatusDeleted
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) loadActive(ctx context.Context, id, notFound string) (*Entry, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, fmt.Errorf("load faq: %w", errInvalidID)
	}

	e, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) || (err == nil && e.Status.IsDeleted()) {
		return nil, fmt.Errorf("load faq: %w", core.NotFoundMessage(notFound))
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}
