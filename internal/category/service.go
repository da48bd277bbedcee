// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

var errNameNotAllowed = core.ValidationError(`name should be ["men" or "women"]`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.repo.ListActive(ctx)
}

// GetCategory returns an active category. Deleted ones are not found.
func (s *Service) GetCategory(ctx context.Context, id string) (*Category, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, fmt.Errorf("get category: %w", core.ValidationError("invalid category id"))
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}

	return c, nil
}

// FindByName resolves an active category from its name, case-insensitively.
func (s *Service) FindByName(ctx context.Context, name string) (*Category, error) {
	c, err := s.repo.GetByName(ctx, NormalizeName(name))
	if err != nil {
		return nil, err
	}
	if c.IsDeleted() {
		return nil, fmt.Errorf("find category: %w", core.ErrNotFound)
	}
	return c, nil
}

// AddCategory creates a category, or un-deletes a soft-deleted one of the
// same name and overwrites its description and sub-categories. The
// returned flag is true when an existing category was restored.
func (s *Service) AddCategory(ctx context.Context, req AddCategoryRequest) (*Category, bool, error) {
	name := NormalizeName(req.Name)
	if name == "" {
		return nil, false, fmt.Errorf("add category: %w",
			core.ValidationError("Category name is required, please try again"))
	}
	if !IsAllowedName(name) {
		return nil, false, fmt.Errorf("add category: %w", errNameNotAllowed)
	}

	existing, err := s.repo.GetByName(ctx, name)
	switch {
	case err == nil && existing.IsDeleted():
		existing.Status = core.StatusActive
		existing.Description = req.Description
		existing.SubCategories = req.SubCategory
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, true, nil
	case err == nil:
		return nil, false, fmt.Errorf("add category: %w",
			core.ConflictError("This category already exists, please try again"))
	case !errors.Is(err, core.ErrNotFound):
		return nil, false, err
	}

	c := &Category{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   req.Description,
		SubCategories: req.SubCategory,
		Status:        core.StatusActive,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, false, fmt.Errorf("add category: %w",
				core.ConflictError("This category already exists, please try again"))
		}
		return nil, false, err
	}

	return c, false, nil
}

func (s *Service) UpdateCategory(
	ctx context.Context,
	id string,
	req UpdateCategoryRequest,
) (*Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := NormalizeName(*req.Name)
		if !IsAllowedName(name) {
			return nil, fmt.Errorf("update category: %w", errNameNotAllowed)
		}
		c.Name = name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.SubCategory != nil {
		c.SubCategories = *req.SubCategory
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("update category: %w",
				core.ConflictError("a category with this name already exists"))
		}
		return nil, err
	}

	return c, nil
}

func (s *Service) SoftDeleteCategory(ctx context.Context, id string) (*Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Status = core.StatusDeleted
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
