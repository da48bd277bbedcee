// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/category"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

// CategoryResolver is the part of the category service products need.
type CategoryResolver interface {
	GetCategory(ctx context.Context, id string) (*category.Category, error)
	FindByName(ctx context.Context, name string) (*category.Category, error)
}

const sharedReadTimeout = 5 * time.Second

type Service struct {
	repo       Repository
	categories CategoryResolver
	cache      Cache
	images     ImageStore
	sfg        singleflight.Group
}

func NewService(
	repo Repository,
	categories CategoryResolver,
	cache Cache,
	images ImageStore,
) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		cache:      cache,
		images:     images,
	}
}

func (s *Service) ListProducts(ctx context.Context, page core.PageParams) ([]Product, int, error) {
	return s.repo.ListActive(ctx, page)
}

// GetProduct returns an active product, reading through the cache.
// Concurrent misses for one id share a single database read, which runs
// detached from the first caller's cancellation. Cached stock may lag the
// database; stock checks use GetCurrentProduct.
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, fmt.Errorf("get product: %w", core.ValidationError("invalid product id"))
	}

	v, err, _ := s.sfg.Do(id, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedReadTimeout)
		defer cancel()

		p, err := s.cache.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			slog.WarnContext(ctx, "product cache read failed", "product_id", id, "error", err)
		}

		p, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, p); err != nil {
			slog.WarnContext(ctx, "product cache write failed", "product_id", id, "error", err)
		}

		return p, nil
	})
	if err != nil {
		return nil, err
	}

	p, ok := v.(*Product)
	if !ok {
		return nil, fmt.Errorf("get product: unexpected cache value %T", v)
	}
	if p.IsDeleted() {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}

	cp := *p
	return &cp, nil
}

// AddProduct creates a product. baseURL prefixes the link of an uploaded
// image.
func (s *Service) AddProduct(
	ctx context.Context,
	req CreateProductRequest,
	image *ImageUpload,
	baseURL string,
) (*Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("add product: %w", core.ValidationError("price must not be negative"))
	}

	c, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	p := &Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       *req.Stock,
		CategoryID:  c.ID,
		SubCategory: strings.TrimSpace(req.SubCategory),
		Status:      core.StatusActive,
	}

	if image != nil {
		url, err := s.storeImage(ctx, *image, baseURL)
		if err != nil {
			return nil, err
		}
		p.Image = url
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) UpdateProduct(
	ctx context.Context,
	id string,
	req UpdateProductRequest,
	image *ImageUpload,
	baseURL string,
) (*Product, error) {
	p, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("update product: %w", core.ValidationError("price must not be negative"))
		}
		p.Price = req.Price.Round(2)
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.Category != nil {
		c, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		p.CategoryID = c.ID
	}
	if req.SubCategory != nil {
		p.SubCategory = strings.TrimSpace(*req.SubCategory)
	}
	if image != nil {
		url, err := s.storeImage(ctx, *image, baseURL)
		if err != nil {
			return nil, err
		}
		p.Image = url
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Invalidate(ctx, p.ID)
	return p, nil
}

func (s *Service) SoftDeleteProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Status = core.StatusDeleted
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Invalidate(ctx, p.ID)
	return p, nil
}

// SearchByName finds active products in a category whose name contains
// name, ignoring case.
func (s *Service) SearchByName(ctx context.Context, name, categoryName string) ([]Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("search products: %w", core.ValidationError("Product name is required"))
	}

	c, err := s.categoryByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.SearchByName(ctx, c.ID, name)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("search products: %w",
			core.NotFoundMessage(fmt.Sprintf("Products with name %s not found", name)))
	}

	return products, nil
}

func (s *Service) Filter(ctx context.Context, req FilterRequest) ([]Product, error) {
	c, err := s.categoryByName(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return nil, fmt.Errorf("filter products: %w",
			core.ValidationError("minPrice cannot be greater than maxPrice"))
	}

	products, err := s.repo.Filter(ctx, FilterParams{
		CategoryID:  c.ID,
		SubCategory: strings.TrimSpace(req.SubCategory),
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("filter products: %w",
			core.NotFoundMessage("No products found with given filters"))
	}

	return products, nil
}

func (s *Service) ListByCategory(ctx context.Context, categoryName string) ([]Product, error) {
	c, err := s.categoryByName(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.Filter(ctx, FilterParams{CategoryID: c.ID})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("list by category: %w", core.NotFoundMessage("No products found"))
	}

	return products, nil
}

// Invalidate drops the cached copy of a product after a mutation.
func (s *Service) Invalidate(ctx context.Context, id string) {
	if canonical, ok := core.ParseID(id); ok {
		id = canonical
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		slog.WarnContext(ctx, "product cache invalidation failed", "product_id", id, "error", err)
	}
}

// GetCurrentProduct reads an active product straight from the database,
// bypassing the cache, for decisions that need the current stock.
func (s *Service) GetCurrentProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get current product: %w", err)
	}
	return p, nil
}

func (s *Service) loadActive(ctx context.Context, id string) (*Product, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, core.ValidationError("invalid product id")
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted() {
		return nil, fmt.Errorf("load product: %w", core.ErrNotFound)
	}
	return p, nil
}

func (s *Service) resolveCategory(ctx context.Context, id string) (*category.Category, error) {
	c, err := s.categories.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve category: %w",
				core.NotFoundMessage(fmt.Sprintf("Category with id %s not found", id)))
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) categoryByName(ctx context.Context, name string) (*category.Category, error) {
	normalized := category.NormalizeName(name)
	if !category.IsAllowedName(normalized) {
		return nil, core.ValidationError(`categoryName should be ["men" or "women"]`)
	}

	c, err := s.categories.FindByName(ctx, normalized)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("find category: %w",
				core.NotFoundMessage(fmt.Sprintf("Category %q not found", name)))
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) storeImage(ctx context.Context, image ImageUpload, baseURL string) (string, error) {
	if s.images == nil {
		return "", fmt.Errorf("store image: no image store configured")
	}

	name, err := s.images.Save(ctx, image)
	if err != nil {
		return "", err
	}
	return ImageURL(baseURL, name), nil
}
