// AngelaMos | 2026
// service.go

package cart

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/product"
)

var (
	errCartNotFound  = core.NotFoundMessage("Cart not found")
	errCartEmpty     = core.NotFoundMessage("Cart is empty")
	errInvalidAction = core.ValidationError("Invalid action. Use 'increase' or 'decrease'")
	errInvalidID     = core.ValidationError("Invalid productId")
)

// ProductLookup reads the catalog. It must return current stock, not a
// cached copy.
type ProductLookup interface {
	GetCurrentProduct(ctx context.Context, id string) (*product.Product, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("get cart: %w", errCartEmpty)
	}
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, fmt.Errorf("get cart: %w", errCartEmpty)
	}
	return c, nil
}

// AddItem puts quantity units of a product in the user's cart, creating
// the cart on first use. A new line captures the product's current price.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	ctx, span := core.StartSpan(ctx, "cart.add_item",
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	)
	defer span.End()

	if quantity < 1 {
		return nil, fmt.Errorf("add to cart: %w", core.ValidationError("quantity must be at least 1"))
	}

	if canonical, ok := core.ParseID(productID); ok {
		productID = canonical
	}

	p, err := s.product(ctx, productID, fmt.Sprintf("Product with id %s not found", productID))
	if err != nil {
		return nil, err
	}

	if quantity > p.Stock {
		return nil, fmt.Errorf("add to cart: %w", core.InsufficientStockError(
			fmt.Sprintf("Only %d items available in stock", p.Stock)))
	}

	c, err := s.load(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		c = &Cart{UserID: userID}
	} else if err != nil {
		return nil, err
	}

	if i := c.indexOf(productID); i >= 0 {
		if c.Items[i].Quantity+quantity > p.Stock {
			return nil, fmt.Errorf("add to cart: %w", core.InsufficientStockError(
				fmt.Sprintf("Cannot add more than %d items for this product", p.Stock)))
		}
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, Item{
			ProductID: p.ID,
			Quantity:  quantity,
			Price:     p.Price,
		})
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	core.AddSpanEvent(ctx, "cart.item_added", attribute.String("cart.total", c.TotalPrice.String()))
	return s.repo.GetByUser(ctx, userID)
}

// RemoveItem drops a product line. It returns a nil cart when the removal
// emptied the cart, which is then deleted.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	productID, ok := core.ParseID(productID)
	if !ok {
		return nil, fmt.Errorf("remove from cart: %w", errInvalidID)
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := c.indexOf(productID)
	if i < 0 {
		return nil, fmt.Errorf("remove from cart: %w", core.NotFoundMessage("Product not found in cart"))
	}
	c.removeAt(i)

	return s.persistOrDelete(ctx, c)
}

// UpdateQuantity moves a line up or down by one unit. Decreasing a line of
// one removes it, and a cart left without lines is deleted (nil cart).
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, action Action) (*Cart, error) {
	ctx, span := core.StartSpan(ctx, "cart.update_quantity",
		attribute.String("product.id", productID),
		attribute.String("cart.action", string(action)),
	)
	defer span.End()

	productID, ok := core.ParseID(productID)
	if !ok {
		return nil, fmt.Errorf("update quantity: %w", errInvalidID)
	}
	if !action.Valid() {
		return nil, fmt.Errorf("update quantity: %w", errInvalidAction)
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := c.indexOf(productID)
	if i < 0 {
		return nil, fmt.Errorf("update quantity: %w", core.NotFoundMessage("Product not found"))
	}

	p, err := s.product(ctx, productID, "Product not found")
	if err != nil {
		return nil, err
	}

	switch action {
	case ActionIncrease:
		if c.Items[i].Quantity+1 > p.Stock {
			return nil, fmt.Errorf("update quantity: %w", core.InsufficientStockError(
				fmt.Sprintf("Only %d items available in stock", p.Stock)))
		}
		c.Items[i].Quantity++
	case ActionDecrease:
		if c.Items[i].Quantity > 1 {
			c.Items[i].Quantity--
		} else {
			c.removeAt(i)
		}
	}

	return s.persistOrDelete(ctx, c)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("clear cart: %w", errCartNotFound)
		}
		return err
	}
	return nil
}

// Summary reports counts and per-line subtotals. Line prices show the
// current catalog price; subtotals use the captured price.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]SummaryLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, SummaryLine{
			ID:       item.ProductID,
			Name:     item.Product.Name,
			Price:    item.Product.Price,
			Quantity: item.Quantity,
			Subtotal: core.LineTotal(item.Price, item.Quantity),
		})
	}

	return &Summary{
		TotalItems:     c.TotalItems(),
		UniqueProducts: len(c.Items),
		TotalPrice:     c.TotalPrice,
		Products:       lines,
	}, nil
}

func (s *Service) load(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetByUser(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("load cart: %w", errCartNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) product(ctx context.Context, id, notFound string) (*product.Product, error) {
	p, err := s.products.GetCurrentProduct(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidInput) {
			return nil, fmt.Errorf("lookup product: %w", core.NotFoundMessage(notFound))
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) persistOrDelete(ctx context.Context, c *Cart) (*Cart, error) {
	if c.IsEmpty() {
		if err := s.repo.DeleteByUser(ctx, c.UserID); err != nil {
			return nil, err
		}
		core.AddSpanEvent(ctx, "cart.deleted")
		return nil, nil
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByUser(ctx, c.UserID)
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	c.Recalculate()
	if err := s.repo.Save(ctx, c); err != nil {
		core.SetSpanError(ctx, err)
		return err
	}
	return nil
}
