// AngelaMos | 2026
// service_test.go

package cart

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
	"github.com/ans-khaled/clothes-ecommerce-backend/internal/product"
)

type fakeCatalog struct {
	mu       sync.RWMutex
	products map[string]*product.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[string]*product.Product)}
}

func (f *fakeCatalog) add(name, price string, stock int) *product.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &product.Product{
		ID:     uuid.New().String(),
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Status: core.StatusActive,
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeCatalog) setPrice(id, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[id].Price = decimal.RequireFromString(price)
}

func (f *fakeCatalog) setStock(id string, stock int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[id].Stock = stock
}

func (f *fakeCatalog) GetCurrentProduct(_ context.Context, id string) (*product.Product, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeRepository struct {
	mu      sync.RWMutex
	carts   map[string]*Cart
	catalog *fakeCatalog
	saves   int
}

func newFakeRepository(catalog *fakeCatalog) *fakeRepository {
	return &fakeRepository{carts: make(map[string]*Cart), catalog: catalog}
}

func (f *fakeRepository) GetByUser(_ context.Context, userID string) (*Cart, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.carts[userID]
	if !ok {
		return nil, core.ErrNotFound
	}

	cp := *c
	cp.Items = make([]Item, len(c.Items))
	copy(cp.Items, c.Items)
	for i := range cp.Items {
		if p, err := f.catalog.GetCurrentProduct(context.Background(), cp.Items[i].ProductID); err == nil {
			cp.Items[i].Product = ProductDetails{Name: p.Name, Price: p.Price, Image: p.Image, Stock: p.Stock}
		}
	}
	return &cp, nil
}

func (f *fakeRepository) Save(_ context.Context, c *Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	cp.Items = make([]Item, len(c.Items))
	copy(cp.Items, c.Items)
	f.carts[c.UserID] = &cp
	f.saves++
	return nil
}

func (f *fakeRepository) DeleteByUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[userID]; !ok {
		return core.ErrNotFound
	}
	delete(f.carts, userID)
	return nil
}

func newTestService() (*Service, *fakeRepository, *fakeCatalog) {
	catalog := newFakeCatalog()
	repo := newFakeRepository(catalog)
	return NewService(repo, catalog), repo, catalog
}

func message(t *testing.T, err error) string {
	t.Helper()
	appErr := core.FromError(err)
	require.NotNil(t, appErr)
	return appErr.Message
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestStockScenario(t *testing.T) {
	ctx := context.Background()
	svc, repo, catalog := newTestService()
	userID := uuid.New().String()
	p := catalog.add("Hoodie", "10", 5)

	c, err := svc.AddItem(ctx, userID, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, dec("30").Equal(c.TotalPrice))
	assert.Equal(t, "Hoodie", c.Items[0].Product.Name)

	saves := repo.saves
	_, err = svc.AddItem(ctx, userID, p.ID, 3)
	require.ErrorIs(t, err, core.ErrInsufficientStock)
	assert.Equal(t, "Cannot add more than 5 items for this product", message(t, err))
	assert.Equal(t, saves, repo.saves, "rejected add must not persist")

	c, err = svc.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.True(t, dec("30").Equal(c.TotalPrice))
	assert.Equal(t, 3, c.Items[0].Quantity)

	c, err = svc.UpdateQuantity(ctx, userID, p.ID, ActionDecrease)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.True(t, dec("20").Equal(c.TotalPrice))
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("quantity above stock never creates a cart", func(t *testing.T) {
		svc, repo, catalog := newTestService()
		userID := uuid.New().String()
		p := catalog.add("Boots", "90", 2)

		_, err := svc.AddItem(ctx, userID, p.ID, 3)
		require.ErrorIs(t, err, core.ErrInsufficientStock)
		assert.Equal(t, "Only 2 items available in stock", message(t, err))
		assert.Empty(t, repo.carts)
	})

	t.Run("unknown product", func(t *testing.T) {
		svc, _, _ := newTestService()
		id := uuid.New().String()

		_, err := svc.AddItem(ctx, uuid.New().String(), id, 1)
		require.ErrorIs(t, err, core.ErrNotFound)
		assert.Equal(t, "Product with id "+id+" not found", message(t, err))
	})

	t.Run("total uses captured prices", func(t *testing.T) {
		svc, _, catalog := newTestService()
		userID := uuid.New().String()
		tee := catalog.add("Tee", "12.50", 10)
		hat := catalog.add("Cap", "7.25", 10)

		_, err := svc.AddItem(ctx, userID, tee.ID, 2)
		require.NoError(t, err)

		catalog.setPrice(tee.ID, "99")

		c, err := svc.AddItem(ctx, userID, hat.ID, 3)
		require.NoError(t, err)
		require.Len(t, c.Items, 2)
		assert.True(t, dec("46.75").Equal(c.TotalPrice), "got %s", c.TotalPrice)
		assert.True(t, dec("12.50").Equal(c.Items[0].Price))
	})

	t.Run("stock sold elsewhere is rechecked", func(t *testing.T) {
		svc, _, catalog := newTestService()
		userID := uuid.New().String()
		p := catalog.add("Parka", "120", 5)

		_, err := svc.AddItem(ctx, userID, p.ID, 1)
		require.NoError(t, err)

		catalog.setStock(p.ID, 0)

		_, err = svc.AddItem(ctx, userID, p.ID, 1)
		require.ErrorIs(t, err, core.ErrInsufficientStock)
		_, err = svc.UpdateQuantity(ctx, userID, p.ID, ActionIncrease)
		require.ErrorIs(t, err, core.ErrInsufficientStock)
	})

	t.Run("uppercase id merges into the existing line", func(t *testing.T) {
		svc, _, catalog := newTestService()
		userID := uuid.New().String()
		p := catalog.add("Vest", "30", 5)

		_, err := svc.AddItem(ctx, userID, p.ID, 1)
		require.NoError(t, err)

		c, err := svc.AddItem(ctx, userID, strings.ToUpper(p.ID), 2)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, p.ID, c.Items[0].ProductID)
		assert.Equal(t, 3, c.Items[0].Quantity)
	})

	t.Run("zero quantity", func(t *testing.T) {
		svc, _, catalog := newTestService()
		p := catalog.add("Belt", "15", 3)

		_, err := svc.AddItem(ctx, uuid.New().String(), p.ID, 0)
		require.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newTestService()
	userID := uuid.New().String()
	a := catalog.add("Scarf", "20", 5)
	b := catalog.add("Gloves", "15", 5)

	_, err := svc.AddItem(ctx, userID, a.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, b.ID, 2)
	require.NoError(t, err)

	_, err = svc.RemoveItem(ctx, userID, "bogus")
	require.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Equal(t, "Invalid productId", message(t, err))

	_, err = svc.RemoveItem(ctx, userID, uuid.New().String())
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "Product not found in cart", message(t, err))

	c, err := svc.RemoveItem(ctx, userID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, dec("30").Equal(c.TotalPrice))

	c, err = svc.RemoveItem(ctx, userID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = svc.GetCart(ctx, userID)
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "Cart is empty", message(t, err))

	_, err = svc.AddItem(ctx, userID, a.ID, 1)
	require.NoError(t, err)
	c, err = svc.RemoveItem(ctx, userID, strings.ToUpper(a.ID))
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = svc.RemoveItem(ctx, userID, b.ID)
	assert.Equal(t, "Cart not found", message(t, err))
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("decrease at one removes the line and the cart", func(t *testing.T) {
		svc, repo, catalog := newTestService()
		userID := uuid.New().String()
		p := catalog.add("Sock", "3", 5)

		_, err := svc.AddItem(ctx, userID, p.ID, 1)
		require.NoError(t, err)

		c, err := svc.UpdateQuantity(ctx, userID, p.ID, ActionDecrease)
		require.NoError(t, err)
		assert.Nil(t, c)
		assert.Empty(t, repo.carts)
	})

	t.Run("decrease at one keeps other lines", func(t *testing.T) {
		svc, _, catalog := newTestService()
		userID := uuid.New().String()
		a := catalog.add("Sock", "3", 5)
		b := catalog.add("Shoe", "40", 5)

		_, err := svc.AddItem(ctx, userID, a.ID, 1)
		require.NoError(t, err)
		_, err = svc.AddItem(ctx, userID, b.ID, 1)
		require.NoError(t, err)

		c, err := svc.UpdateQuantity(ctx, userID, a.ID, ActionDecrease)
		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, b.ID, c.Items[0].ProductID)
		assert.True(t, dec("40").Equal(c.TotalPrice))
	})

	t.Run("increase beyond stock", func(t *testing.T) {
		svc, _, catalog := newTestService()
		userID := uuid.New().String()
		p := catalog.add("Tie", "25", 2)

		_, err := svc.AddItem(ctx, userID, p.ID, 2)
		require.NoError(t, err)

		_, err = svc.UpdateQuantity(ctx, userID, p.ID, ActionIncrease)
		require.ErrorIs(t, err, core.ErrInsufficientStock)
		assert.Equal(t, "Only 2 items available in stock", message(t, err))
	})

	t.Run("uppercase id finds the line", func(t *testing.T) {
		svc, _, catalog := newTestService()
		userID := uuid.New().String()
		p := catalog.add("Polo", "18", 5)

		_, err := svc.AddItem(ctx, userID, p.ID, 1)
		require.NoError(t, err)

		c, err := svc.UpdateQuantity(ctx, userID, strings.ToUpper(p.ID), ActionIncrease)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Items[0].Quantity)
	})

	t.Run("invalid action", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.UpdateQuantity(ctx, uuid.New().String(), uuid.New().String(), "double")
		require.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Equal(t, "Invalid action. Use 'increase' or 'decrease'", message(t, err))
	})

	t.Run("product gone from catalog", func(t *testing.T) {
		svc, repo, _ := newTestService()
		userID := uuid.New().String()
		ghost := uuid.New().String()
		require.NoError(t, repo.Save(ctx, &Cart{
			UserID: userID,
			Items:  []Item{{ProductID: ghost, Quantity: 1, Price: dec("5")}},
		}))

		_, err := svc.UpdateQuantity(ctx, userID, ghost, ActionIncrease)
		require.ErrorIs(t, err, core.ErrNotFound)
		assert.Equal(t, "Product not found", message(t, err))
	})
}

func TestClearAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, _, catalog := newTestService()
	userID := uuid.New().String()
	a := catalog.add("Jeans", "50", 5)
	b := catalog.add("Belt", "10", 5)

	_, err := svc.AddItem(ctx, userID, a.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, b.ID, 1)
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 2, summary.UniqueProducts)
	assert.True(t, dec("110").Equal(summary.TotalPrice))
	assert.True(t, dec("100").Equal(summary.Products[0].Subtotal))
	assert.Equal(t, "Jeans", summary.Products[0].Name)

	require.NoError(t, svc.Clear(ctx, userID))

	err = svc.Clear(ctx, userID)
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "Cart not found", message(t, err))

	_, err = svc.Summary(ctx, userID)
	require.ErrorIs(t, err, core.ErrNotFound)
}
