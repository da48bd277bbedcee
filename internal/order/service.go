// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ans-khaled/clothes-ecommerce-backend/internal/core"
)

var (
	errNoProducts    = core.ValidationError("Products are required to place an order")
	errOrderNotFound = core.NotFoundMessage("Order not found")
	errNotOwner      = core.ForbiddenError("Not authorized")
)

// StockInvalidator drops cached product copies after stock changes.
type StockInvalidator interface {
	Invalidate(ctx context.Context, productID string)
}

type Service struct {
	repo     Repository
	products StockInvalidator
}

func NewService(repo Repository, products StockInvalidator) *Service {
	return &Service{repo: repo, products: products}
}

// Create places an order for userID inside one transaction, so a failure
// on any line leaves every stock level untouched and writes no order.
// Product rows are locked in id order to keep concurrent checkouts from
// deadlocking; lines are then validated and decremented in submission
// order at the current catalog price.
func (s *Service) Create(ctx context.Context, userID string, lines []LineItem) (*Order, error) {
	ctx, span := core.StartSpan(ctx, "order.create",
		attribute.Int("order.lines", len(lines)),
	)
	defer span.End()

	if len(lines) == 0 {
		return nil, fmt.Errorf("create order: %w", errNoProducts)
	}
	lines = canonicalLines(lines)

	o := &Order{
		ID:     uuid.New().String(),
		UserID: userID,
		Status: StatusPending,
	}

	err := s.repo.InTx(ctx, func(tx Tx) error {
		total := decimal.Zero
		items := make([]Item, 0, len(lines))

		locked, err := lockProducts(ctx, tx, lines)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if line.Quantity < 1 {
				return core.ValidationError("quantity must be at least 1")
			}

			lock := locked[line.ProductID]
			if lock.err != nil {
				return lock.err
			}
			row := lock.row

			if line.Quantity > row.Stock {
				return core.InsufficientStockError(fmt.Sprintf(
					"Not enough stock for product %s. Available: %d", row.Name, row.Stock))
			}

			if err := tx.DecrementStock(ctx, row.ID, line.Quantity); err != nil {
				return err
			}
			row.Stock -= line.Quantity

			items = append(items, Item{
				OrderID:   o.ID,
				ProductID: row.ID,
				Quantity:  line.Quantity,
				Price:     row.Price,
				Product:   ProductRef{Name: row.Name, Price: row.Price},
			})
			total = total.Add(core.LineTotal(row.Price, line.Quantity))
		}

		o.Items = items
		o.TotalPrice = total
		return tx.InsertOrder(ctx, o)
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, item := range o.Items {
		s.products.Invalidate(ctx, item.ProductID)
	}

	core.AddSpanEvent(ctx, "order.created",
		attribute.String("order.id", o.ID),
		attribute.String("order.total", o.TotalPrice.String()),
	)
	slog.InfoContext(ctx, "order created",
		"order_id", o.ID,
		"user_id", userID,
		"total", o.TotalPrice.String(),
	)

	return o, nil
}

// canonicalLines rewrites valid product ids to their canonical form so
// differently spelled duplicates share one lock and one stock count.
func canonicalLines(lines []LineItem) []LineItem {
	out := make([]LineItem, len(lines))
	for i, line := range lines {
		if id, ok := core.ParseID(line.ProductID); ok {
			line.ProductID = id
		}
		out[i] = line
	}
	return out
}

type lockResult struct {
	row *StockRow
	err error
}

// lockProducts locks every distinct product in ascending id order. Lookup
// failures are kept per product so callers report them in line order;
// store errors abort immediately.
func lockProducts(ctx context.Context, tx Tx, lines []LineItem) (map[string]lockResult, error) {
	ids := make([]string, 0, len(lines))
	locked := make(map[string]lockResult, len(lines))
	for _, line := range lines {
		if _, seen := locked[line.ProductID]; !seen {
			locked[line.ProductID] = lockResult{}
			ids = append(ids, line.ProductID)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		row, err := lockActive(ctx, tx, id)
		if err != nil && !core.IsAppError(err) {
			return nil, err
		}
		locked[id] = lockResult{row: row, err: err}
	}
	return locked, nil
}

func lockActive(ctx context.Context, tx Tx, productID string) (*StockRow, error) {
	notFound := core.NotFoundMessage(fmt.Sprintf("Product with ID %s not found", productID))
	id, ok := core.ParseID(productID)
	if !ok {
		return nil, notFound
	}

	row, err := tx.LockProduct(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	if row.Status == string(core.StatusDeleted) {
		return nil, notFound
	}
	return row, nil
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("list orders: %w",
			core.NotFoundMessage("There are no orders available yet"))
	}
	return orders, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns an order to its owner or to an admin.
func (s *Service) Get(ctx context.Context, id, requesterID string, isAdmin bool) (*Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, fmt.Errorf("get order: %w", errNotOwner)
	}
	return o, nil
}

// UpdateStatus sets any non-empty status; an empty one keeps the current.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	status = strings.TrimSpace(status)
	if status == "" {
		return o, nil
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, status); err != nil {
		return nil, s.notFound(err)
	}

	return s.load(ctx, o.ID)
}

// Delete removes the order permanently and returns what was removed.
func (s *Service) Delete(ctx context.Context, id string) (*Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, o.ID); err != nil {
		return nil, s.notFound(err)
	}
	return o, nil
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	return s.repo.Overview(ctx)
}

func (s *Service) load(ctx context.Context, id string) (*Order, error) {
	id, ok := core.ParseID(id)
	if !ok {
		return nil, fmt.Errorf("load order: %w", core.ValidationError("Invalid order id"))
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err)
	}
	return o, nil
}

func (s *Service) notFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("order lookup: %w", errOrderNotFound)
	}
	return err
}
