// Package workflow is the only place that writes across stock, the movement
// ledger, orders, purchases, tour bookings and the financial ledger. Every use case runs in
// a single unit of work: either all of its writes commit or none do.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	"github.com/MrJamesThe3rd/balcao/internal/tour"
)

//go:generate mockgen -source=workflow.go -destination=repository_mock.go -package=workflow
type Repository interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork is one database transaction. Lock methods hold row locks until
// Commit or Rollback.
type UnitOfWork interface {
	LockProduct(ctx context.Context, id uuid.UUID) (*product.Product, error)
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int64) (int64, error)
	RecordMovement(ctx context.Context, m *stock.Movement) error

	CreateOrder(ctx context.Context, o *order.Order) error
	CreateOrderItem(ctx context.Context, it *order.Item) error
	LockOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	CloseOrder(ctx context.Context, id uuid.UUID, method ledger.PaymentMethod, closedAt time.Time) error
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status order.Status) error
	SetTableStatus(ctx context.Context, id uuid.UUID, status order.TableStatus) error

	LockPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error)
	ReceivePurchaseItem(ctx context.Context, itemID uuid.UUID, qty int64) error
	UpdatePurchaseStatus(ctx context.Context, id uuid.UUID, status purchase.Status) error
	UpdatePurchasePayment(ctx context.Context, id uuid.UUID, status purchase.PaymentStatus) error

	LockSchedule(ctx context.Context, id uuid.UUID) (*tour.Schedule, error)
	CreateBooking(ctx context.Context, b *tour.Booking) error

	AppendEntry(ctx context.Context, e *ledger.Entry) error

	Commit() error
	Rollback() error
}

// Recorder receives the outcome of every use case and the stock level of
// every product a committed use case touched.
type Recorder interface {
	Operation(name string, err error)
	StockLevel(productID uuid.UUID, name string, qty int64)
}

const (
	OpFinalizeSale        = "finalize_sale"
	OpCloseOrder          = "close_order"
	OpCancelOrder         = "cancel_order"
	OpRecordStockMovement = "record_stock_movement"
	OpReceivePurchase     = "receive_purchase"
	OpCancelPurchase      = "cancel_purchase"
	OpPayPurchase         = "pay_purchase"
	OpBookTour            = "book_tour"
)

type Service struct {
	repo    Repository
	metrics Recorder
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(repo Repository, metrics Recorder, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// SetClock overrides the clock used to stamp closings and ledger entries.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// unit wraps an open UnitOfWork with the products locked so far, so stock
// is read once per product and kept current as movements are applied.
type unit struct {
	UnitOfWork
	products map[uuid.UUID]*product.Product
	touched  []uuid.UUID
}

// lockProducts locks every product in ids in a stable order, so concurrent
// units touching the same products cannot deadlock.
func (u *unit) lockProducts(ctx context.Context, ids []uuid.UUID) error {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})

	for _, id := range slices.Compact(sorted) {
		if _, ok := u.products[id]; ok {
			continue
		}

		p, err := u.LockProduct(ctx, id)
		if err != nil {
			return err
		}

		u.products[id] = p
	}

	return nil
}

// checkExits fails if the locked products cannot cover every requested
// quantity. Lines for the same product are added up first.
func (u *unit) checkExits(qtys map[uuid.UUID]int64) error {
	for id, qty := range qtys {
		p := u.products[id]
		if !p.Tracked() {
			continue
		}

		level := stock.Level{ProductID: p.ID, Product: p.Name, Quantity: p.StockQuantity}
		if _, err := level.Apply(qty, stock.MovementSale); err != nil {
			return err
		}
	}

	return nil
}

// move applies a stock movement to a locked product: validate, write the
// guarded stock update and append the ledger row bracketing it.
func (u *unit) move(ctx context.Context, productID uuid.UUID, qty int64, t stock.MovementType, employeeID uuid.UUID, ref *stock.Reference, notes string) (*stock.Movement, error) {
	if err := u.lockProducts(ctx, []uuid.UUID{productID}); err != nil {
		return nil, err
	}

	p := u.products[productID]

	change, err := stock.Level{ProductID: p.ID, Product: p.Name, Quantity: p.StockQuantity}.Apply(qty, t)
	if err != nil {
		return nil, err
	}

	newQty, err := u.AdjustStock(ctx, p.ID, change.Delta)
	if err != nil {
		return nil, err
	}

	change.New = newQty
	change.Previous = newQty - change.Delta

	m := change.Movement(p.ID, t, employeeID, ref, notes)
	m.ProductName = p.Name

	if err := u.RecordMovement(ctx, m); err != nil {
		return nil, err
	}

	p.StockQuantity = new(newQty)

	if !slices.Contains(u.touched, p.ID) {
		u.touched = append(u.touched, p.ID)
	}

	return m, nil
}

// run executes fn inside a unit of work and commits if it succeeds. Any
// error rolls every write back.
func (s *Service) run(ctx context.Context, op string, fn func(u *unit) error) (err error) {
	defer func() {
		s.metrics.Operation(op, err)

		if err != nil {
			s.logger.WarnContext(ctx, "workflow rolled back", "operation", op, "error", err)
		}
	}()

	uow, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin %s: %w", op, err)
	}
	defer uow.Rollback()

	u := &unit{UnitOfWork: uow, products: make(map[uuid.UUID]*product.Product)}

	if err := fn(u); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", op, err)
	}

	for _, id := range u.touched {
		p := u.products[id]
		s.metrics.StockLevel(p.ID, p.Name, *p.StockQuantity)
	}

	s.logger.InfoContext(ctx, "workflow committed", "operation", op, "products", len(u.touched))

	return nil
}
