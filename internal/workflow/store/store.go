package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	ledgerstore "github.com/MrJamesThe3rd/balcao/internal/ledger/store"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	orderstore "github.com/MrJamesThe3rd/balcao/internal/order/store"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	productstore "github.com/MrJamesThe3rd/balcao/internal/product/store"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	purchasestore "github.com/MrJamesThe3rd/balcao/internal/purchase/store"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	stockstore "github.com/MrJamesThe3rd/balcao/internal/stock/store"
	"github.com/MrJamesThe3rd/balcao/internal/tour"
	tourstore "github.com/MrJamesThe3rd/balcao/internal/tour/store"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Begin opens a read committed transaction. Row locks taken through the
// Lock methods serialize concurrent units touching the same rows, and the
// stock update itself is guarded against going negative.
func (s *Store) Begin(ctx context.Context) (workflow.UnitOfWork, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("beginning unit of work: %w", err)
	}

	return &unitOfWork{
		tx:        tx,
		products:  productstore.New(tx),
		stock:     stockstore.New(tx),
		orders:    orderstore.NewTx(tx),
		purchases: purchasestore.NewTx(tx),
		tours:     tourstore.NewTx(tx),
		ledger:    ledgerstore.New(tx),
	}, nil
}

type unitOfWork struct {
	tx *sql.Tx

	products  *productstore.Store
	stock     *stockstore.Store
	orders    *orderstore.Store
	purchases *purchasestore.Store
	tours     *tourstore.Store
	ledger    *ledgerstore.Store
}

func (u *unitOfWork) Commit() error   { return u.tx.Commit() }
func (u *unitOfWork) Rollback() error { return u.tx.Rollback() }

func (u *unitOfWork) LockProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return u.products.LockProduct(ctx, id)
}

func (u *unitOfWork) AdjustStock(ctx context.Context, productID uuid.UUID, delta int64) (int64, error) {
	return u.stock.AdjustStock(ctx, productID, delta)
}

func (u *unitOfWork) RecordMovement(ctx context.Context, m *stock.Movement) error {
	return u.stock.InsertMovement(ctx, m)
}

func (u *unitOfWork) CreateOrder(ctx context.Context, o *order.Order) error {
	return u.orders.CreateOrder(ctx, o)
}

func (u *unitOfWork) CreateOrderItem(ctx context.Context, it *order.Item) error {
	return u.orders.InsertItem(ctx, it)
}

func (u *unitOfWork) LockOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return u.orders.LockOrder(ctx, id)
}

func (u *unitOfWork) CloseOrder(ctx context.Context, id uuid.UUID, method ledger.PaymentMethod, closedAt time.Time) error {
	return u.orders.MarkClosed(ctx, id, string(method), closedAt)
}

func (u *unitOfWork) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	return u.orders.UpdateStatus(ctx, id, status)
}

func (u *unitOfWork) SetTableStatus(ctx context.Context, id uuid.UUID, status order.TableStatus) error {
	return u.orders.SetTableStatus(ctx, id, status)
}

func (u *unitOfWork) LockPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	return u.purchases.LockPurchase(ctx, id)
}

func (u *unitOfWork) ReceivePurchaseItem(ctx context.Context, itemID uuid.UUID, qty int64) error {
	return u.purchases.ReceiveItem(ctx, itemID, qty)
}

func (u *unitOfWork) UpdatePurchaseStatus(ctx context.Context, id uuid.UUID, status purchase.Status) error {
	return u.purchases.UpdateStatus(ctx, id, status)
}

func (u *unitOfWork) UpdatePurchasePayment(ctx context.Context, id uuid.UUID, status purchase.PaymentStatus) error {
	return u.purchases.UpdatePaymentStatus(ctx, id, status)
}

func (u *unitOfWork) LockSchedule(ctx context.Context, id uuid.UUID) (*tour.Schedule, error) {
	return u.tours.LockSchedule(ctx, id)
}

func (u *unitOfWork) CreateBooking(ctx context.Context, b *tour.Booking) error {
	return u.tours.InsertBooking(ctx, b)
}

func (u *unitOfWork) AppendEntry(ctx context.Context, e *ledger.Entry) error {
	return u.ledger.AppendEntry(ctx, e)
}
