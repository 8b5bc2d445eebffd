package workflow_test

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	"github.com/MrJamesThe3rd/balcao/internal/tour"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

// memState is the whole database of the in-memory store. A unit of work
// edits a clone and swaps it in on commit.
type memState struct {
	products  map[uuid.UUID]product.Product
	orders    map[uuid.UUID]order.Order
	items     []order.Item
	tables    map[uuid.UUID]order.Table
	purchases map[uuid.UUID]purchase.Purchase
	pitems    []purchase.Item
	movements []stock.Movement
	entries   []ledger.Entry
	customers map[uuid.UUID]bool
	schedules map[uuid.UUID]tour.Schedule
	bookings  []tour.Booking
}

func (s *memState) clone() *memState {
	c := &memState{
		products:  maps.Clone(s.products),
		orders:    maps.Clone(s.orders),
		items:     slices.Clone(s.items),
		tables:    maps.Clone(s.tables),
		purchases: maps.Clone(s.purchases),
		pitems:    slices.Clone(s.pitems),
		movements: slices.Clone(s.movements),
		entries:   slices.Clone(s.entries),
		customers: s.customers,
		schedules: maps.Clone(s.schedules),
		bookings:  slices.Clone(s.bookings),
	}

	for id, p := range c.products {
		if p.StockQuantity != nil {
			p.StockQuantity = new(*p.StockQuantity)
			c.products[id] = p
		}
	}

	return c
}

type memStore struct {
	state *memState
	// failCommit makes the next commit fail without applying anything.
	failCommit error
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		products:  map[uuid.UUID]product.Product{},
		orders:    map[uuid.UUID]order.Order{},
		tables:    map[uuid.UUID]order.Table{},
		purchases: map[uuid.UUID]purchase.Purchase{},
		customers: map[uuid.UUID]bool{},
		schedules: map[uuid.UUID]tour.Schedule{},
	}}
}

func (m *memStore) addProduct(name string, price int64, qty *int64) uuid.UUID {
	id := uuid.New()
	m.state.products[id] = product.Product{ID: id, Name: name, Price: price, StockQuantity: qty, Active: true}

	return id
}

func (m *memStore) addCustomer() uuid.UUID {
	id := uuid.New()
	m.state.customers[id] = true

	return id
}

func (m *memStore) addSchedule(name string, price int64, spots int, status tour.ScheduleStatus) uuid.UUID {
	id := uuid.New()
	m.state.schedules[id] = tour.Schedule{
		ID:             id,
		ProductID:      uuid.New(),
		TourName:       name,
		Price:          price,
		Date:           time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		AvailableSpots: spots,
		Status:         status,
	}

	return id
}

func (m *memStore) stockOf(id uuid.UUID) *int64 {
	return m.state.products[id].StockQuantity
}

func (m *memStore) Begin(context.Context) (workflow.UnitOfWork, error) {
	return &memUnit{store: m, state: m.state.clone()}, nil
}

type memUnit struct {
	store *memStore
	state *memState
	done  bool
}

func (u *memUnit) Commit() error {
	if u.done {
		return nil
	}

	u.done = true

	if u.store.failCommit != nil {
		return u.store.failCommit
	}

	u.store.state = u.state

	return nil
}

func (u *memUnit) Rollback() error {
	u.done = true
	return nil
}

func (u *memUnit) LockProduct(_ context.Context, id uuid.UUID) (*product.Product, error) {
	p, ok := u.state.products[id]
	if !ok {
		return nil, apperr.NotFound("product")
	}

	if p.StockQuantity != nil {
		p.StockQuantity = new(*p.StockQuantity)
	}

	return &p, nil
}

func (u *memUnit) AdjustStock(_ context.Context, productID uuid.UUID, delta int64) (int64, error) {
	p, ok := u.state.products[productID]
	if !ok {
		return 0, apperr.NotFound("product")
	}

	var current int64
	if p.StockQuantity != nil {
		current = *p.StockQuantity
	}

	if current+delta < 0 {
		return 0, &apperr.InsufficientStockError{ProductID: p.ID, Product: p.Name, Available: current, Requested: -delta}
	}

	p.StockQuantity = new(current + delta)
	u.state.products[productID] = p

	return *p.StockQuantity, nil
}

func (u *memUnit) RecordMovement(_ context.Context, m *stock.Movement) error {
	m.ID = uuid.New()
	m.Date = time.Now()
	u.state.movements = append(u.state.movements, *m)

	return nil
}

// CreateOrder enforces the same references as the orders foreign keys.
func (u *memUnit) CreateOrder(_ context.Context, o *order.Order) error {
	if o.CustomerID != nil && !u.state.customers[*o.CustomerID] {
		return apperr.NotFound("customer")
	}

	if o.TableID != nil {
		if _, ok := u.state.tables[*o.TableID]; !ok {
			return apperr.NotFound("table")
		}
	}

	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	stored := *o
	stored.Items = nil
	u.state.orders[o.ID] = stored

	return nil
}

func (u *memUnit) CreateOrderItem(_ context.Context, it *order.Item) error {
	it.ID = uuid.New()
	u.state.items = append(u.state.items, *it)

	return nil
}

func (u *memUnit) LockOrder(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := u.state.orders[id]
	if !ok {
		return nil, apperr.NotFound("order")
	}

	for _, it := range u.state.items {
		if it.OrderID == id {
			o.Items = append(o.Items, &it)
		}
	}

	return &o, nil
}

func (u *memUnit) CloseOrder(_ context.Context, id uuid.UUID, method ledger.PaymentMethod, closedAt time.Time) error {
	o := u.state.orders[id]
	o.Status = order.StatusClosed
	o.PaymentStatus = order.PaymentPaid
	o.PaymentMethod = string(method)
	o.ClosedAt = &closedAt
	u.state.orders[id] = o

	return nil
}

func (u *memUnit) UpdateOrderStatus(_ context.Context, id uuid.UUID, status order.Status) error {
	o := u.state.orders[id]
	o.Status = status
	u.state.orders[id] = o

	return nil
}

func (u *memUnit) SetTableStatus(_ context.Context, id uuid.UUID, status order.TableStatus) error {
	t := u.state.tables[id]
	t.Status = status
	u.state.tables[id] = t

	return nil
}

func (u *memUnit) LockPurchase(_ context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	p, ok := u.state.purchases[id]
	if !ok {
		return nil, apperr.NotFound("purchase")
	}

	for _, it := range u.state.pitems {
		if it.PurchaseID == id {
			p.Items = append(p.Items, &it)
		}
	}

	return &p, nil
}

func (u *memUnit) ReceivePurchaseItem(_ context.Context, itemID uuid.UUID, qty int64) error {
	for i, it := range u.state.pitems {
		if it.ID == itemID {
			u.state.pitems[i].ReceivedQuantity += qty
			return nil
		}
	}

	return apperr.NotFound("purchase item")
}

func (u *memUnit) UpdatePurchaseStatus(_ context.Context, id uuid.UUID, status purchase.Status) error {
	p := u.state.purchases[id]
	p.Status = status
	u.state.purchases[id] = p

	return nil
}

func (u *memUnit) UpdatePurchasePayment(_ context.Context, id uuid.UUID, status purchase.PaymentStatus) error {
	p := u.state.purchases[id]
	p.PaymentStatus = status
	u.state.purchases[id] = p

	return nil
}

// LockSchedule counts booked spots the way the store does, skipping
// cancelled bookings.
func (u *memUnit) LockSchedule(_ context.Context, id uuid.UUID) (*tour.Schedule, error) {
	sch, ok := u.state.schedules[id]
	if !ok {
		return nil, apperr.NotFound("tour schedule")
	}

	for _, b := range u.state.bookings {
		if b.ScheduleID == id && b.PaymentStatus != tour.PaymentCancelled {
			sch.Booked += b.Participants
		}
	}

	return &sch, nil
}

func (u *memUnit) CreateBooking(_ context.Context, b *tour.Booking) error {
	if !u.state.customers[b.CustomerID] {
		return apperr.NotFound("customer")
	}

	b.ID = uuid.New()
	u.state.bookings = append(u.state.bookings, *b)

	return nil
}

func (u *memUnit) AppendEntry(_ context.Context, e *ledger.Entry) error {
	e.ID = uuid.New()
	u.state.entries = append(u.state.entries, *e)

	return nil
}

// recorder counts outcomes without prometheus.
type recorder struct {
	outcomes map[string][]error
	levels   map[uuid.UUID]int64
}

func newRecorder() *recorder {
	return &recorder{outcomes: map[string][]error{}, levels: map[uuid.UUID]int64{}}
}

func (r *recorder) Operation(name string, err error) {
	r.outcomes[name] = append(r.outcomes[name], err)
}

func (r *recorder) StockLevel(productID uuid.UUID, _ string, qty int64) {
	r.levels[productID] = qty
}
