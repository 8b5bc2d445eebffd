package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/product"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)
	ListTables(ctx context.Context) ([]*Table, error)
	CreateTable(ctx context.Context, t *Table) error

	BeginEdit(ctx context.Context) (EditTx, error)
}

// EditTx is a transaction scoped to the order aggregate and its tables.
// Every item mutation locks the order row and recomputes the total before
// committing.
type EditTx interface {
	LockOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	LockTable(ctx context.Context, id uuid.UUID) (*Table, error)
	HasActiveOrder(ctx context.Context, tableID uuid.UUID) (bool, error)
	CreateOrder(ctx context.Context, o *Order) error
	InsertItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	UpdateItemStatus(ctx context.Context, id uuid.UUID, status ItemStatus) error
	RecomputeTotal(ctx context.Context, orderID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetTableStatus(ctx context.Context, id uuid.UUID, status TableStatus) error
	DeleteTable(ctx context.Context, id uuid.UUID) error
	Commit() error
	Rollback() error
}

// ProductLookup resolves the product being added to an order.
type ProductLookup interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error)
}

var tableRoles = []auth.Capability{auth.CapRestaurant, auth.CapBar, auth.CapPOS}

type Service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

type OpenParams struct {
	Type       Type `validate:"required,oneof=table takeaway delivery tour" label:"order_type"`
	TableID    *uuid.UUID
	CustomerID *uuid.UUID
	Notes      string
}

type AddItemParams struct {
	OrderID   uuid.UUID `validate:"required"`
	ProductID uuid.UUID `validate:"required"`
	Quantity  int64     `validate:"gt=0"`
	Notes     string
}

// ListFilter selects orders by status. An empty status lists open orders,
// StatusFilterActive lists every non-terminal order and StatusFilterAll
// disables the status filter.
type ListFilter struct {
	Status  string
	TableID *uuid.UUID
}

const (
	StatusFilterAll    = "all"
	StatusFilterActive = "active"
)

// Open starts a new order. Table orders occupy their table; a table can hold
// a single active order at a time.
func (s *Service) Open(ctx context.Context, params OpenParams) (*Order, error) {
	actor, err := auth.Require(ctx, tableRoles...)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	if params.Type == TypeTable && params.TableID == nil {
		return nil, apperr.Invalid("table_id is required for table orders")
	}

	etx, err := s.repo.BeginEdit(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order edit: %w", err)
	}
	defer etx.Rollback()

	o := &Order{
		CustomerID:    params.CustomerID,
		EmployeeID:    actor.EmployeeID,
		Type:          params.Type,
		Status:        StatusOpen,
		PaymentStatus: PaymentPending,
		Notes:         params.Notes,
	}

	if params.Type == TypeTable {
		table, err := etx.LockTable(ctx, *params.TableID)
		if err != nil {
			return nil, err
		}

		if table.Status != TableAvailable && table.Status != TableOccupied {
			return nil, apperr.Conflict("table %d is %s", table.Number, table.Status)
		}

		busy, err := etx.HasActiveOrder(ctx, table.ID)
		if err != nil {
			return nil, err
		}

		if busy {
			return nil, apperr.Conflict("table %d already has an open order", table.Number)
		}

		if err := etx.SetTableStatus(ctx, table.ID, TableOccupied); err != nil {
			return nil, err
		}

		o.TableID = &table.ID
		o.TableNumber = &table.Number
	}

	if err := etx.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	if err := etx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return o, nil
}

// AddItem appends a line priced at the product's current price. The first
// item moves an open order to in_progress.
func (s *Service) AddItem(ctx context.Context, params AddItemParams) (*Order, error) {
	if _, err := auth.Require(ctx, tableRoles...); err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	p, err := s.products.GetProduct(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}

	if !p.Active {
		return nil, apperr.Invalid(fmt.Sprintf("product %s is inactive", p.Name))
	}

	return s.edit(ctx, params.OrderID, func(etx EditTx, o *Order) error {
		it := &Item{
			OrderID:     o.ID,
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    params.Quantity,
			UnitPrice:   p.Price,
			TotalPrice:  p.Price * params.Quantity,
			Status:      ItemPending,
			Notes:       params.Notes,
		}

		if err := etx.InsertItem(ctx, it); err != nil {
			return err
		}

		o.Items = append(o.Items, it)

		if o.Status == StatusOpen {
			if err := etx.UpdateStatus(ctx, o.ID, StatusInProgress); err != nil {
				return err
			}

			o.Status = StatusInProgress
		}

		return nil
	})
}

func (s *Service) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*Order, error) {
	if _, err := auth.Require(ctx, tableRoles...); err != nil {
		return nil, err
	}

	return s.edit(ctx, orderID, func(etx EditTx, o *Order) error {
		if _, err := o.Item(itemID); err != nil {
			return err
		}

		if err := etx.DeleteItem(ctx, itemID); err != nil {
			return err
		}

		o.Items = removeItem(o.Items, itemID)

		return nil
	})
}

func (s *Service) SetItemStatus(ctx context.Context, orderID, itemID uuid.UUID, status ItemStatus) (*Order, error) {
	if _, err := auth.Require(ctx, tableRoles...); err != nil {
		return nil, err
	}

	return s.edit(ctx, orderID, func(etx EditTx, o *Order) error {
		it, err := o.Item(itemID)
		if err != nil {
			return err
		}

		if err := ItemTransition(it.Status, status); err != nil {
			return err
		}

		if err := etx.UpdateItemStatus(ctx, itemID, status); err != nil {
			return err
		}

		it.Status = status

		return nil
	})
}

// SetStatus moves an order forward through open, in_progress, ready and
// delivered. Closing and cancelling touch stock, ledger and tables, so they
// go through the workflow package instead.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Order, error) {
	if _, err := auth.Require(ctx, tableRoles...); err != nil {
		return nil, err
	}

	if status.Terminal() {
		return nil, &apperr.StateTransitionError{
			Entity: "order", From: "current status", To: string(status),
			Reason: "use the close or cancel operation",
		}
	}

	etx, err := s.repo.BeginEdit(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order edit: %w", err)
	}
	defer etx.Rollback()

	o, err := etx.LockOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Transition(o.Status, status); err != nil {
		return nil, err
	}

	if err := etx.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	if err := etx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	o.Status = status

	return o, nil
}

// edit runs fn against the locked order and recomputes the stored total in
// the same transaction. Terminal orders are rejected before fn runs.
func (s *Service) edit(ctx context.Context, orderID uuid.UUID, fn func(EditTx, *Order) error) (*Order, error) {
	etx, err := s.repo.BeginEdit(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order edit: %w", err)
	}
	defer etx.Rollback()

	o, err := etx.LockOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.Editable(); err != nil {
		return nil, err
	}

	if err := fn(etx, o); err != nil {
		return nil, err
	}

	total, err := etx.RecomputeTotal(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	if err := etx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	o.Total = total

	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	return s.repo.GetOrder(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	if filter.Status == "" {
		filter.Status = string(StatusOpen)
	}

	return s.repo.ListOrders(ctx, filter)
}

func (s *Service) ListTables(ctx context.Context) ([]*Table, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	return s.repo.ListTables(ctx)
}

type CreateTableParams struct {
	Number   int      `validate:"gt=0"`
	Capacity int      `validate:"gt=0"`
	Location Location `validate:"required,oneof=restaurant bar outdoor"`
}

func (s *Service) CreateTable(ctx context.Context, params CreateTableParams) (*Table, error) {
	if _, err := auth.Require(ctx, auth.CapRestaurant); err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	t := &Table{
		Number:   params.Number,
		Capacity: params.Capacity,
		Location: params.Location,
		Status:   TableAvailable,
	}

	if err := s.repo.CreateTable(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// SetTableStatus changes a table by hand. A table holding an active order
// cannot be made available.
func (s *Service) SetTableStatus(ctx context.Context, id uuid.UUID, status TableStatus) error {
	if _, err := auth.Require(ctx, tableRoles...); err != nil {
		return err
	}

	switch status {
	case TableAvailable, TableOccupied, TableReserved, TableMaintenance:
	default:
		return apperr.Invalid("status must be one of [available occupied reserved maintenance]")
	}

	etx, err := s.repo.BeginEdit(ctx)
	if err != nil {
		return fmt.Errorf("begin table edit: %w", err)
	}
	defer etx.Rollback()

	table, err := etx.LockTable(ctx, id)
	if err != nil {
		return err
	}

	if status != TableOccupied {
		busy, err := etx.HasActiveOrder(ctx, id)
		if err != nil {
			return err
		}

		if busy {
			return apperr.Conflict("table %d has an active order", table.Number)
		}
	}

	if err := etx.SetTableStatus(ctx, id, status); err != nil {
		return err
	}

	return etx.Commit()
}

func (s *Service) DeleteTable(ctx context.Context, id uuid.UUID) error {
	if _, err := auth.Require(ctx, auth.CapRestaurant); err != nil {
		return err
	}

	etx, err := s.repo.BeginEdit(ctx)
	if err != nil {
		return fmt.Errorf("begin table edit: %w", err)
	}
	defer etx.Rollback()

	table, err := etx.LockTable(ctx, id)
	if err != nil {
		return err
	}

	busy, err := etx.HasActiveOrder(ctx, id)
	if err != nil {
		return err
	}

	if busy {
		return apperr.Conflict("table %d has an active order", table.Number)
	}

	if err := etx.DeleteTable(ctx, id); err != nil {
		return err
	}

	return etx.Commit()
}

func removeItem(items []*Item, id uuid.UUID) []*Item {
	kept := items[:0]

	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}

	return kept
}
