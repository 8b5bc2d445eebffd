package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

type Type string

const (
	TypeTable    Type = "table"
	TypeTakeaway Type = "takeaway"
	TypeDelivery Type = "delivery"
	TypeTour     Type = "tour"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusReady      Status = "ready"
	StatusDelivered  Status = "delivered"
	StatusClosed     Status = "closed"
	StatusCancelled  Status = "cancelled"
)

// progress orders the non-terminal statuses. Orders only move forward
// through them, skipping steps if needed.
var progress = map[Status]int{
	StatusOpen:       0,
	StatusInProgress: 1,
	StatusReady:      2,
	StatusDelivered:  3,
}

func (s Status) Valid() bool {
	_, ok := progress[s]
	return ok || s.Terminal()
}

func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusCancelled
}

// Transition checks whether an order in status from may move to status to.
func Transition(from, to Status) error {
	if !to.Valid() {
		return apperr.Invalid("status must be one of [open in_progress ready delivered closed cancelled]")
	}

	if from.Terminal() {
		return &apperr.StateTransitionError{
			Entity: "order", From: string(from), To: string(to),
			Reason: "order is already " + string(from),
		}
	}

	switch to {
	case StatusCancelled:
		return nil
	case StatusClosed:
		if from == StatusReady || from == StatusDelivered {
			return nil
		}

		return &apperr.StateTransitionError{
			Entity: "order", From: string(from), To: string(to),
			Reason: "only ready or delivered orders can be closed",
		}
	}

	if progress[to] <= progress[from] {
		return &apperr.StateTransitionError{Entity: "order", From: string(from), To: string(to)}
	}

	return nil
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemPreparing ItemStatus = "preparing"
	ItemReady     ItemStatus = "ready"
	ItemDelivered ItemStatus = "delivered"
	ItemCancelled ItemStatus = "cancelled"
)

var itemProgress = map[ItemStatus]int{
	ItemPending:   0,
	ItemPreparing: 1,
	ItemReady:     2,
	ItemDelivered: 3,
}

// ItemTransition checks a kitchen/bar status change on a line item.
// Delivered and cancelled items are final.
func ItemTransition(from, to ItemStatus) error {
	if _, ok := itemProgress[to]; !ok && to != ItemCancelled {
		return apperr.Invalid("status must be one of [pending preparing ready delivered cancelled]")
	}

	if from == ItemDelivered || from == ItemCancelled {
		return &apperr.StateTransitionError{
			Entity: "order item", From: string(from), To: string(to),
			Reason: "item is already " + string(from),
		}
	}

	if to == ItemCancelled || itemProgress[to] > itemProgress[from] {
		return nil
	}

	return &apperr.StateTransitionError{Entity: "order item", From: string(from), To: string(to)}
}

// Order covers POS sales, table tabs, takeaway and tour orders.
type Order struct {
	ID            uuid.UUID
	TableID       *uuid.UUID
	TableNumber   *int // Loaded via JOIN
	CustomerID    *uuid.UUID
	EmployeeID    uuid.UUID
	Type          Type
	Status        Status
	Total         int64 // Total in cents, sum of non-cancelled items
	PaymentMethod string
	PaymentStatus PaymentStatus
	Notes         string
	Items         []*Item
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	ClosedAt      *time.Time
}

// Item is an order line. UnitPrice is snapshotted when the item is added.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string // Loaded via JOIN
	Quantity    int64
	UnitPrice   int64
	TotalPrice  int64
	Status      ItemStatus
	Notes       string
	CreatedAt   time.Time
}

// Total sums the price of every item that is not cancelled.
func Total(items []*Item) int64 {
	var total int64

	for _, it := range items {
		if it.Status != ItemCancelled {
			total += it.TotalPrice
		}
	}

	return total
}

// Editable fails once the order reached a terminal status.
func (o *Order) Editable() error {
	if o.Status.Terminal() {
		return apperr.Locked("order", string(o.Status), "items can no longer change")
	}

	return nil
}

func (o *Order) Item(id uuid.UUID) (*Item, error) {
	for _, it := range o.Items {
		if it.ID == id {
			return it, nil
		}
	}

	return nil, apperr.NotFound("order item")
}

// ActiveItems are the items that count towards the total.
func (o *Order) ActiveItems() []*Item {
	active := make([]*Item, 0, len(o.Items))

	for _, it := range o.Items {
		if it.Status != ItemCancelled {
			active = append(active, it)
		}
	}

	return active
}

// ShortID is the human reference printed on receipts and ledger entries.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}
