package purchase

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPartial   Status = "partial"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Purchase is a supplier order. Items are received in one or more
// deliveries; each receipt adds stock.
type Purchase struct {
	ID            uuid.UUID
	SupplierID    uuid.UUID
	SupplierName  string // Loaded via JOIN
	EmployeeID    uuid.UUID
	Status        Status
	PaymentStatus PaymentStatus
	Total         int64 // Total in cents
	InvoiceNumber string
	Notes         string
	Date          time.Time
	Items         []*Item
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type Item struct {
	ID               uuid.UUID
	PurchaseID       uuid.UUID
	ProductID        uuid.UUID
	ProductName      string // Loaded via JOIN
	Quantity         int64
	ReceivedQuantity int64
	UnitCost         int64
	TotalCost        int64
}

// Outstanding is what is still to be delivered for the line.
func (it *Item) Outstanding() int64 {
	return it.Quantity - it.ReceivedQuantity
}

func (p *Purchase) Item(id uuid.UUID) (*Item, error) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, nil
		}
	}

	return nil, apperr.NotFound("purchase item")
}

// CheckCancel fails for purchases that are already cancelled or delivered.
func (p *Purchase) CheckCancel() error {
	switch p.Status {
	case StatusCancelled:
		return &apperr.StateTransitionError{
			Entity: "purchase", From: string(p.Status), To: string(StatusCancelled),
			Reason: "purchase is already cancelled",
		}
	case StatusDelivered:
		return &apperr.StateTransitionError{
			Entity: "purchase", From: string(p.Status), To: string(StatusCancelled),
			Reason: "purchase was already delivered",
		}
	}

	return nil
}

func (p *Purchase) CheckReceive() error {
	if p.Status == StatusCancelled || p.Status == StatusDelivered {
		return &apperr.StateTransitionError{
			Entity: "purchase", From: string(p.Status), To: string(StatusDelivered),
			Reason: "nothing left to receive",
		}
	}

	return nil
}

func (p *Purchase) CheckPay() error {
	if p.Status == StatusCancelled {
		return apperr.Locked("purchase", string(p.Status), "cancelled purchases cannot be paid")
	}

	if p.PaymentStatus != PaymentPending {
		return &apperr.StateTransitionError{
			Entity: "purchase payment", From: string(p.PaymentStatus), To: string(PaymentPaid),
		}
	}

	return nil
}

// ReceiptStatus derives the purchase status from how much of each line
// arrived.
func ReceiptStatus(items []*Item) Status {
	var received, complete int

	for _, it := range items {
		if it.ReceivedQuantity > 0 {
			received++
		}

		if it.Outstanding() == 0 {
			complete++
		}
	}

	switch {
	case len(items) > 0 && complete == len(items):
		return StatusDelivered
	case received > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

// Total sums line costs.
func Total(items []*Item) int64 {
	var total int64
	for _, it := range items {
		total += it.TotalCost
	}

	return total
}

type Summary struct {
	Count     int
	Pending   int
	Partial   int
	Delivered int
	Cancelled int
	// TotalAmount excludes cancelled purchases.
	TotalAmount int64
}
