// Package stock holds the movement ledger: every change to a product's stock
// quantity is recorded as an immutable movement bracketing the quantity
// before and after it.
package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
	MovementLoss       MovementType = "loss"
	MovementTransfer   MovementType = "transfer"
)

var movementTypes = []MovementType{
	MovementPurchase, MovementSale, MovementAdjustment, MovementLoss, MovementTransfer,
}

func MovementTypes() []MovementType {
	return movementTypes
}

func (t MovementType) Valid() bool {
	switch t {
	case MovementPurchase, MovementSale, MovementAdjustment, MovementLoss, MovementTransfer:
		return true
	}

	return false
}

// Exit reports whether the movement takes units out of stock.
func (t MovementType) Exit() bool {
	return t == MovementSale || t == MovementLoss
}

// Sign is +1 for entries and -1 for exits.
func (t MovementType) Sign() int64 {
	if t.Exit() {
		return -1
	}

	return 1
}

type ReferenceType string

const (
	RefOrder    ReferenceType = "order"
	RefPurchase ReferenceType = "purchase"
)

// Reference points loosely at the record that caused a movement. The
// referenced record may later be cancelled; the movement stays.
type Reference struct {
	ID   uuid.UUID
	Type ReferenceType
}

// Movement is an append-only stock ledger row. Quantity is signed, so
// NewQuantity - PreviousQuantity == Quantity always holds.
type Movement struct {
	ID               uuid.UUID
	ProductID        uuid.UUID
	ProductName      string // Loaded via JOIN
	Type             MovementType
	Quantity         int64
	PreviousQuantity int64
	NewQuantity      int64
	Reference        *Reference
	EmployeeID       uuid.UUID
	EmployeeName     string // Loaded via JOIN
	Notes            string
	Date             time.Time
}

// Level is the stock state of one product as read inside a unit of work.
// A nil Quantity means the product is not tracked yet.
type Level struct {
	ProductID uuid.UUID
	Product   string
	Quantity  *int64
}

type Change struct {
	Previous int64
	New      int64
	Delta    int64
}

// Apply computes the effect of moving qty units of type t. An untracked
// level starts from zero. Exits that would leave the level negative fail
// with an InsufficientStockError and nothing should be written. Losses are
// blocked too: stock_quantity has a non-negative CHECK.
func (l Level) Apply(qty int64, t MovementType) (Change, error) {
	if !t.Valid() {
		return Change{}, apperr.Invalid("movement_type must be one of [purchase sale adjustment loss transfer]")
	}

	if qty <= 0 {
		return Change{}, apperr.Invalid("quantity must be greater than 0")
	}

	var prev int64
	if l.Quantity != nil {
		prev = *l.Quantity
	}

	delta := qty * t.Sign()

	if prev+delta < 0 {
		return Change{}, &apperr.InsufficientStockError{
			ProductID: l.ProductID,
			Product:   l.Product,
			Available: prev,
			Requested: qty,
		}
	}

	return Change{Previous: prev, New: prev + delta, Delta: delta}, nil
}

// Movement builds the ledger row for a change already applied to stock.
func (c Change) Movement(productID uuid.UUID, t MovementType, employeeID uuid.UUID, ref *Reference, notes string) *Movement {
	return &Movement{
		ProductID:        productID,
		Type:             t,
		Quantity:         c.Delta,
		PreviousQuantity: c.Previous,
		NewQuantity:      c.New,
		Reference:        ref,
		EmployeeID:       employeeID,
		Notes:            notes,
	}
}
