// Package ledger is the financial transaction log. Entries are immutable
// facts: amounts are always positive and the entry type says whether money
// came in or went out.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

// Type represents the direction of an entry (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentDebitCard    PaymentMethod = "debit_card"
	PaymentPix          PaymentMethod = "pix"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheck        PaymentMethod = "check"
)

var paymentMethods = []PaymentMethod{
	PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBankTransfer, PaymentCheck,
}

func PaymentMethods() []PaymentMethod {
	return paymentMethods
}

func (m PaymentMethod) Valid() bool {
	for _, pm := range paymentMethods {
		if pm == m {
			return true
		}
	}

	return false
}

// Categories written by the workflow. Manual entries may use any category.
const (
	CategorySale     = "sale"
	CategoryPurchase = "purchase"
	CategoryTourSale = "tour_sale"
)

type ReferenceType string

const (
	RefOrder    ReferenceType = "order"
	RefPurchase ReferenceType = "purchase"
	RefBooking  ReferenceType = "booking"
)

// Reference points loosely at the record an entry was raised for.
type Reference struct {
	ID   uuid.UUID
	Type ReferenceType
}

// Entry is a single financial transaction.
type Entry struct {
	ID            uuid.UUID
	Date          time.Time
	Amount        int64 // Amount in cents, always positive
	Type          Type
	Category      string
	Description   string
	PaymentMethod PaymentMethod
	Reference     *Reference
	EmployeeID    uuid.UUID
	EmployeeName  string // Loaded via JOIN
	CreatedAt     time.Time
}

type EntryParams struct {
	Date          time.Time
	Amount        int64         `validate:"gt=0"`
	Type          Type          `validate:"required,oneof=income expense"`
	Category      string        `validate:"required"`
	Description   string        `validate:"required"`
	PaymentMethod PaymentMethod `validate:"required,oneof=cash credit_card debit_card pix bank_transfer check" label:"payment_method"`
	Reference     *Reference
	EmployeeID    uuid.UUID `validate:"required" label:"employee_id"`
}

// NewEntry validates params and builds the entry to append.
func NewEntry(params EntryParams) (*Entry, error) {
	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	return &Entry{
		Date:          params.Date,
		Amount:        params.Amount,
		Type:          params.Type,
		Category:      params.Category,
		Description:   params.Description,
		PaymentMethod: params.PaymentMethod,
		Reference:     params.Reference,
		EmployeeID:    params.EmployeeID,
	}, nil
}

type Summary struct {
	Income  int64
	Expense int64
	Balance int64
	Count   int
}

// Summarize totals entries. Balance is income minus expense.
func Summarize(entries []*Entry) Summary {
	var s Summary

	for _, e := range entries {
		switch e.Type {
		case TypeIncome:
			s.Income += e.Amount
		case TypeExpense:
			s.Expense += e.Amount
		}

		s.Count++
	}

	s.Balance = s.Income - s.Expense

	return s
}

type CategoryTotal struct {
	Category string
	Type     Type
	Total    int64
	Count    int
}
