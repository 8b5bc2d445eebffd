package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/ledger"
)

// EntryResponse is the wire form of a ledger entry.
type EntryResponse struct {
	ID            uuid.UUID            `json:"id"`
	Date          time.Time            `json:"transaction_date"`
	Amount        int64                `json:"amount"`
	Type          ledger.Type          `json:"type"`
	Category      string               `json:"category"`
	Description   string               `json:"description"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
	ReferenceID   *uuid.UUID           `json:"reference_id,omitempty"`
	ReferenceType string               `json:"reference_type,omitempty"`
	EmployeeID    uuid.UUID            `json:"employee_id"`
	EmployeeName  string               `json:"employee_name,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type summaryResponse struct {
	Income  int64 `json:"total_income"`
	Expense int64 `json:"total_expense"`
	Balance int64 `json:"balance"`
	Count   int   `json:"transaction_count"`
}

type categoryTotalResponse struct {
	Category string      `json:"category"`
	Type     ledger.Type `json:"type"`
	Total    int64       `json:"total"`
	Count    int         `json:"count"`
}

// ToResponse returns nil for a nil entry, which happens when a zero total
// booked nothing.
func ToResponse(e *ledger.Entry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:            e.ID,
		Date:          e.Date,
		Amount:        e.Amount,
		Type:          e.Type,
		Category:      e.Category,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		EmployeeID:    e.EmployeeID,
		EmployeeName:  e.EmployeeName,
		CreatedAt:     e.CreatedAt,
	}

	if e.Reference != nil {
		resp.ReferenceID = &e.Reference.ID
		resp.ReferenceType = string(e.Reference.Type)
	}

	return resp
}

func toResponseList(entries []*ledger.Entry) []*EntryResponse {
	resp := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = ToResponse(e)
	}

	return resp
}

func toCategoryTotals(totals []ledger.CategoryTotal) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{Category: t.Category, Type: t.Type, Total: t.Total, Count: t.Count}
	}

	return resp
}
