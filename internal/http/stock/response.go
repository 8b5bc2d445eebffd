package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

// MovementResponse is the wire form of a stock movement, shared by every
// handler that reports the movements it caused.
type MovementResponse struct {
	ID               uuid.UUID          `json:"id"`
	ProductID        uuid.UUID          `json:"product_id"`
	ProductName      string             `json:"product_name,omitempty"`
	Type             stock.MovementType `json:"movement_type"`
	Quantity         int64              `json:"quantity"`
	PreviousQuantity int64              `json:"previous_quantity"`
	NewQuantity      int64              `json:"new_quantity"`
	ReferenceID      *uuid.UUID         `json:"reference_id,omitempty"`
	ReferenceType    string             `json:"reference_type,omitempty"`
	EmployeeID       uuid.UUID          `json:"employee_id"`
	EmployeeName     string             `json:"employee_name,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	Date             time.Time          `json:"movement_date"`
}

func ToResponse(m *stock.Movement) MovementResponse {
	resp := MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		EmployeeID:       m.EmployeeID,
		EmployeeName:     m.EmployeeName,
		Notes:            m.Notes,
		Date:             m.Date,
	}

	if m.Reference != nil {
		resp.ReferenceID = &m.Reference.ID
		resp.ReferenceType = string(m.Reference.Type)
	}

	return resp
}

func ToResponseList(movements []*stock.Movement) []MovementResponse {
	resp := make([]MovementResponse, len(movements))
	for i, m := range movements {
		resp[i] = ToResponse(m)
	}

	return resp
}
