package purchase

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/importer"
	"github.com/MrJamesThe3rd/balcao/internal/matching"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
)

type purchaseResponse struct {
	ID            uuid.UUID              `json:"id"`
	SupplierID    uuid.UUID              `json:"supplier_id"`
	SupplierName  string                 `json:"supplier_name,omitempty"`
	EmployeeID    uuid.UUID              `json:"employee_id"`
	Status        purchase.Status        `json:"status"`
	PaymentStatus purchase.PaymentStatus `json:"payment_status"`
	Total         int64                  `json:"total_amount"`
	InvoiceNumber string                 `json:"invoice_number,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Date          time.Time              `json:"purchase_date"`
	Items         []itemResponse         `json:"items"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty"`
}

type itemResponse struct {
	ID               uuid.UUID `json:"id"`
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name,omitempty"`
	Quantity         int64     `json:"quantity"`
	ReceivedQuantity int64     `json:"received_quantity"`
	UnitCost         int64     `json:"unit_cost"`
	TotalCost        int64     `json:"total_cost"`
}

type summaryResponse struct {
	Count       int   `json:"count"`
	Pending     int   `json:"pending"`
	Partial     int   `json:"partial"`
	Delivered   int   `json:"delivered"`
	Cancelled   int   `json:"cancelled"`
	TotalAmount int64 `json:"total_amount"`
}

type suggestionResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Source      matching.Source `json:"source"`
}

type previewLineResponse struct {
	Row         int                 `json:"row"`
	Code        string              `json:"code,omitempty"`
	Description string              `json:"description"`
	Quantity    int64               `json:"quantity"`
	UnitCost    int64               `json:"unit_cost"`
	TotalCost   int64               `json:"total_cost"`
	Suggestion  *suggestionResponse `json:"suggestion"`
}

type previewResponse struct {
	Profile       string                `json:"profile"`
	Charset       string                `json:"charset"`
	InvoiceNumber string                `json:"invoice_number,omitempty"`
	Date          *time.Time            `json:"date,omitempty"`
	Total         int64                 `json:"total_amount"`
	Lines         []previewLineResponse `json:"lines"`
}

func toResponse(p *purchase.Purchase) purchaseResponse {
	resp := purchaseResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		EmployeeID:    p.EmployeeID,
		Status:        p.Status,
		PaymentStatus: p.PaymentStatus,
		Total:         p.Total,
		InvoiceNumber: p.InvoiceNumber,
		Notes:         p.Notes,
		Date:          p.Date,
		Items:         make([]itemResponse, len(p.Items)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	for i, it := range p.Items {
		resp.Items[i] = itemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			Quantity:         it.Quantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitCost:         it.UnitCost,
			TotalCost:        it.TotalCost,
		}
	}

	return resp
}

func toResponseList(purchases []*purchase.Purchase) []purchaseResponse {
	resp := make([]purchaseResponse, len(purchases))
	for i, p := range purchases {
		resp[i] = toResponse(p)
	}

	return resp
}

func toPreviewResponse(p *importer.Preview) previewResponse {
	resp := previewResponse{
		Profile:       p.Invoice.Profile,
		Charset:       string(p.Invoice.Charset),
		InvoiceNumber: p.Invoice.Number,
		Date:          p.Invoice.Date,
		Total:         p.Invoice.Total(),
		Lines:         make([]previewLineResponse, len(p.Lines)),
	}

	for i, l := range p.Lines {
		line := previewLineResponse{
			Row:         l.Row,
			Code:        l.Code,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitCost:    l.UnitCost,
			TotalCost:   l.TotalCost,
		}

		if l.Suggestion != nil {
			line.Suggestion = &suggestionResponse{
				ProductID:   l.Suggestion.ProductID,
				ProductName: l.Suggestion.ProductName,
				Source:      l.Suggestion.Source,
			}
		}

		resp.Lines[i] = line
	}

	return resp
}
