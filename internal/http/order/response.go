package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/order"
)

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	TableID       *uuid.UUID          `json:"table_id,omitempty"`
	TableNumber   *int                `json:"table_number,omitempty"`
	CustomerID    *uuid.UUID          `json:"customer_id,omitempty"`
	EmployeeID    uuid.UUID           `json:"employee_id"`
	Type          order.Type          `json:"order_type"`
	Status        order.Status        `json:"status"`
	Total         int64               `json:"total_amount"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	PaymentStatus order.PaymentStatus `json:"payment_status"`
	Notes         string              `json:"notes,omitempty"`
	Items         []itemResponse      `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at,omitempty"`
	ClosedAt      *time.Time          `json:"closed_at,omitempty"`
}

type itemResponse struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   uuid.UUID        `json:"product_id"`
	ProductName string           `json:"product_name,omitempty"`
	Quantity    int64            `json:"quantity"`
	UnitPrice   int64            `json:"unit_price"`
	TotalPrice  int64            `json:"total_price"`
	Status      order.ItemStatus `json:"status"`
	Notes       string           `json:"notes,omitempty"`
}

type tableResponse struct {
	ID        uuid.UUID         `json:"id"`
	Number    int               `json:"number"`
	Capacity  int               `json:"capacity"`
	Location  order.Location    `json:"location"`
	Status    order.TableStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func ToResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		TableID:       o.TableID,
		TableNumber:   o.TableNumber,
		CustomerID:    o.CustomerID,
		EmployeeID:    o.EmployeeID,
		Type:          o.Type,
		Status:        o.Status,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		Notes:         o.Notes,
		Items:         make([]itemResponse, len(o.Items)),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		ClosedAt:      o.ClosedAt,
	}

	for i, it := range o.Items {
		resp.Items[i] = itemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Status:      it.Status,
			Notes:       it.Notes,
		}
	}

	return resp
}

func toResponseList(orders []*order.Order) []OrderResponse {
	resp := make([]OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = ToResponse(o)
	}

	return resp
}

func toTableResponse(t *order.Table) tableResponse {
	return tableResponse{
		ID:        t.ID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Location:  t.Location,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}
