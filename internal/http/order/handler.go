package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ledgerhttp "github.com/MrJamesThe3rd/balcao/internal/http/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	stockhttp "github.com/MrJamesThe3rd/balcao/internal/http/stock"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type Handler struct {
	svc      *order.Service
	workflow *workflow.Service
}

func NewHandler(svc *order.Service, wf *workflow.Service) *Handler {
	return &Handler{svc: svc, workflow: wf}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.open)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/items", h.addItem)
	r.Delete("/{id}/items/{itemID}", h.removeItem)
	r.Patch("/{id}/items/{itemID}/status", h.setItemStatus)
	r.Patch("/{id}/status", h.setStatus)
	r.Post("/{id}/close", h.close)
	r.Post("/{id}/cancel", h.cancel)
}

type openOrderRequest struct {
	Type       order.Type `json:"order_type"`
	TableID    *uuid.UUID `json:"table_id"`
	CustomerID *uuid.UUID `json:"customer_id"`
	Notes      string     `json:"notes"`
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	var req openOrderRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	o, err := h.svc.Open(r.Context(), order.OpenParams{
		Type:       req.Type,
		TableID:    req.TableID,
		CustomerID: req.CustomerID,
		Notes:      req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(o))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tableID, err := respond.OptionalID(r, "table_id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	orders, err := h.svc.List(r.Context(), order.ListFilter{
		Status:  r.URL.Query().Get("status"),
		TableID: tableID,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(orders))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(o))
}

type addItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Notes     string    `json:"notes"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req addItemRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	o, err := h.svc.AddItem(r.Context(), order.AddItemParams{
		OrderID:   id,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(o))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := itemPath(w, r)
	if !ok {
		return
	}

	o, err := h.svc.RemoveItem(r.Context(), id, itemID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(o))
}

type itemStatusRequest struct {
	Status order.ItemStatus `json:"status"`
}

func (h *Handler) setItemStatus(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := itemPath(w, r)
	if !ok {
		return
	}

	var req itemStatusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	o, err := h.svc.SetItemStatus(r.Context(), id, itemID, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(o))
}

type statusRequest struct {
	Status order.Status `json:"status"`
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req statusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	o, err := h.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(o))
}

type closeRequest struct {
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
}

type closingResponse struct {
	Order     OrderResponse                `json:"order"`
	Movements []stockhttp.MovementResponse `json:"stock_movements"`
	Entry     *ledgerhttp.EntryResponse    `json:"financial_transaction"`
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req closeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	closing, err := h.workflow.CloseOrder(r.Context(), workflow.CloseParams{
		OrderID:       id,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, closingResponse{
		Order:     ToResponse(closing.Order),
		Movements: stockhttp.ToResponseList(closing.Movements),
		Entry:     ledgerhttp.ToResponse(closing.Entry),
	})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	o, err := h.workflow.CancelOrder(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(o))
}

func itemPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return uuid.Nil, uuid.Nil, false
	}

	itemID, err := respond.PathID(r, "itemID")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return uuid.Nil, uuid.Nil, false
	}

	return id, itemID, true
}
