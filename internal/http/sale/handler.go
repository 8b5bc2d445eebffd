package sale

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ledgerhttp "github.com/MrJamesThe3rd/balcao/internal/http/ledger"
	orderhttp "github.com/MrJamesThe3rd/balcao/internal/http/order"
	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	stockhttp "github.com/MrJamesThe3rd/balcao/internal/http/stock"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type Handler struct {
	workflow *workflow.Service
}

func NewHandler(wf *workflow.Service) *Handler {
	return &Handler{workflow: wf}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.finalize)
}

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

type finalizeRequest struct {
	Items         []cartItemRequest    `json:"items"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
	CustomerID    *uuid.UUID           `json:"customer_id"`
	Notes         string               `json:"notes"`
}

type saleResponse struct {
	Order     orderhttp.OrderResponse      `json:"order"`
	Movements []stockhttp.MovementResponse `json:"stock_movements"`
	Entry     *ledgerhttp.EntryResponse    `json:"financial_transaction"`
}

func (h *Handler) finalize(w http.ResponseWriter, r *http.Request) {
	var req finalizeRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	items := make([]workflow.CartItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = workflow.CartItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}

	sale, err := h.workflow.FinalizeSale(r.Context(), workflow.SaleParams{
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		CustomerID:    req.CustomerID,
		Notes:         req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, saleResponse{
		Order:     orderhttp.ToResponse(sale.Order),
		Movements: stockhttp.ToResponseList(sale.Movements),
		Entry:     ledgerhttp.ToResponse(sale.Entry),
	})
}
