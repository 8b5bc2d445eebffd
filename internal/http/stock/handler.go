package stock

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type Handler struct {
	svc      *stock.Service
	workflow *workflow.Service
}

func NewHandler(svc *stock.Service, wf *workflow.Service) *Handler {
	return &Handler{svc: svc, workflow: wf}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/movements", h.list)
	r.Post("/movements", h.record)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.Range(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	productID, err := respond.OptionalID(r, "product_id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	movements, err := h.svc.List(r.Context(), stock.ListFilter{
		ProductID: productID,
		Type:      stock.MovementType(r.URL.Query().Get("type")),
		Range:     rng,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(movements))
}

type recordMovementRequest struct {
	ProductID uuid.UUID          `json:"product_id"`
	Quantity  int64              `json:"quantity"`
	Type      stock.MovementType `json:"type"`
	Notes     string             `json:"notes"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordMovementRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	m, err := h.workflow.RecordStockMovement(r.Context(), workflow.MovementParams{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Type:      req.Type,
		Notes:     req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(m))
}
