package order

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	"github.com/MrJamesThe3rd/balcao/internal/order"
)

// TableRoutes mounts the restaurant table endpoints.
func (h *Handler) TableRoutes(r chi.Router) {
	r.Get("/", h.listTables)
	r.Post("/", h.createTable)
	r.Patch("/{id}/status", h.setTableStatus)
	r.Delete("/{id}", h.deleteTable)
}

func (h *Handler) listTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.svc.ListTables(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createTableRequest struct {
	Number   int            `json:"number"`
	Capacity int            `json:"capacity"`
	Location order.Location `json:"location"`
}

func (h *Handler) createTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	t, err := h.svc.CreateTable(r.Context(), order.CreateTableParams{
		Number:   req.Number,
		Capacity: req.Capacity,
		Location: req.Location,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toTableResponse(t))
}

type tableStatusRequest struct {
	Status order.TableStatus `json:"status"`
}

func (h *Handler) setTableStatus(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req tableStatusRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.SetTableStatus(r.Context(), id, req.Status); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTable(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if err := h.svc.DeleteTable(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
