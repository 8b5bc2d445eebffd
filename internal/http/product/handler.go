package product

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	"github.com/MrJamesThe3rd/balcao/internal/product"
)

type Handler struct {
	svc *product.Service
}

func NewHandler(svc *product.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
}

type createProductRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Price            int64  `json:"price"`
	TrackStock       bool   `json:"track_stock"`
	MinStockQuantity int64  `json:"min_stock_quantity"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	p, err := h.svc.Create(r.Context(), product.CreateParams{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Price:            req.Price,
		TrackStock:       req.TrackStock,
		MinStockQuantity: req.MinStockQuantity,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := product.ListFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Status:   product.StockStatus(q.Get("status")),
	}

	if s := q.Get("active"); s != "" {
		active, err := strconv.ParseBool(s)
		if err != nil {
			respond.BadRequest(w, "invalid active")
			return
		}

		filter.Active = &active
	}

	products, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(products))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		Total:      sum.Total,
		Active:     sum.Active,
		LowStock:   sum.LowStock,
		OutOfStock: sum.OutOfStock,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}

type updateProductRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Price            int64  `json:"price"`
	MinStockQuantity int64  `json:"min_stock_quantity"`
	Active           bool   `json:"active"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	var req updateProductRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	p, err := h.svc.Update(r.Context(), product.UpdateParams{
		ID:               id,
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Price:            req.Price,
		MinStockQuantity: req.MinStockQuantity,
		Active:           req.Active,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(p))
}
