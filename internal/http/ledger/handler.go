package ledger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/period"
	"github.com/MrJamesThe3rd/balcao/internal/report"
)

type Handler struct {
	svc    *ledger.Service
	report *report.Service
}

func NewHandler(svc *ledger.Service, rep *report.Service) *Handler {
	return &Handler{svc: svc, report: rep}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/entries", h.list)
	r.Post("/entries", h.append)
	r.Get("/summary", h.summary)
	r.Get("/categories", h.categories)
	r.Get("/categories/totals", h.categoryTotals)
}

// ReportRoutes mounts the workbook download.
func (h *Handler) ReportRoutes(r chi.Router) {
	r.Get("/ledger.xlsx", h.export)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.Range(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	q := r.URL.Query()

	entries, err := h.svc.List(r.Context(), ledger.ListFilter{
		Range:         rng,
		Type:          ledger.Type(q.Get("type")),
		Category:      q.Get("category"),
		PaymentMethod: ledger.PaymentMethod(q.Get("payment_method")),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(entries))
}

type appendEntryRequest struct {
	Date          time.Time            `json:"transaction_date"`
	Amount        int64                `json:"amount"`
	Type          ledger.Type          `json:"type"`
	Category      string               `json:"category"`
	Description   string               `json:"description"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
}

func (h *Handler) append(w http.ResponseWriter, r *http.Request) {
	var req appendEntryRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	e, err := h.svc.Append(r.Context(), ledger.AppendParams{
		Date:          req.Date,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(e))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.Range(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	sum, err := h.svc.Summarize(r.Context(), rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		Income:  sum.Income,
		Expense: sum.Expense,
		Balance: sum.Balance,
		Count:   sum.Count,
	})
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.Categories(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, cats)
}

func (h *Handler) categoryTotals(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.Range(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	totals, err := h.svc.CategoryTotals(r.Context(), rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryTotals(totals))
}

// export streams the ledger of the requested range as an xlsx workbook.
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	rng, err := respond.Range(r)
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	if rng.Start.IsZero() {
		rng = period.CurrentMonth(time.Now())
	}

	f, err := h.report.Workbook(r.Context(), rng)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(rng)+`"`)

	if _, err := f.WriteTo(w); err != nil {
		respond.Error(w, r, err)
	}
}
