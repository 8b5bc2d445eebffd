package tour

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	ledgerhttp "github.com/MrJamesThe3rd/balcao/internal/http/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/http/respond"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/tour"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type Handler struct {
	svc      *tour.Service
	workflow *workflow.Service
}

func NewHandler(svc *tour.Service, wf *workflow.Service) *Handler {
	return &Handler{svc: svc, workflow: wf}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/schedules", h.listSchedules)
	r.Post("/schedules", h.createSchedule)
	r.Get("/schedules/{id}", h.getSchedule)
	r.Get("/schedules/{id}/bookings", h.bookings)
	r.Post("/bookings", h.book)
}

type createScheduleRequest struct {
	ProductID      uuid.UUID `json:"product_id"`
	Date           string    `json:"tour_date"`
	AvailableSpots int       `json:"available_spots"`
	Notes          string    `json:"notes"`
}

func (h *Handler) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	date, err := time.ParseInLocation(time.DateOnly, req.Date, time.Local)
	if err != nil {
		respond.BadRequest(w, "invalid tour_date")
		return
	}

	sch, err := h.svc.CreateSchedule(r.Context(), tour.ScheduleParams{
		ProductID:      req.ProductID,
		Date:           date,
		AvailableSpots: req.AvailableSpots,
		Notes:          req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toScheduleResponse(sch))
}

// listSchedules reads from (YYYY-MM-DD), status and product_id.
func (h *Handler) listSchedules(w http.ResponseWriter, r *http.Request) {
	var filter tour.ListFilter

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.ParseInLocation(time.DateOnly, from, time.Local)
		if err != nil {
			respond.BadRequest(w, "invalid from")
			return
		}

		filter.From = t
	}

	productID, err := respond.OptionalID(r, "product_id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	filter.ProductID = productID
	filter.Status = r.URL.Query().Get("status")

	schedules, err := h.svc.ListSchedules(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]scheduleResponse, len(schedules))
	for i, s := range schedules {
		resp[i] = toScheduleResponse(s)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) getSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	sch, err := h.svc.GetSchedule(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toScheduleResponse(sch))
}

func (h *Handler) bookings(w http.ResponseWriter, r *http.Request) {
	id, err := respond.PathID(r, "id")
	if err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	bookings, err := h.svc.Bookings(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toBookingResponseList(bookings))
}

type bookRequest struct {
	ScheduleID    uuid.UUID            `json:"schedule_id"`
	CustomerID    uuid.UUID            `json:"customer_id"`
	Participants  int                  `json:"num_participants"`
	Total         int64                `json:"total_price"`
	Paid          bool                 `json:"paid"`
	PaymentMethod ledger.PaymentMethod `json:"payment_method"`
	Notes         string               `json:"notes"`
}

type bookResponse struct {
	Booking  bookingResponse           `json:"booking"`
	Schedule scheduleResponse          `json:"schedule"`
	Entry    *ledgerhttp.EntryResponse `json:"financial_transaction"`
}

func (h *Handler) book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}

	sale, err := h.workflow.BookTour(r.Context(), workflow.BookingParams{
		ScheduleID:    req.ScheduleID,
		CustomerID:    req.CustomerID,
		Participants:  req.Participants,
		Total:         req.Total,
		Paid:          req.Paid,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, bookResponse{
		Booking:  toBookingResponse(sale.Booking),
		Schedule: toScheduleResponse(sale.Schedule),
		Entry:    ledgerhttp.ToResponse(sale.Entry),
	})
}
