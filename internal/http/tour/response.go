package tour

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/tour"
)

type scheduleResponse struct {
	ID             uuid.UUID           `json:"id"`
	ProductID      uuid.UUID           `json:"product_id"`
	TourName       string              `json:"tour_name,omitempty"`
	Price          int64               `json:"price"`
	Date           string              `json:"tour_date"`
	AvailableSpots int                 `json:"available_spots"`
	Booked         int                 `json:"booked_spots"`
	SpotsLeft      int                 `json:"spots_left"`
	Status         tour.ScheduleStatus `json:"status"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

type bookingResponse struct {
	ID            uuid.UUID          `json:"id"`
	ScheduleID    uuid.UUID          `json:"schedule_id"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	EmployeeID    uuid.UUID          `json:"employee_id"`
	Participants  int                `json:"num_participants"`
	Total         int64              `json:"total_price"`
	PaymentStatus tour.PaymentStatus `json:"payment_status"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Date          time.Time          `json:"booking_date"`
}

func toScheduleResponse(s *tour.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:             s.ID,
		ProductID:      s.ProductID,
		TourName:       s.TourName,
		Price:          s.Price,
		Date:           s.Date.Format(time.DateOnly),
		AvailableSpots: s.AvailableSpots,
		Booked:         s.Booked,
		SpotsLeft:      s.SpotsLeft(),
		Status:         s.Status,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
	}
}

func toBookingResponse(b *tour.Booking) bookingResponse {
	return bookingResponse{
		ID:            b.ID,
		ScheduleID:    b.ScheduleID,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		EmployeeID:    b.EmployeeID,
		Participants:  b.Participants,
		Total:         b.Total,
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		Notes:         b.Notes,
		Date:          b.Date,
	}
}

func toBookingResponseList(bookings []*tour.Booking) []bookingResponse {
	resp := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}

	return resp
}
