// Package tour holds scheduled tour departures and the bookings sold
// against their spots.
package tour

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleCancelled ScheduleStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Schedule is one departure of a tour. The tour itself is a product, whose
// price is charged per participant.
type Schedule struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	TourName       string // Loaded via JOIN
	Price          int64  // Loaded via JOIN, cents per participant
	Date           time.Time
	AvailableSpots int
	Booked         int // Participants of non-cancelled bookings
	Status         ScheduleStatus
	Notes          string
	CreatedAt      time.Time
}

func (s *Schedule) SpotsLeft() int {
	return s.AvailableSpots - s.Booked
}

// CheckBooking fails when the departure is no longer taking bookings or
// cannot seat n more participants.
func (s *Schedule) CheckBooking(n int) error {
	if s.Status != ScheduleScheduled {
		return apperr.Locked("tour schedule", string(s.Status), "only scheduled departures take bookings")
	}

	if n > s.SpotsLeft() {
		return apperr.Conflict("%s on %s has %d spots left, %d requested",
			s.TourName, s.Date.Format(time.DateOnly), s.SpotsLeft(), n)
	}

	return nil
}

type Booking struct {
	ID            uuid.UUID
	ScheduleID    uuid.UUID
	CustomerID    uuid.UUID
	CustomerName  string // Loaded via JOIN
	EmployeeID    uuid.UUID
	Participants  int
	Total         int64 // Total in cents
	PaymentStatus PaymentStatus
	PaymentMethod string
	Notes         string
	Date          time.Time
}

// Booked sums the participants of every booking that still holds its spots.
func Booked(bookings []*Booking) int {
	var n int

	for _, b := range bookings {
		if b.PaymentStatus != PaymentCancelled {
			n += b.Participants
		}
	}

	return n
}
