package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/tour"
)

// BookingParams sells spots on a departure. Total defaults to the tour price
// for every participant. A paid booking needs a payment method and books the
// income at once; a pending one books nothing.
type BookingParams struct {
	ScheduleID    uuid.UUID `validate:"required" label:"schedule_id"`
	CustomerID    uuid.UUID `validate:"required" label:"customer_id"`
	Participants  int       `validate:"gt=0"`
	Total         int64     `validate:"gte=0"`
	Paid          bool
	PaymentMethod ledger.PaymentMethod `validate:"omitempty,oneof=cash credit_card debit_card pix bank_transfer check" label:"payment_method"`
	Notes         string
}

type TourSale struct {
	Booking  *tour.Booking
	Schedule *tour.Schedule
	Entry    *ledger.Entry
}

// BookTour checks the remaining spots under the schedule lock, stores the
// booking and, when paid, appends its income entry in the same unit.
func (s *Service) BookTour(ctx context.Context, params BookingParams) (*TourSale, error) {
	actor, err := auth.Require(ctx, auth.CapTours)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	if params.Paid && params.PaymentMethod == "" {
		return nil, apperr.Invalid("payment_method is required for a paid booking")
	}

	sale := &TourSale{}

	err = s.run(ctx, OpBookTour, func(u *unit) error {
		sch, err := u.LockSchedule(ctx, params.ScheduleID)
		if err != nil {
			return err
		}

		if err := sch.CheckBooking(params.Participants); err != nil {
			return err
		}

		total := params.Total
		if total == 0 {
			total = sch.Price * int64(params.Participants)
		}

		if total <= 0 {
			return apperr.Invalid("total must be greater than 0")
		}

		b := &tour.Booking{
			ScheduleID:    sch.ID,
			CustomerID:    params.CustomerID,
			EmployeeID:    actor.EmployeeID,
			Participants:  params.Participants,
			Total:         total,
			PaymentStatus: tour.PaymentPending,
			PaymentMethod: string(params.PaymentMethod),
			Notes:         params.Notes,
			Date:          s.now(),
		}

		if params.Paid {
			b.PaymentStatus = tour.PaymentPaid
		}

		if err := u.CreateBooking(ctx, b); err != nil {
			return err
		}

		sch.Booked += b.Participants
		sale.Booking = b
		sale.Schedule = sch

		if !params.Paid {
			return nil
		}

		entry, err := ledger.NewEntry(ledger.EntryParams{
			Date:          b.Date,
			Amount:        b.Total,
			Type:          ledger.TypeIncome,
			Category:      ledger.CategoryTourSale,
			Description:   fmt.Sprintf("Tour sale: %s - %s", sch.TourName, sch.Date.Format(time.DateOnly)),
			PaymentMethod: params.PaymentMethod,
			Reference:     &ledger.Reference{ID: b.ID, Type: ledger.RefBooking},
			EmployeeID:    actor.EmployeeID,
		})
		if err != nil {
			return fmt.Errorf("building tour income entry: %w", err)
		}

		if err := u.AppendEntry(ctx, entry); err != nil {
			return err
		}

		sale.Entry = entry

		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}
