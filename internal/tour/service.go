package tour

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=tour
type Repository interface {
	CreateSchedule(ctx context.Context, s *Schedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error)
	ListSchedules(ctx context.Context, filter ListFilter) ([]*Schedule, error)
	ListBookings(ctx context.Context, scheduleID uuid.UUID) ([]*Booking, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type ScheduleParams struct {
	ProductID      uuid.UUID `validate:"required" label:"product_id"`
	Date           time.Time `validate:"required"`
	AvailableSpots int       `validate:"gt=0" label:"available_spots"`
	Notes          string
}

// ListFilter selects departures on or after From. Status "all" disables the
// default of scheduled departures only.
type ListFilter struct {
	From      time.Time
	Status    string
	ProductID *uuid.UUID
}

func (s *Service) CreateSchedule(ctx context.Context, params ScheduleParams) (*Schedule, error) {
	if _, err := auth.Require(ctx, auth.CapTours); err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	day := time.Date(params.Date.Year(), params.Date.Month(), params.Date.Day(), 0, 0, 0, 0, params.Date.Location())
	today := s.now()

	if day.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, day.Location())) {
		return nil, apperr.Invalid("date cannot be in the past")
	}

	sch := &Schedule{
		ProductID:      params.ProductID,
		Date:           day,
		AvailableSpots: params.AvailableSpots,
		Status:         ScheduleScheduled,
		Notes:          params.Notes,
	}

	if err := s.repo.CreateSchedule(ctx, sch); err != nil {
		return nil, err
	}

	return sch, nil
}

func (s *Service) GetSchedule(ctx context.Context, id uuid.UUID) (*Schedule, error) {
	if _, err := auth.Require(ctx, auth.CapTours); err != nil {
		return nil, err
	}

	return s.repo.GetSchedule(ctx, id)
}

// ListSchedules returns upcoming departures, earliest first. From defaults
// to today and Status to scheduled.
func (s *Service) ListSchedules(ctx context.Context, filter ListFilter) ([]*Schedule, error) {
	if _, err := auth.Require(ctx, auth.CapTours); err != nil {
		return nil, err
	}

	if filter.From.IsZero() {
		now := s.now()
		filter.From = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	switch filter.Status {
	case "":
		filter.Status = string(ScheduleScheduled)
	case "all":
		filter.Status = ""
	}

	return s.repo.ListSchedules(ctx, filter)
}

func (s *Service) Bookings(ctx context.Context, scheduleID uuid.UUID) ([]*Booking, error) {
	if _, err := auth.Require(ctx, auth.CapTours); err != nil {
		return nil, err
	}

	return s.repo.ListBookings(ctx, scheduleID)
}

// SetClock overrides the clock used for default dates.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
