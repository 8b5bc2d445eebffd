package stock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=stock
type Repository interface {
	ListMovements(ctx context.Context, filter ListFilter) ([]*Movement, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type ListFilter struct {
	ProductID *uuid.UUID
	Type      MovementType
	Range     period.Range
}

// List returns movements newest first. A zero range defaults to the current
// month.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Movement, error) {
	if _, err := auth.Require(ctx, auth.CapStock); err != nil {
		return nil, err
	}

	if filter.Range.Start.IsZero() && filter.Range.End.IsZero() {
		filter.Range = period.CurrentMonth(s.now())
	}

	return s.repo.ListMovements(ctx, filter)
}

// SetClock overrides the clock used for default ranges.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
