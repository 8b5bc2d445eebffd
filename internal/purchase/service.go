package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=purchase
type Repository interface {
	CreatePurchase(ctx context.Context, p *Purchase) error
	GetPurchase(ctx context.Context, id uuid.UUID) (*Purchase, error)
	ListPurchases(ctx context.Context, filter ListFilter) ([]*Purchase, error)
	Summary(ctx context.Context, r period.Range) (*Summary, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type ItemParams struct {
	ProductID uuid.UUID `validate:"required" label:"product_id"`
	Quantity  int64     `validate:"gt=0"`
	UnitCost  int64     `validate:"gte=0" label:"unit_cost"`
}

type CreateParams struct {
	SupplierID    uuid.UUID `validate:"required" label:"supplier_id"`
	InvoiceNumber string
	Notes         string
	Date          time.Time
	Items         []ItemParams `validate:"min=1,dive"`
}

type ListFilter struct {
	Range      period.Range
	Status     Status
	SupplierID *uuid.UUID
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Purchase, error) {
	actor, err := auth.Require(ctx, auth.CapPurchases)
	if err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	p := &Purchase{
		SupplierID:    params.SupplierID,
		EmployeeID:    actor.EmployeeID,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		InvoiceNumber: params.InvoiceNumber,
		Notes:         params.Notes,
		Date:          date,
		Items:         make([]*Item, 0, len(params.Items)),
	}

	for _, ip := range params.Items {
		p.Items = append(p.Items, &Item{
			ProductID: ip.ProductID,
			Quantity:  ip.Quantity,
			UnitCost:  ip.UnitCost,
			TotalCost: ip.Quantity * ip.UnitCost,
		})
	}

	p.Total = Total(p.Items)

	if err := s.repo.CreatePurchase(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Purchase, error) {
	if _, err := auth.Require(ctx, auth.CapPurchases); err != nil {
		return nil, err
	}

	return s.repo.GetPurchase(ctx, id)
}

// List returns purchases newest first, defaulting to the current month.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Purchase, error) {
	if _, err := auth.Require(ctx, auth.CapPurchases); err != nil {
		return nil, err
	}

	if filter.Range.Start.IsZero() && filter.Range.End.IsZero() {
		filter.Range = period.CurrentMonth(s.now())
	}

	return s.repo.ListPurchases(ctx, filter)
}

func (s *Service) Summary(ctx context.Context, r period.Range) (*Summary, error) {
	if _, err := auth.Require(ctx, auth.CapPurchases); err != nil {
		return nil, err
	}

	if r.Start.IsZero() && r.End.IsZero() {
		r = period.CurrentMonth(s.now())
	}

	return s.repo.Summary(ctx, r)
}

// SetClock overrides the clock used for default dates.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
