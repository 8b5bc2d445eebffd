package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	AppendEntry(ctx context.Context, e *Entry) error
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
	Totals(ctx context.Context, r period.Range) (Summary, error)
	CategoryTotals(ctx context.Context, r period.Range) ([]CategoryTotal, error)
	Categories(ctx context.Context) ([]string, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AppendParams is a manual entry. The employee is taken from the request.
type AppendParams struct {
	Date          time.Time
	Amount        int64
	Type          Type
	Category      string
	Description   string
	PaymentMethod PaymentMethod
	Reference     *Reference
}

type ListFilter struct {
	Range         period.Range
	Type          Type
	Category      string
	PaymentMethod PaymentMethod
}

func (s *Service) Append(ctx context.Context, params AppendParams) (*Entry, error) {
	actor, err := auth.Require(ctx, auth.CapFinancial)
	if err != nil {
		return nil, err
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	e, err := NewEntry(EntryParams{
		Date:          date,
		Amount:        params.Amount,
		Type:          params.Type,
		Category:      params.Category,
		Description:   params.Description,
		PaymentMethod: params.PaymentMethod,
		Reference:     params.Reference,
		EmployeeID:    actor.EmployeeID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.AppendEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	if _, err := auth.Require(ctx, auth.CapFinancial); err != nil {
		return nil, err
	}

	filter.Range = s.rangeOrDefault(filter.Range)

	return s.repo.ListEntries(ctx, filter)
}

// Summarize returns income, expense and balance over r. Balance is always
// derived here from the two totals.
func (s *Service) Summarize(ctx context.Context, r period.Range) (Summary, error) {
	if _, err := auth.Require(ctx, auth.CapFinancial); err != nil {
		return Summary{}, err
	}

	sum, err := s.repo.Totals(ctx, s.rangeOrDefault(r))
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing ledger: %w", err)
	}

	sum.Balance = sum.Income - sum.Expense

	return sum, nil
}

func (s *Service) CategoryTotals(ctx context.Context, r period.Range) ([]CategoryTotal, error) {
	if _, err := auth.Require(ctx, auth.CapFinancial); err != nil {
		return nil, err
	}

	return s.repo.CategoryTotals(ctx, s.rangeOrDefault(r))
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	if _, err := auth.Require(ctx, auth.CapFinancial); err != nil {
		return nil, err
	}

	return s.repo.Categories(ctx)
}

func (s *Service) rangeOrDefault(r period.Range) period.Range {
	if r.Start.IsZero() && r.End.IsZero() {
		return period.CurrentMonth(s.now())
	}

	return r
}

// SetClock overrides the clock used for default dates.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}
