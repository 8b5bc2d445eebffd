package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
	Summary(ctx context.Context) (*Summary, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name             string `validate:"required"`
	Description      string
	Category         string `validate:"required"`
	Price            int64  `validate:"gte=0"`
	TrackStock       bool
	MinStockQuantity int64 `validate:"gte=0" label:"min_stock_quantity"`
}

// UpdateParams replaces the editable fields of a product. Stock is never
// edited here; it only changes through stock movements.
type UpdateParams struct {
	ID               uuid.UUID `validate:"required"`
	Name             string    `validate:"required"`
	Description      string
	Category         string `validate:"required"`
	Price            int64  `validate:"gte=0"`
	MinStockQuantity int64  `validate:"gte=0" label:"min_stock_quantity"`
	Active           bool
}

type ListFilter struct {
	Category string
	Active   *bool
	Search   string
	// Status is applied after loading since it depends on the min stock of
	// each row.
	Status StockStatus
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if _, err := auth.Require(ctx, auth.CapStock); err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	p := &Product{
		Name:             params.Name,
		Description:      params.Description,
		Category:         params.Category,
		Price:            params.Price,
		MinStockQuantity: params.MinStockQuantity,
		Active:           true,
	}
	if params.TrackStock {
		p.StockQuantity = new(int64(0))
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Update(ctx context.Context, params UpdateParams) (*Product, error) {
	if _, err := auth.Require(ctx, auth.CapStock); err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProduct(ctx, params.ID)
	if err != nil {
		return nil, err
	}

	p.Name = params.Name
	p.Description = params.Description
	p.Category = params.Category
	p.Price = params.Price
	p.MinStockQuantity = params.MinStockQuantity
	p.Active = params.Active

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	return s.repo.GetProduct(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	if filter.Status == "" {
		return products, nil
	}

	filtered := make([]*Product, 0, len(products))

	for _, p := range products {
		if p.StockStatus() == filter.Status {
			filtered = append(filtered, p)
		}
	}

	return filtered, nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	if _, err := auth.Require(ctx); err != nil {
		return nil, err
	}

	return s.repo.Summary(ctx)
}
