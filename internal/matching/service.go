// Package matching maps the free-text product descriptions found on supplier
// invoices to catalog products, learning from every confirmed import.
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

type Source string

const (
	SourceAlias Source = "alias"
	SourceName  Source = "name"
)

// Suggestion is the product proposed for a raw description.
type Suggestion struct {
	ProductID   uuid.UUID
	ProductName string
	Source      Source
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindAlias returns the product whose alias pattern is the longest one
	// contained in raw, or nil.
	FindAlias(ctx context.Context, raw string) (*Suggestion, error)
	// FindByName returns the active product named exactly name, ignoring
	// case, or nil.
	FindByName(ctx context.Context, name string) (*Suggestion, error)
	SaveAlias(ctx context.Context, pattern string, productID uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest proposes a product for raw. Learned aliases win over name matches.
// It returns nil when nothing matches.
func (s *Service) Suggest(ctx context.Context, raw string) (*Suggestion, error) {
	raw = Normalize(raw)
	if raw == "" {
		return nil, nil
	}

	sug, err := s.repo.FindAlias(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("finding alias: %w", err)
	}

	if sug != nil {
		sug.Source = SourceAlias
		return sug, nil
	}

	sug, err = s.repo.FindByName(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("finding product by name: %w", err)
	}

	if sug != nil {
		sug.Source = SourceName
	}

	return sug, nil
}

// Learn remembers that pattern refers to productID. Re-learning a pattern
// points it at the new product.
func (s *Service) Learn(ctx context.Context, pattern string, productID uuid.UUID) error {
	pattern = Normalize(pattern)
	if pattern == "" {
		return apperr.Invalid("pattern is required")
	}

	if productID == uuid.Nil {
		return apperr.Invalid("product_id is required")
	}

	return s.repo.SaveAlias(ctx, pattern, productID)
}

// Normalize collapses whitespace so patterns compare the way invoices print
// them.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
