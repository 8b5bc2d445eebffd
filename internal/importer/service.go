package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/importer/supplier"
	"github.com/MrJamesThe3rd/balcao/internal/matching"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Matcher interface {
	Suggest(ctx context.Context, raw string) (*matching.Suggestion, error)
	Learn(ctx context.Context, pattern string, productID uuid.UUID) error
}

type PurchaseCreator interface {
	Create(ctx context.Context, params purchase.CreateParams) (*purchase.Purchase, error)
}

type Service struct {
	parsers   map[Format]Parser
	matcher   Matcher
	purchases PurchaseCreator
}

func NewService(matcher Matcher, purchases PurchaseCreator) *Service {
	return &Service{
		parsers: map[Format]Parser{
			FormatSupplierCSV: supplier.NewParser(),
		},
		matcher:   matcher,
		purchases: purchases,
	}
}

// PreviewLine is an invoice line with the product the matcher proposes for
// it, if any.
type PreviewLine struct {
	supplier.Line
	Suggestion *matching.Suggestion
}

type Preview struct {
	Invoice *supplier.Invoice
	Lines   []PreviewLine
}

// Preview parses an invoice file and suggests a product for every line.
// Nothing is written.
func (s *Service) Preview(ctx context.Context, format Format, r io.Reader) (*Preview, error) {
	if _, err := auth.Require(ctx, auth.CapPurchases); err != nil {
		return nil, err
	}

	parser, ok := s.parsers[format]
	if !ok {
		return nil, apperr.Invalid(fmt.Sprintf("unknown import format: %s", format))
	}

	inv, err := parser.Parse(r)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	preview := &Preview{Invoice: inv, Lines: make([]PreviewLine, len(inv.Lines))}

	for i, l := range inv.Lines {
		sug, err := s.matcher.Suggest(ctx, l.Description)
		if err != nil {
			return nil, fmt.Errorf("suggesting product for row %d: %w", l.Row, err)
		}

		preview.Lines[i] = PreviewLine{Line: l, Suggestion: sug}
	}

	return preview, nil
}

// ConfirmLine is a reviewed invoice line. Remember stores Description as an
// alias of the product for future imports.
type ConfirmLine struct {
	Description string
	ProductID   uuid.UUID `validate:"required" label:"product_id"`
	Quantity    int64     `validate:"gt=0"`
	UnitCost    int64     `validate:"gte=0" label:"unit_cost"`
	Remember    bool
}

type ConfirmParams struct {
	SupplierID    uuid.UUID `validate:"required" label:"supplier_id"`
	InvoiceNumber string
	Date          time.Time
	Notes         string
	Lines         []ConfirmLine `validate:"min=1,dive"`
}

// Confirm creates the purchase for the reviewed lines, then learns the
// aliases asked for. The purchase stands even if learning fails.
func (s *Service) Confirm(ctx context.Context, params ConfirmParams) (*purchase.Purchase, error) {
	if _, err := auth.Require(ctx, auth.CapPurchases); err != nil {
		return nil, err
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	items := make([]purchase.ItemParams, len(params.Lines))
	for i, l := range params.Lines {
		items[i] = purchase.ItemParams{ProductID: l.ProductID, Quantity: l.Quantity, UnitCost: l.UnitCost}
	}

	p, err := s.purchases.Create(ctx, purchase.CreateParams{
		SupplierID:    params.SupplierID,
		InvoiceNumber: params.InvoiceNumber,
		Notes:         params.Notes,
		Date:          params.Date,
		Items:         items,
	})
	if err != nil {
		return nil, err
	}

	for _, l := range params.Lines {
		if !l.Remember || matching.Normalize(l.Description) == "" {
			continue
		}

		if err := s.matcher.Learn(ctx, l.Description, l.ProductID); err != nil {
			slog.WarnContext(ctx, "failed to learn product alias", "description", l.Description, "error", err)
		}
	}

	return p, nil
}
