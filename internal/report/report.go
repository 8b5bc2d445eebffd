// Package report renders ledger periods as spreadsheets.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/money"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

const (
	SheetSummary = "Summary"
	SheetEntries = "Entries"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Source is the ledger read side. *ledger.Service satisfies it and enforces
// the financial capability.
type Source interface {
	List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error)
	Summarize(ctx context.Context, r period.Range) (ledger.Summary, error)
	CategoryTotals(ctx context.Context, r period.Range) ([]ledger.CategoryTotal, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

var entryHeader = []any{"Date", "Type", "Category", "Description", "Payment method", "Amount", "Employee"}

// Workbook builds the xlsx for r: totals and category breakdown on the
// Summary sheet, one row per entry on the Entries sheet.
func (s *Service) Workbook(ctx context.Context, r period.Range) (*excelize.File, error) {
	sum, err := s.source.Summarize(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("summarizing period: %w", err)
	}

	cats, err := s.source.CategoryTotals(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("loading category totals: %w", err)
	}

	entries, err := s.source.List(ctx, ledger.ListFilter{Range: r})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("naming summary sheet: %w", err)
	}

	if _, err := f.NewSheet(SheetEntries); err != nil {
		return nil, fmt.Errorf("creating entries sheet: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("creating amount style: %w", err)
	}

	if err := writeSummary(f, r, sum, cats, amountStyle); err != nil {
		return nil, err
	}

	if err := writeEntries(f, entries, amountStyle); err != nil {
		return nil, err
	}

	return f, nil
}

func writeSummary(f *excelize.File, r period.Range, sum ledger.Summary, cats []ledger.CategoryTotal, amountStyle int) error {
	rows := [][]any{
		{"Period", r.String()},
		{"Income", amount(sum.Income)},
		{"Expense", amount(sum.Expense)},
		{"Balance", amount(sum.Balance)},
		{"Entries", sum.Count},
		{},
		{"Category", "Type", "Total", "Count"},
	}

	for _, c := range cats {
		rows = append(rows, []any{c.Category, string(c.Type), amount(c.Total), c.Count})
	}

	if err := setRows(f, SheetSummary, rows); err != nil {
		return err
	}

	if err := f.SetCellStyle(SheetSummary, "B2", "B4", amountStyle); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}

	if len(cats) > 0 {
		last := fmt.Sprintf("C%d", len(rows))
		if err := f.SetCellStyle(SheetSummary, "C8", last, amountStyle); err != nil {
			return fmt.Errorf("styling category totals: %w", err)
		}
	}

	return f.SetColWidth(SheetSummary, "A", "A", 18)
}

func writeEntries(f *excelize.File, entries []*ledger.Entry, amountStyle int) error {
	rows := make([][]any, 0, len(entries)+1)
	rows = append(rows, entryHeader)

	for _, e := range entries {
		value := amount(e.Amount)
		if e.Type == ledger.TypeExpense {
			value = -value
		}

		rows = append(rows, []any{
			e.Date.Format(time.DateOnly),
			string(e.Type),
			e.Category,
			e.Description,
			string(e.PaymentMethod),
			value,
			e.EmployeeName,
		})
	}

	if err := setRows(f, SheetEntries, rows); err != nil {
		return err
	}

	if len(entries) > 0 {
		if err := f.SetCellStyle(SheetEntries, "F2", fmt.Sprintf("F%d", len(rows)), amountStyle); err != nil {
			return fmt.Errorf("styling amounts: %w", err)
		}
	}

	return f.SetColWidth(SheetEntries, "D", "D", 40)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}

	return nil
}

func amount(cents int64) float64 {
	return float64(cents) / 100
}

// Write streams the workbook for r to w.
func (s *Service) Write(ctx context.Context, r period.Range, w io.Writer) error {
	f, err := s.Workbook(ctx, r)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

// Filename is the download name of the workbook for r.
func Filename(r period.Range) string {
	return fmt.Sprintf("ledger_%s_%s.xlsx", r.Start.Format("20060102"), r.LastDay().Format("20060102"))
}

// Export saves the workbook for r into outputDir and returns its path.
func (s *Service) Export(ctx context.Context, r period.Range, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	f, err := s.Workbook(ctx, r)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(outputDir, Filename(r))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}

	return path, nil
}

// Digest is a plain-text listing of entries, one per line, for pasting into
// a message to the accountant.
func Digest(entries []*ledger.Entry) string {
	var sb strings.Builder

	for _, e := range entries {
		sign := "-"
		if e.Type == ledger.TypeIncome {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			e.Date.Format(time.DateOnly), e.Description, sign, money.Format(e.Amount), e.PaymentMethod)
	}

	return sb.String()
}
