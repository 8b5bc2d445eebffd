// Package supplier reads the product lines of supplier invoices exported as
// semicolon separated CSV.
package supplier

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/balcao/internal/encoding"
	"github.com/MrJamesThe3rd/balcao/internal/money"
)

// Line is one product line as printed on the invoice.
type Line struct {
	Row         int
	Code        string
	Description string
	Quantity    int64
	UnitCost    int64
	TotalCost   int64
}

// Invoice is what could be read from a file. Number and Date come from the
// metadata rows above the header when the supplier prints them.
type Invoice struct {
	Profile string
	Charset enc.Charset
	Number  string
	Date    *time.Time
	Lines   []Line
}

// Total sums the line totals.
func (inv *Invoice) Total() int64 {
	var total int64
	for _, l := range inv.Lines {
		total += l.TotalCost
	}

	return total
}

// Parser auto-detects the export format by matching header names against
// the known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*Invoice, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching invoice format found: expected columns for nfe, pedido or resumo")
	}

	inv := &Invoice{Profile: profile.Name, Charset: charset}
	readMetadata(inv, rows[:headerIdx])

	inv.Lines, err = parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	if err != nil {
		return nil, err
	}

	return inv, nil
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

var (
	numberLabels = []string{"nota fiscal", "nf-e", "número", "numero"}
	dateLabels   = []string{"emissão", "data de emissão", "emissao", "data"}
)

// readMetadata picks the invoice number and issue date out of "label;value"
// rows printed above the header.
func readMetadata(inv *Invoice, rows [][]string) {
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		label := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(row[0]), ":"))
		value := strings.TrimSpace(row[1])

		switch {
		case value == "":
		case inv.Number == "" && hasLabel(numberLabels, label):
			inv.Number = value
		case inv.Date == nil && hasLabel(dateLabels, label):
			if t, err := time.Parse("02/01/2006", value); err == nil {
				inv.Date = &t
			}
		}
	}
}

func hasLabel(labels []string, label string) bool {
	for _, l := range labels {
		if label == l {
			return true
		}
	}

	return false
}

// parseRows reads product lines. Rows without a quantity are footers or
// blank and are skipped; a row with a description but an unreadable
// quantity or cost fails the whole file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]Line, error) {
	var lines []Line

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		qtyStr := cellValue(row, cols[p.QtyCol])
		if qtyStr == "" {
			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		qty, err := money.ParseQuantity(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if qty <= 0 {
			continue
		}

		cost, err := money.Parse(cellValue(row, cols[p.CostCol]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if cost < 0 {
			return nil, fmt.Errorf("row %d: negative cost", rowNum)
		}

		line := Line{Row: rowNum, Description: desc, Quantity: qty}
		if p.CodeCol != "" {
			line.Code = cellValue(row, cols[p.CodeCol])
		}

		switch p.CostMode {
		case costUnit:
			line.UnitCost = cost
			line.TotalCost = cost * qty
		case costTotal:
			line.UnitCost = unitFromTotal(cost, qty)
			line.TotalCost = cost
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// unitFromTotal splits a line total into a unit cost rounded to the cent.
func unitFromTotal(total, qty int64) int64 {
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(qty)).Round(0).IntPart()
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
