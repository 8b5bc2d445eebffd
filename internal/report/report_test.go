package report

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

type fakeSource struct {
	entries []*ledger.Entry
	cats    []ledger.CategoryTotal
	err     error
	filter  ledger.ListFilter
}

func (f *fakeSource) List(_ context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	f.filter = filter
	return f.entries, f.err
}

func (f *fakeSource) Summarize(context.Context, period.Range) (ledger.Summary, error) {
	return ledger.Summarize(f.entries), f.err
}

func (f *fakeSource) CategoryTotals(context.Context, period.Range) ([]ledger.CategoryTotal, error) {
	return f.cats, f.err
}

var march = period.Days(
	time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
)

func sampleSource() *fakeSource {
	return &fakeSource{
		entries: []*ledger.Entry{
			{
				Date: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), Amount: 1500, Type: ledger.TypeIncome,
				Category: ledger.CategorySale, Description: "POS sale #1a2b3c4d", PaymentMethod: ledger.PaymentCash,
				EmployeeName: "Carla",
			},
			{
				Date: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC), Amount: 2250, Type: ledger.TypeExpense,
				Category: ledger.CategoryPurchase, Description: "Purchase #9f8e7d6c from Sol", PaymentMethod: ledger.PaymentPix,
				EmployeeName: "Marcos",
			},
		},
		cats: []ledger.CategoryTotal{
			{Category: ledger.CategoryPurchase, Type: ledger.TypeExpense, Total: 2250, Count: 1},
			{Category: ledger.CategorySale, Type: ledger.TypeIncome, Total: 1500, Count: 1},
		},
	}
}

func raw(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()

	v, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)

	return v
}

func TestService_Export(t *testing.T) {
	src := sampleSource()
	svc := NewService(src)

	path, err := svc.Export(context.Background(), march, filepath.Join(t.TempDir(), "reports"))
	require.NoError(t, err)
	assert.Equal(t, "ledger_20260301_20260331.xlsx", filepath.Base(path))
	assert.Equal(t, march, src.filter.Range)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)

	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetEntries}, f.GetSheetList())

	assert.Equal(t, "2026-03-01 - 2026-03-31", raw(t, f, SheetSummary, "B1"))
	assert.Equal(t, "15", raw(t, f, SheetSummary, "B2"))
	assert.Equal(t, "22.5", raw(t, f, SheetSummary, "B3"))
	assert.Equal(t, "-7.5", raw(t, f, SheetSummary, "B4"))
	assert.Equal(t, "2", raw(t, f, SheetSummary, "B5"))
	assert.Equal(t, ledger.CategoryPurchase, raw(t, f, SheetSummary, "A8"))
	assert.Equal(t, "sale", raw(t, f, SheetSummary, "A9"))

	rows, err := f.GetRows(SheetEntries)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2026-03-02", rows[1][0])
	assert.Equal(t, "POS sale #1a2b3c4d", rows[1][3])
	assert.Equal(t, "-22.5", raw(t, f, SheetEntries, "F3"))
	assert.Equal(t, "Marcos", rows[2][6])
}

func TestService_Write(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewService(&fakeSource{}).Write(context.Background(), march, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows(SheetEntries)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "0", raw(t, f, SheetSummary, "B4"))
}

func TestService_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("forbidden")}

	_, err := NewService(src).Workbook(context.Background(), march)
	assert.ErrorIs(t, err, src.err)
}

func TestDigest(t *testing.T) {
	got := Digest(sampleSource().entries)

	assert.Equal(t,
		"* 2026-03-02 | POS sale #1a2b3c4d | +15.00 | cash\n"+
			"* 2026-03-05 | Purchase #9f8e7d6c from Sol | -22.50 | pix\n",
		got)
}
