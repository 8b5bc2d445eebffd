package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

type Store struct {
	db database.Querier
}

func New(db database.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) AppendEntry(ctx context.Context, e *ledger.Entry) error {
	query := `
		INSERT INTO financial_transactions (
			transaction_date, amount, type, category, description, payment_method,
			reference_id, reference_type, employee_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	var (
		refID   *uuid.UUID
		refType *string
	)

	if e.Reference != nil {
		refID = &e.Reference.ID
		refType = new(string(e.Reference.Type))
	}

	err := s.db.QueryRowContext(ctx, query,
		e.Date, e.Amount, e.Type, e.Category, e.Description, e.PaymentMethod,
		refID, refType, e.EmployeeID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending ledger entry: %w", err)
	}

	return nil
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `
		SELECT f.id, f.transaction_date, f.amount, f.type, f.category, f.description,
		       f.payment_method, f.reference_id, f.reference_type, f.employee_id, e.full_name, f.created_at
		FROM financial_transactions f
		JOIN employees e ON e.id = f.employee_id
		WHERE f.transaction_date >= $1 AND f.transaction_date < $2`

	args := []any{filter.Range.Start, filter.Range.End}
	argIdx := 3

	if filter.Type != "" {
		query += fmt.Sprintf(" AND f.type = $%d", argIdx)

		args = append(args, filter.Type)
		argIdx++
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND f.category = $%d", argIdx)

		args = append(args, filter.Category)
		argIdx++
	}

	if filter.PaymentMethod != "" {
		query += fmt.Sprintf(" AND f.payment_method = $%d", argIdx)

		args = append(args, filter.PaymentMethod)
		argIdx++
	}

	query += " ORDER BY f.transaction_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*ledger.Entry

	for rows.Next() {
		var (
			e       ledger.Entry
			refID   *uuid.UUID
			refType sql.NullString
		)

		if err := rows.Scan(
			&e.ID, &e.Date, &e.Amount, &e.Type, &e.Category, &e.Description,
			&e.PaymentMethod, &refID, &refType, &e.EmployeeID, &e.EmployeeName, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		if refID != nil {
			e.Reference = &ledger.Reference{ID: *refID, Type: ledger.ReferenceType(refType.String)}
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	return entries, nil
}

// Totals sums income and expense over r. Balance is left to the caller.
func (s *Store) Totals(ctx context.Context, r period.Range) (ledger.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0),
			COUNT(*)
		FROM financial_transactions
		WHERE transaction_date >= $1 AND transaction_date < $2
	`

	var sum ledger.Summary
	if err := s.db.QueryRowContext(ctx, query, r.Start, r.End).Scan(&sum.Income, &sum.Expense, &sum.Count); err != nil {
		return ledger.Summary{}, fmt.Errorf("totalling ledger: %w", err)
	}

	return sum, nil
}

func (s *Store) CategoryTotals(ctx context.Context, r period.Range) ([]ledger.CategoryTotal, error) {
	query := `
		SELECT category, type, SUM(amount), COUNT(*)
		FROM financial_transactions
		WHERE transaction_date >= $1 AND transaction_date < $2
		GROUP BY category, type
		ORDER BY type, SUM(amount) DESC
	`

	rows, err := s.db.QueryContext(ctx, query, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("totalling categories: %w", err)
	}
	defer rows.Close()

	var totals []ledger.CategoryTotal

	for rows.Next() {
		var ct ledger.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Type, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		totals = append(totals, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return totals, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM financial_transactions ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []string

	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category rows: %w", err)
	}

	return categories, nil
}
