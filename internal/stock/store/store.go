package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

type Store struct {
	db database.Querier
}

func New(db database.Querier) *Store {
	return &Store{db: db}
}

// AdjustStock applies delta with a compare-and-set guard: the update only
// matches while the resulting quantity stays non-negative. A null quantity
// is treated as zero, which turns tracking on for the product.
func (s *Store) AdjustStock(ctx context.Context, productID uuid.UUID, delta int64) (int64, error) {
	query := `
		UPDATE products
		SET stock_quantity = COALESCE(stock_quantity, 0) + $1, updated_at = NOW()
		WHERE id = $2 AND COALESCE(stock_quantity, 0) + $1 >= 0
		RETURNING stock_quantity
	`

	var newQty int64

	err := s.db.QueryRowContext(ctx, query, delta, productID).Scan(&newQty)
	if err == nil {
		return newQty, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("adjusting stock: %w", err)
	}

	var (
		name    string
		current sql.NullInt64
	)

	err = s.db.QueryRowContext(ctx, `SELECT name, stock_quantity FROM products WHERE id = $1`, productID).Scan(&name, &current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("product")
		}

		return 0, fmt.Errorf("reading stock: %w", err)
	}

	return 0, &apperr.InsufficientStockError{
		ProductID: productID,
		Product:   name,
		Available: current.Int64,
		Requested: -delta,
	}
}

func (s *Store) InsertMovement(ctx context.Context, m *stock.Movement) error {
	query := `
		INSERT INTO stock_movements (
			product_id, quantity, movement_type, previous_quantity, new_quantity,
			reference_id, reference_type, employee_id, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, movement_date
	`

	var (
		refID   *uuid.UUID
		refType *string
	)

	if m.Reference != nil {
		refID = &m.Reference.ID
		refType = new(string(m.Reference.Type))
	}

	err := s.db.QueryRowContext(ctx, query,
		m.ProductID, m.Quantity, m.Type, m.PreviousQuantity, m.NewQuantity,
		refID, refType, m.EmployeeID, m.Notes,
	).Scan(&m.ID, &m.Date)
	if err != nil {
		return fmt.Errorf("recording movement: %w", err)
	}

	return nil
}

func (s *Store) ListMovements(ctx context.Context, filter stock.ListFilter) ([]*stock.Movement, error) {
	query := `
		SELECT m.id, m.product_id, p.name, m.movement_type, m.quantity,
		       m.previous_quantity, m.new_quantity, m.reference_id, m.reference_type,
		       m.employee_id, e.full_name, m.notes, m.movement_date
		FROM stock_movements m
		JOIN products p ON p.id = m.product_id
		JOIN employees e ON e.id = m.employee_id
		WHERE m.movement_date >= $1 AND m.movement_date < $2`

	args := []any{filter.Range.Start, filter.Range.End}
	argIdx := 3

	if filter.ProductID != nil {
		query += fmt.Sprintf(" AND m.product_id = $%d", argIdx)

		args = append(args, *filter.ProductID)
		argIdx++
	}

	if filter.Type != "" {
		query += fmt.Sprintf(" AND m.movement_type = $%d", argIdx)

		args = append(args, filter.Type)
		argIdx++
	}

	query += " ORDER BY m.movement_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*stock.Movement

	for rows.Next() {
		var (
			m       stock.Movement
			refID   *uuid.UUID
			refType sql.NullString
		)

		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.Quantity,
			&m.PreviousQuantity, &m.NewQuantity, &refID, &refType,
			&m.EmployeeID, &m.EmployeeName, &m.Notes, &m.Date,
		); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		if refID != nil {
			m.Reference = &stock.Reference{ID: *refID, Type: stock.ReferenceType(refType.String)}
		}

		movements = append(movements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movement rows: %w", err)
	}

	return movements, nil
}
