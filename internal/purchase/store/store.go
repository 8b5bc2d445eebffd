package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/period"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
)

type Store struct {
	pool *sql.DB
	db   database.Querier
}

func New(db *sql.DB) *Store {
	return &Store{pool: db, db: db}
}

// NewTx builds a store whose queries run inside tx.
func NewTx(tx *sql.Tx) *Store {
	return &Store{db: tx}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectPurchaseColumns = `
	p.id, p.supplier_id, s.name, p.employee_id, p.status, p.payment_status,
	p.total_amount, p.invoice_number, p.notes, p.purchase_date, p.created_at, p.updated_at
`

func scanPurchase(s scanner) (*purchase.Purchase, error) {
	var p purchase.Purchase
	if err := s.Scan(
		&p.ID, &p.SupplierID, &p.SupplierName, &p.EmployeeID, &p.Status, &p.PaymentStatus,
		&p.Total, &p.InvoiceNumber, &p.Notes, &p.Date, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &p, nil
}

// CreatePurchase inserts the purchase and its items atomically. On a store
// bound to a transaction the caller owns atomicity.
func (s *Store) CreatePurchase(ctx context.Context, p *purchase.Purchase) error {
	if s.pool == nil {
		return s.insertPurchase(ctx, p)
	}

	return database.WithTx(ctx, s.pool, func(tx *sql.Tx) error {
		return NewTx(tx).insertPurchase(ctx, p)
	})
}

func (s *Store) insertPurchase(ctx context.Context, p *purchase.Purchase) error {
	query := `
		INSERT INTO purchases (supplier_id, employee_id, status, payment_status, total_amount, invoice_number, notes, purchase_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.SupplierID, p.EmployeeID, p.Status, p.PaymentStatus, p.Total, p.InvoiceNumber, p.Notes, p.Date,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperr.NotFound("supplier")
		}

		return fmt.Errorf("creating purchase: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_items (purchase_id, product_id, quantity, received_quantity, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for _, it := range p.Items {
		it.PurchaseID = p.ID

		err := s.db.QueryRowContext(ctx, itemQuery,
			it.PurchaseID, it.ProductID, it.Quantity, it.ReceivedQuantity, it.UnitCost, it.TotalCost,
		).Scan(&it.ID)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperr.NotFound("product")
			}

			return fmt.Errorf("creating purchase item: %w", err)
		}
	}

	return nil
}

func (s *Store) GetPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	return s.getPurchase(ctx, id, "")
}

// LockPurchase loads the purchase with its items and holds a row lock on
// the purchase until the transaction ends.
func (s *Store) LockPurchase(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	return s.getPurchase(ctx, id, " FOR UPDATE OF p")
}

func (s *Store) getPurchase(ctx context.Context, id uuid.UUID, lock string) (*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + `
		FROM purchases p
		JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.id = $1` + lock

	p, err := scanPurchase(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("purchase")
		}

		return nil, fmt.Errorf("getting purchase: %w", err)
	}

	itemQuery := `
		SELECT i.id, i.purchase_id, i.product_id, pr.name, i.quantity,
		       i.received_quantity, i.unit_cost, i.total_cost
		FROM purchase_items i
		JOIN products pr ON pr.id = i.product_id
		WHERE i.purchase_id = $1
		ORDER BY pr.name ASC
	`

	rows, err := s.db.QueryContext(ctx, itemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("listing purchase items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it purchase.Item
		if err := rows.Scan(
			&it.ID, &it.PurchaseID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.ReceivedQuantity, &it.UnitCost, &it.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("scanning purchase item: %w", err)
		}

		p.Items = append(p.Items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase item rows: %w", err)
	}

	return p, nil
}

func (s *Store) ListPurchases(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	query := `SELECT ` + selectPurchaseColumns + `
		FROM purchases p
		JOIN suppliers s ON s.id = p.supplier_id
		WHERE p.purchase_date >= $1 AND p.purchase_date < $2`

	args := []any{filter.Range.Start, filter.Range.End}
	argIdx := 3

	if filter.Status != "" {
		query += fmt.Sprintf(" AND p.status = $%d", argIdx)

		args = append(args, filter.Status)
		argIdx++
	}

	if filter.SupplierID != nil {
		query += fmt.Sprintf(" AND p.supplier_id = $%d", argIdx)

		args = append(args, *filter.SupplierID)
		argIdx++
	}

	query += " ORDER BY p.purchase_date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing purchases: %w", err)
	}
	defer rows.Close()

	var purchases []*purchase.Purchase

	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning purchase: %w", err)
		}

		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating purchase rows: %w", err)
	}

	return purchases, nil
}

func (s *Store) Summary(ctx context.Context, r period.Range) (*purchase.Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'partial'),
			COUNT(*) FILTER (WHERE status = 'delivered'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0)
		FROM purchases
		WHERE purchase_date >= $1 AND purchase_date < $2
	`

	var sum purchase.Summary
	if err := s.db.QueryRowContext(ctx, query, r.Start, r.End).Scan(
		&sum.Count, &sum.Pending, &sum.Partial, &sum.Delivered, &sum.Cancelled, &sum.TotalAmount,
	); err != nil {
		return nil, fmt.Errorf("summarizing purchases: %w", err)
	}

	return &sum, nil
}

// ReceiveItem adds qty to the received quantity of a line.
func (s *Store) ReceiveItem(ctx context.Context, itemID uuid.UUID, qty int64) error {
	query := `UPDATE purchase_items SET received_quantity = received_quantity + $1 WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, qty, itemID); err != nil {
		if database.IsCheckViolation(err) {
			return apperr.Invalid("received quantity exceeds ordered quantity")
		}

		return fmt.Errorf("receiving purchase item: %w", err)
	}

	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status purchase.Status) error {
	query := `UPDATE purchases SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating purchase status: %w", err)
	}

	return nil
}

func (s *Store) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status purchase.PaymentStatus) error {
	query := `UPDATE purchases SET payment_status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating purchase payment status: %w", err)
	}

	return nil
}
