package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/order"
)

type Store struct {
	pool *sql.DB
	db   database.Querier
}

func New(db *sql.DB) *Store {
	return &Store{pool: db, db: db}
}

// NewTx builds a store whose queries run inside tx. BeginEdit is not
// available on it.
func NewTx(tx *sql.Tx) *Store {
	return &Store{db: tx}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectOrderColumns = `
	o.id, o.table_id, t.number, o.customer_id, o.employee_id, o.order_type, o.status,
	o.total_amount, o.payment_method, o.payment_status, o.notes,
	o.created_at, o.updated_at, o.closed_at
`

func scanOrder(s scanner) (*order.Order, error) {
	var (
		o      order.Order
		number sql.NullInt64
		method sql.NullString
	)

	if err := s.Scan(
		&o.ID, &o.TableID, &number, &o.CustomerID, &o.EmployeeID, &o.Type, &o.Status,
		&o.Total, &method, &o.PaymentStatus, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt, &o.ClosedAt,
	); err != nil {
		return nil, err
	}

	if number.Valid {
		o.TableNumber = new(int(number.Int64))
	}

	o.PaymentMethod = method.String

	return &o, nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.getOrder(ctx, id, "")
}

// LockOrder loads the order with its items and holds a row lock on the
// order until the transaction ends.
func (s *Store) LockOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.getOrder(ctx, id, " FOR UPDATE OF o")
}

func (s *Store) getOrder(ctx context.Context, id uuid.UUID, lock string) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + `
		FROM orders o
		LEFT JOIN restaurant_tables t ON t.id = o.table_id
		WHERE o.id = $1` + lock

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("order")
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	items, err := s.listItems(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Items = items

	return o, nil
}

func (s *Store) listItems(ctx context.Context, orderID uuid.UUID) ([]*order.Item, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.unit_price,
		       i.total_price, i.status, i.notes, i.created_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
		ORDER BY i.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	var items []*order.Item

	for rows.Next() {
		var it order.Item
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice,
			&it.TotalPrice, &it.Status, &it.Notes, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}

		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

func (s *Store) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + `
		FROM orders o
		LEFT JOIN restaurant_tables t ON t.id = o.table_id
		WHERE 1=1`

	var args []any

	argIdx := 1

	switch filter.Status {
	case order.StatusFilterAll:
	case order.StatusFilterActive:
		query += " AND o.status NOT IN ('closed', 'cancelled')"
	default:
		query += fmt.Sprintf(" AND o.status = $%d", argIdx)

		args = append(args, filter.Status)
		argIdx++
	}

	if filter.TableID != nil {
		query += fmt.Sprintf(" AND o.table_id = $%d", argIdx)

		args = append(args, *filter.TableID)
		argIdx++
	}

	query += " ORDER BY o.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (
			table_id, customer_id, employee_id, order_type, status, total_amount,
			payment_method, payment_status, notes, closed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	var method *string
	if o.PaymentMethod != "" {
		method = &o.PaymentMethod
	}

	err := s.db.QueryRowContext(ctx, query,
		o.TableID, o.CustomerID, o.EmployeeID, o.Type, o.Status, o.Total,
		method, o.PaymentStatus, o.Notes, o.ClosedAt,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if missing := missingReference(err); missing != nil {
			return missing
		}

		return fmt.Errorf("creating order: %w", err)
	}

	return nil
}

func (s *Store) InsertItem(ctx context.Context, it *order.Item) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice, it.Status, it.Notes,
	).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		if missing := missingReference(err); missing != nil {
			return missing
		}

		return fmt.Errorf("adding order item: %w", err)
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("removing order item: %w", err)
	}

	return nil
}

func (s *Store) UpdateItemStatus(ctx context.Context, id uuid.UUID, status order.ItemStatus) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE order_items SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("updating item status: %w", err)
	}

	return nil
}

// RecomputeTotal stores the sum of every non-cancelled item as the order
// total and returns it.
func (s *Store) RecomputeTotal(ctx context.Context, orderID uuid.UUID) (int64, error) {
	query := `
		UPDATE orders
		SET total_amount = (
			SELECT COALESCE(SUM(total_price), 0)
			FROM order_items
			WHERE order_id = $1 AND status <> 'cancelled'
		), updated_at = NOW()
		WHERE id = $1
		RETURNING total_amount
	`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, orderID).Scan(&total); err != nil {
		return 0, fmt.Errorf("recomputing order total: %w", err)
	}

	return total, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := s.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return nil
}

// MarkClosed settles an order: closed, paid with method, stamped at closedAt.
func (s *Store) MarkClosed(ctx context.Context, id uuid.UUID, method string, closedAt time.Time) error {
	query := `
		UPDATE orders
		SET status = 'closed', payment_status = 'paid', payment_method = $1,
		    closed_at = $2, updated_at = NOW()
		WHERE id = $3
	`

	if _, err := s.db.ExecContext(ctx, query, method, closedAt, id); err != nil {
		return fmt.Errorf("closing order: %w", err)
	}

	return nil
}

func (s *Store) LockTable(ctx context.Context, id uuid.UUID) (*order.Table, error) {
	query := `
		SELECT id, number, capacity, location, status, created_at
		FROM restaurant_tables
		WHERE id = $1
		FOR UPDATE
	`

	t, err := scanTable(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("table")
		}

		return nil, fmt.Errorf("locking table: %w", err)
	}

	return t, nil
}

func (s *Store) HasActiveOrder(ctx context.Context, tableID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE table_id = $1 AND status NOT IN ('closed', 'cancelled')
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, tableID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking active orders: %w", err)
	}

	return exists, nil
}

func (s *Store) SetTableStatus(ctx context.Context, id uuid.UUID, status order.TableStatus) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE restaurant_tables SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("updating table status: %w", err)
	}

	return nil
}

func (s *Store) DeleteTable(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM restaurant_tables WHERE id = $1`, id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperr.Conflict("table still has order history")
		}

		return fmt.Errorf("deleting table: %w", err)
	}

	return nil
}

// missingReference names the row an orders or order_items foreign key
// failed on. Constraint names follow the postgres <table>_<column>_fkey
// default.
func missingReference(err error) error {
	if !database.IsForeignKeyViolation(err) {
		return nil
	}

	c := database.Constraint(err)

	switch {
	case strings.HasSuffix(c, "_customer_id_fkey"):
		return apperr.NotFound("customer")
	case strings.HasSuffix(c, "_table_id_fkey"):
		return apperr.NotFound("table")
	case strings.HasSuffix(c, "_product_id_fkey"):
		return apperr.NotFound("product")
	case strings.HasSuffix(c, "_order_id_fkey"):
		return apperr.NotFound("order")
	case strings.HasSuffix(c, "_employee_id_fkey"):
		return apperr.NotFound("employee")
	}

	return apperr.NotFound("referenced record")
}

func scanTable(s scanner) (*order.Table, error) {
	var t order.Table
	if err := s.Scan(&t.ID, &t.Number, &t.Capacity, &t.Location, &t.Status, &t.CreatedAt); err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Store) ListTables(ctx context.Context) ([]*order.Table, error) {
	query := `
		SELECT id, number, capacity, location, status, created_at
		FROM restaurant_tables
		ORDER BY number ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var tables []*order.Table

	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning table: %w", err)
		}

		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table rows: %w", err)
	}

	return tables, nil
}

func (s *Store) CreateTable(ctx context.Context, t *order.Table) error {
	query := `
		INSERT INTO restaurant_tables (number, capacity, location, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, t.Number, t.Capacity, t.Location, t.Status).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return apperr.Conflict("table number %d already exists", t.Number)
		}

		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

type editTx struct {
	*Store
	tx *sql.Tx
}

func (s *Store) BeginEdit(ctx context.Context) (order.EditTx, error) {
	if s.pool == nil {
		return nil, errors.New("order store is already bound to a transaction")
	}

	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning order tx: %w", err)
	}

	return &editTx{Store: NewTx(tx), tx: tx}, nil
}

func (e *editTx) Commit() error   { return e.tx.Commit() }
func (e *editTx) Rollback() error { return e.tx.Rollback() }
