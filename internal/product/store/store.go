package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/product"
)

type Store struct {
	db database.Querier
}

func New(db database.Querier) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, description, category, price, stock_quantity,
// min_stock_quantity, is_active, created_at, updated_at
func scanProduct(s scanner) (*product.Product, error) {
	var (
		p     product.Product
		stock sql.NullInt64
	)

	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &stock,
		&p.MinStockQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if stock.Valid {
		p.StockQuantity = new(stock.Int64)
	}

	return &p, nil
}

const selectProductColumns = `
	id, name, description, category, price, stock_quantity,
	min_stock_quantity, is_active, created_at, updated_at
`

func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	query := `
		INSERT INTO products (name, description, category, price, stock_quantity, min_stock_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Category, p.Price, p.StockQuantity, p.MinStockQuantity, p.Active,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}

	return nil
}

func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product")
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, price = $4,
		    min_stock_quantity = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Category, p.Price, p.MinStockQuantity, p.Active, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("product")
		}

		return fmt.Errorf("updating product: %w", err)
	}

	return nil
}

func (s *Store) ListProducts(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)

		args = append(args, filter.Category)
		argIdx++
	}

	if filter.Active != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*product.Product

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (s *Store) Summary(ctx context.Context) (*product.Summary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE stock_quantity IS NOT NULL AND stock_quantity <= min_stock_quantity),
			COUNT(*) FILTER (WHERE stock_quantity = 0)
		FROM products
	`

	var sum product.Summary
	if err := s.db.QueryRowContext(ctx, query).Scan(&sum.Total, &sum.Active, &sum.LowStock, &sum.OutOfStock); err != nil {
		return nil, fmt.Errorf("summarizing products: %w", err)
	}

	return &sum, nil
}

// LockProduct reads a product and holds a row lock on it until the
// surrounding transaction ends. Only meaningful on a store built over a tx.
func (s *Store) LockProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	query := `SELECT ` + selectProductColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("product")
		}

		return nil, fmt.Errorf("locking product: %w", err)
	}

	return p, nil
}
