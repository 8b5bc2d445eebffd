package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	"github.com/MrJamesThe3rd/balcao/internal/matching"
)

type Store struct {
	db database.Querier
}

func New(db database.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) FindAlias(ctx context.Context, raw string) (*matching.Suggestion, error) {
	query := `
		SELECT p.id, p.name
		FROM product_aliases a
		JOIN products p ON p.id = a.product_id
		WHERE $1 ILIKE '%' || a.raw_pattern || '%'
		ORDER BY LENGTH(a.raw_pattern) DESC, a.created_at DESC
		LIMIT 1
	`

	return s.findOne(ctx, query, raw)
}

func (s *Store) FindByName(ctx context.Context, name string) (*matching.Suggestion, error) {
	query := `
		SELECT id, name
		FROM products
		WHERE LOWER(name) = LOWER($1) AND is_active
		ORDER BY created_at
		LIMIT 1
	`

	return s.findOne(ctx, query, name)
}

func (s *Store) findOne(ctx context.Context, query string, arg string) (*matching.Suggestion, error) {
	var sug matching.Suggestion

	err := s.db.QueryRowContext(ctx, query, arg).Scan(&sug.ProductID, &sug.ProductName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return &sug, nil
}

func (s *Store) SaveAlias(ctx context.Context, pattern string, productID uuid.UUID) error {
	query := `
		INSERT INTO product_aliases (raw_pattern, product_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (raw_pattern) DO UPDATE
		SET product_id = EXCLUDED.product_id, created_at = EXCLUDED.created_at
	`

	_, err := s.db.ExecContext(ctx, query, pattern, productID)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperr.NotFound("product")
		}

		return fmt.Errorf("saving alias: %w", err)
	}

	return nil
}
