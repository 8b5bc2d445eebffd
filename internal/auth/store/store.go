package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/database"
)

type Store struct {
	db database.Querier
}

func New(db database.Querier) *Store {
	return &Store{db: db}
}

func (s *Store) FindByLogin(ctx context.Context, login string) (*auth.Employee, error) {
	query := `
		SELECT id, username, email, full_name, role, password_hash, is_active
		FROM employees
		WHERE username = $1 OR email = $1
		LIMIT 1
	`

	var (
		emp  auth.Employee
		role string
	)

	err := s.db.QueryRowContext(ctx, query, login).Scan(
		&emp.ID, &emp.Username, &emp.Email, &emp.FullName, &role, &emp.PasswordHash, &emp.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("employee")
		}

		return nil, fmt.Errorf("finding employee: %w", err)
	}

	emp.Role = auth.Role(role)

	return &emp, nil
}
