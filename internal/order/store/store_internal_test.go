package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

func TestMissingReference(t *testing.T) {
	fk := func(constraint string) error {
		return fmt.Errorf("scan: %w", &pgconn.PgError{Code: "23503", ConstraintName: constraint})
	}

	type testCase struct {
		name    string
		err     error
		wantMsg string
	}

	tests := []testCase{
		{name: "Customer", err: fk("orders_customer_id_fkey"), wantMsg: "customer not found"},
		{name: "Table", err: fk("orders_table_id_fkey"), wantMsg: "table not found"},
		{name: "ItemProduct", err: fk("order_items_product_id_fkey"), wantMsg: "product not found"},
		{name: "ItemOrder", err: fk("order_items_order_id_fkey"), wantMsg: "order not found"},
		{name: "Unnamed", err: fk(""), wantMsg: "referenced record not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingReference(tt.err)

			assert.ErrorIs(t, got, apperr.ErrNotFound)
			assert.Equal(t, tt.wantMsg, got.Error())
		})
	}

	t.Run("OtherErrors", func(t *testing.T) {
		assert.NoError(t, missingReference(errors.New("connection reset")))
		assert.NoError(t, missingReference(&pgconn.PgError{Code: "23505"}))
	})
}
