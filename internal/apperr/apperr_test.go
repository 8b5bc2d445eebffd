package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{
			name:   "validation",
			err:    apperr.Invalid("quantity must be greater than 0"),
			target: apperr.ErrValidation,
		},
		{
			name:   "insufficient stock",
			err:    &apperr.InsufficientStockError{ProductID: uuid.New(), Available: 1, Requested: 2},
			target: apperr.ErrInsufficientStock,
		},
		{
			name:   "state transition",
			err:    &apperr.StateTransitionError{Entity: "order", From: "closed", To: "cancelled"},
			target: apperr.ErrStateTransition,
		},
		{
			name:   "conflict",
			err:    apperr.Conflict("table %d already has an open order", 4),
			target: apperr.ErrConflict,
		},
		{
			name:   "not found",
			err:    apperr.NotFound("product"),
			target: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("finalizing sale: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.target)
		})
	}
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &apperr.InsufficientStockError{Product: "Soda", Available: 10, Requested: 20}
	assert.Equal(t, "insufficient stock for Soda: available 10, requested 20", err.Error())

	var target *apperr.InsufficientStockError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, int64(10), target.Available)
}

func TestValidate(t *testing.T) {
	type params struct {
		ProductID uuid.UUID `validate:"required"`
		Quantity  int64     `validate:"gt=0"`
		Type      string    `validate:"required,oneof=purchase sale"`
	}

	type testCase struct {
		name         string
		input        params
		wantProblems []string
	}

	tests := []testCase{
		{
			name:  "Valid",
			input: params{ProductID: uuid.New(), Quantity: 1, Type: "sale"},
		},
		{
			name:  "AllMissing",
			input: params{},
			wantProblems: []string{
				"product_id is required",
				"quantity must be greater than 0",
				"type is required",
			},
		},
		{
			name:         "BadEnum",
			input:        params{ProductID: uuid.New(), Quantity: 3, Type: "gift"},
			wantProblems: []string{"type must be one of [purchase sale]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := apperr.Validate(tt.input)
			if tt.wantProblems == nil {
				assert.NoError(t, err)
				return
			}

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantProblems, verr.Problems)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}
