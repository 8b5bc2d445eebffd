package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/period"
)

func actingAs(role auth.Role) context.Context {
	return auth.WithActor(context.Background(), auth.NewActor(uuid.New(), "tester", role))
}

func TestService_Append(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	type args struct {
		ctx    context.Context
		params ledger.AppendParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *ledger.MockRepository)
		wantErr   error
	}

	valid := ledger.AppendParams{
		Amount:        25000,
		Type:          ledger.TypeExpense,
		Category:      "utilities",
		Description:   "Electricity bill",
		PaymentMethod: ledger.PaymentPix,
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{ctx: actingAs(auth.RoleManager), params: valid},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
						assert.Equal(t, now, e.Date)
						assert.NotEqual(t, uuid.Nil, e.EmployeeID)

						e.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name: "ZeroAmount",
			args: args{ctx: actingAs(auth.RoleManager), params: ledger.AppendParams{
				Type: ledger.TypeIncome, Category: "misc", Description: "x", PaymentMethod: ledger.PaymentCash,
			}},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "NegativeAmount",
			args: args{ctx: actingAs(auth.RoleManager), params: ledger.AppendParams{
				Amount: -10, Type: ledger.TypeIncome, Category: "misc", Description: "x", PaymentMethod: ledger.PaymentCash,
			}},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "UnknownPaymentMethod",
			args: args{ctx: actingAs(auth.RoleManager), params: ledger.AppendParams{
				Amount: 10, Type: ledger.TypeIncome, Category: "misc", Description: "x", PaymentMethod: "barter",
			}},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "Forbidden",
			args:    args{ctx: actingAs(auth.RoleCashier), params: valid},
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "RepoError",
			args: args{ctx: actingAs(auth.RoleAdmin), params: valid},
			setupMock: func(m *ledger.MockRepository) {
				m.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo)
			svc.SetClock(func() time.Time { return now })

			got, err := svc.Append(tt.args.ctx, tt.args.params)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, apperr.ErrValidation) || errors.Is(tt.wantErr, apperr.ErrForbidden) {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Summarize(t *testing.T) {
	march := period.Days(
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	tests := []struct {
		name    string
		totals  ledger.Summary
		balance int64
	}{
		{"Profit", ledger.Summary{Income: 150000, Expense: 42000, Count: 12}, 108000},
		{"Loss", ledger.Summary{Income: 1000, Expense: 5000, Count: 2}, -4000},
		{"Empty", ledger.Summary{}, 0},
		// A stale balance from the store is never trusted.
		{"IgnoresStoredBalance", ledger.Summary{Income: 10, Expense: 3, Balance: 999}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			repo.EXPECT().Totals(gomock.Any(), march).Return(tt.totals, nil)

			got, err := ledger.NewService(repo).Summarize(actingAs(auth.RoleManager), march)
			require.NoError(t, err)
			assert.Equal(t, tt.balance, got.Balance)
			assert.Equal(t, got.Income-got.Expense, got.Balance)
		})
	}
}

func TestService_ListDefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2026, 7, 19, 12, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		ListEntries(gomock.Any(), ledger.ListFilter{Range: period.CurrentMonth(now), Type: ledger.TypeIncome}).
		Return([]*ledger.Entry{{ID: uuid.New()}}, nil)

	svc := ledger.NewService(repo)
	svc.SetClock(func() time.Time { return now })

	got, err := svc.List(actingAs(auth.RoleManager), ledger.ListFilter{Type: ledger.TypeIncome})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSummarize(t *testing.T) {
	entries := []*ledger.Entry{
		{Amount: 1500, Type: ledger.TypeIncome},
		{Amount: 700, Type: ledger.TypeIncome},
		{Amount: 1200, Type: ledger.TypeExpense},
	}

	got := ledger.Summarize(entries)

	assert.Equal(t, ledger.Summary{Income: 2200, Expense: 1200, Balance: 1000, Count: 3}, got)
}

func TestPaymentMethod_Valid(t *testing.T) {
	for _, m := range ledger.PaymentMethods() {
		assert.True(t, m.Valid(), m)
	}

	assert.False(t, ledger.PaymentMethod("voucher").Valid())
}
