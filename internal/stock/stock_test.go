package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	"github.com/MrJamesThe3rd/balcao/internal/period"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
)

func TestLevel_Apply(t *testing.T) {
	type args struct {
		current *int64
		qty     int64
		typ     stock.MovementType
	}

	type testCase struct {
		name    string
		args    args
		want    stock.Change
		wantErr error
	}

	tests := []testCase{
		{
			name: "SaleDecrements",
			args: args{current: new(int64(10)), qty: 3, typ: stock.MovementSale},
			want: stock.Change{Previous: 10, New: 7, Delta: -3},
		},
		{
			name: "SaleOfLastUnit",
			args: args{current: new(int64(1)), qty: 1, typ: stock.MovementSale},
			want: stock.Change{Previous: 1, New: 0, Delta: -1},
		},
		{
			name:    "SaleBeyondStock",
			args:    args{current: new(int64(10)), qty: 20, typ: stock.MovementSale},
			wantErr: apperr.ErrInsufficientStock,
		},
		{
			name: "LossStoresNegative",
			args: args{current: new(int64(5)), qty: 2, typ: stock.MovementLoss},
			want: stock.Change{Previous: 5, New: 3, Delta: -2},
		},
		{
			name:    "LossBeyondStock",
			args:    args{current: new(int64(1)), qty: 2, typ: stock.MovementLoss},
			wantErr: apperr.ErrInsufficientStock,
		},
		{
			name: "PurchaseIncrements",
			args: args{current: new(int64(0)), qty: 12, typ: stock.MovementPurchase},
			want: stock.Change{Previous: 0, New: 12, Delta: 12},
		},
		{
			name: "UntrackedStartsAtZero",
			args: args{qty: 4, typ: stock.MovementAdjustment},
			want: stock.Change{Previous: 0, New: 4, Delta: 4},
		},
		{
			name:    "UntrackedSale",
			args:    args{qty: 1, typ: stock.MovementSale},
			wantErr: apperr.ErrInsufficientStock,
		},
		{
			name: "Transfer",
			args: args{current: new(int64(2)), qty: 3, typ: stock.MovementTransfer},
			want: stock.Change{Previous: 2, New: 5, Delta: 3},
		},
		{
			name:    "ZeroQuantity",
			args:    args{current: new(int64(2)), qty: 0, typ: stock.MovementPurchase},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "UnknownType",
			args:    args{current: new(int64(2)), qty: 1, typ: "gift"},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := stock.Level{ProductID: uuid.New(), Product: "Soda", Quantity: tt.args.current}

			got, err := level.Apply(tt.args.qty, tt.args.typ)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.New-got.Previous, got.Delta)
		})
	}
}

func TestLevel_ApplyInsufficientDetail(t *testing.T) {
	level := stock.Level{ProductID: uuid.New(), Product: "Soda", Quantity: new(int64(10))}

	_, err := level.Apply(20, stock.MovementSale)

	var insufficient *apperr.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(10), insufficient.Available)
	assert.Equal(t, int64(20), insufficient.Requested)
	assert.Equal(t, "insufficient stock for Soda: available 10, requested 20", err.Error())
}

func TestChange_Movement(t *testing.T) {
	productID, employeeID, orderID := uuid.New(), uuid.New(), uuid.New()
	ref := &stock.Reference{ID: orderID, Type: stock.RefOrder}

	m := stock.Change{Previous: 10, New: 7, Delta: -3}.Movement(productID, stock.MovementSale, employeeID, ref, "")

	assert.Equal(t, productID, m.ProductID)
	assert.Equal(t, int64(-3), m.Quantity)
	assert.Equal(t, int64(10), m.PreviousQuantity)
	assert.Equal(t, int64(7), m.NewQuantity)
	assert.Equal(t, ref, m.Reference)
}

func TestService_List(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("DefaultsToCurrentMonth", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := stock.NewMockRepository(ctrl)
		repo.EXPECT().
			ListMovements(gomock.Any(), stock.ListFilter{Range: period.CurrentMonth(now)}).
			Return([]*stock.Movement{{ID: uuid.New()}}, nil)

		svc := stock.NewService(repo)
		svc.SetClock(func() time.Time { return now })

		ctx := auth.WithActor(context.Background(), auth.NewActor(uuid.New(), "Gil", auth.RoleManager))

		got, err := svc.List(ctx, stock.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("Forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := stock.NewService(stock.NewMockRepository(ctrl))
		ctx := auth.WithActor(context.Background(), auth.NewActor(uuid.New(), "Wes", auth.RoleWaiter))

		_, err := svc.List(ctx, stock.ListFilter{})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}
