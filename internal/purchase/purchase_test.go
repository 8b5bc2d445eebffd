package purchase_test

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
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
)

func TestReceiptStatus(t *testing.T) {
	tests := []struct {
		name  string
		items []*purchase.Item
		want  purchase.Status
	}{
		{
			name:  "NothingReceived",
			items: []*purchase.Item{{Quantity: 5}, {Quantity: 2}},
			want:  purchase.StatusPending,
		},
		{
			name:  "OneLinePartially",
			items: []*purchase.Item{{Quantity: 5, ReceivedQuantity: 1}, {Quantity: 2}},
			want:  purchase.StatusPartial,
		},
		{
			name:  "OneLineComplete",
			items: []*purchase.Item{{Quantity: 5, ReceivedQuantity: 5}, {Quantity: 2}},
			want:  purchase.StatusPartial,
		},
		{
			name:  "Everything",
			items: []*purchase.Item{{Quantity: 5, ReceivedQuantity: 5}, {Quantity: 2, ReceivedQuantity: 2}},
			want:  purchase.StatusDelivered,
		},
		{
			name: "NoItems",
			want: purchase.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, purchase.ReceiptStatus(tt.items))
		})
	}
}

func TestPurchase_Checks(t *testing.T) {
	tests := []struct {
		name        string
		purchase    purchase.Purchase
		cancelErr   error
		receiveErr  error
		payErr      error
		cancelError string
	}{
		{
			name:     "Pending",
			purchase: purchase.Purchase{Status: purchase.StatusPending, PaymentStatus: purchase.PaymentPending},
		},
		{
			name:       "Partial",
			purchase:   purchase.Purchase{Status: purchase.StatusPartial, PaymentStatus: purchase.PaymentPaid},
			payErr:     apperr.ErrStateTransition,
			receiveErr: nil,
		},
		{
			name:        "Delivered",
			purchase:    purchase.Purchase{Status: purchase.StatusDelivered, PaymentStatus: purchase.PaymentPending},
			cancelErr:   apperr.ErrStateTransition,
			receiveErr:  apperr.ErrStateTransition,
			cancelError: "purchase cannot move from delivered to cancelled: purchase was already delivered",
		},
		{
			name:        "Cancelled",
			purchase:    purchase.Purchase{Status: purchase.StatusCancelled, PaymentStatus: purchase.PaymentCancelled},
			cancelErr:   apperr.ErrStateTransition,
			receiveErr:  apperr.ErrStateTransition,
			payErr:      apperr.ErrStateTransition,
			cancelError: "purchase cannot move from cancelled to cancelled: purchase is already cancelled",
		},
	}

	check := func(t *testing.T, err, want error) {
		t.Helper()

		if want == nil {
			assert.NoError(t, err)
			return
		}

		assert.ErrorIs(t, err, want)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cancelErr := tt.purchase.CheckCancel()
			check(t, cancelErr, tt.cancelErr)
			check(t, tt.purchase.CheckReceive(), tt.receiveErr)
			check(t, tt.purchase.CheckPay(), tt.payErr)

			if tt.cancelError != "" {
				assert.EqualError(t, cancelErr, tt.cancelError)
			}
		})
	}
}

func actingAs(role auth.Role) context.Context {
	return auth.WithActor(context.Background(), auth.NewActor(uuid.New(), "tester", role))
}

func TestService_Create(t *testing.T) {
	supplierID := uuid.New()
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		ctx       context.Context
		params    purchase.CreateParams
		setupMock func(m *purchase.MockRepository)
		wantTotal int64
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			ctx:  actingAs(auth.RoleManager),
			params: purchase.CreateParams{
				SupplierID: supplierID,
				Date:       date,
				Items: []purchase.ItemParams{
					{ProductID: uuid.New(), Quantity: 24, UnitCost: 250},
					{ProductID: uuid.New(), Quantity: 6, UnitCost: 1000},
				},
			},
			setupMock: func(m *purchase.MockRepository) {
				m.EXPECT().CreatePurchase(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *purchase.Purchase) error {
						assert.Equal(t, purchase.StatusPending, p.Status)
						assert.Equal(t, purchase.PaymentPending, p.PaymentStatus)
						assert.Equal(t, date, p.Date)
						assert.Len(t, p.Items, 2)

						p.ID = uuid.New()

						return nil
					})
			},
			wantTotal: 12000,
		},
		{
			name:    "NoItems",
			ctx:     actingAs(auth.RoleManager),
			params:  purchase.CreateParams{SupplierID: supplierID},
			wantErr: apperr.ErrValidation,
		},
		{
			name: "BadLine",
			ctx:  actingAs(auth.RoleManager),
			params: purchase.CreateParams{
				SupplierID: supplierID,
				Items:      []purchase.ItemParams{{ProductID: uuid.New(), Quantity: 0}},
			},
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "Forbidden",
			ctx:     actingAs(auth.RoleCashier),
			params:  purchase.CreateParams{SupplierID: supplierID},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := purchase.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := purchase.NewService(repo).Create(tt.ctx, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestService_ListDefaultsToCurrentMonth(t *testing.T) {
	now := time.Date(2026, 2, 10, 15, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := purchase.NewMockRepository(ctrl)
	repo.EXPECT().
		ListPurchases(gomock.Any(), purchase.ListFilter{Range: period.CurrentMonth(now)}).
		Return([]*purchase.Purchase{{ID: uuid.New()}}, nil)
	repo.EXPECT().
		Summary(gomock.Any(), period.CurrentMonth(now)).
		Return(&purchase.Summary{Count: 1}, nil)

	svc := purchase.NewService(repo)
	svc.SetClock(func() time.Time { return now })

	got, err := svc.List(actingAs(auth.RoleAdmin), purchase.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	sum, err := svc.Summary(actingAs(auth.RoleAdmin), period.Range{})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Count)
}
