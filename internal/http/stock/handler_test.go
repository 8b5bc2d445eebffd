package stock_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	stockhttp "github.com/MrJamesThe3rd/balcao/internal/http/stock"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type mocks struct {
	stock *stock.MockRepository
	repo  *workflow.MockRepository
	uow   *workflow.MockUnitOfWork
	rec   *workflow.MockRecorder
}

func serve(t *testing.T, role auth.Role, setup func(m mocks), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		stock: stock.NewMockRepository(ctrl),
		repo:  workflow.NewMockRepository(ctrl),
		uow:   workflow.NewMockUnitOfWork(ctrl),
		rec:   workflow.NewMockRecorder(ctrl),
	}
	setup(m)

	wf := workflow.NewService(m.repo, m.rec, slog.New(slog.DiscardHandler))
	h := stockhttp.NewHandler(stock.NewService(m.stock), wf)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithActor(req.Context(), auth.NewActor(uuid.New(), "Joana", role))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/stock", h.Routes)

	req := httptest.NewRequestWithContext(context.Background(), method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	return rr
}

func TestHandler_Record(t *testing.T) {
	productID := uuid.New()

	soda := func(qty *int64) *product.Product {
		return &product.Product{ID: productID, Name: "Soda", StockQuantity: qty, Active: true}
	}

	type args struct {
		role auth.Role
		body string
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m mocks)
		wantStatus int
		want       *stockhttp.MovementResponse
	}

	movement := func(typ string, qty int) string {
		return fmt.Sprintf(`{"product_id":%q,"type":%q,"quantity":%d}`, productID, typ, qty)
	}

	tests := []testCase{
		{
			name: "PurchaseAddsStock",
			args: args{role: auth.RoleManager, body: movement("purchase", 5)},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.uow, nil)
				m.uow.EXPECT().LockProduct(gomock.Any(), productID).Return(soda(new(int64(10))), nil)
				m.uow.EXPECT().AdjustStock(gomock.Any(), productID, int64(5)).Return(int64(15), nil)
				m.uow.EXPECT().RecordMovement(gomock.Any(), gomock.Any()).Return(nil)
				m.uow.EXPECT().Commit().Return(nil)
				m.uow.EXPECT().Rollback().Return(nil).AnyTimes()
				m.rec.EXPECT().Operation(workflow.OpRecordStockMovement, gomock.Nil())
				m.rec.EXPECT().StockLevel(productID, "Soda", int64(15))
			},
			wantStatus: http.StatusCreated,
			want: &stockhttp.MovementResponse{
				ProductID:        productID,
				ProductName:      "Soda",
				Type:             stock.MovementPurchase,
				Quantity:         5,
				PreviousQuantity: 10,
				NewQuantity:      15,
			},
		},
		{
			name: "FirstMovementStartsTracking",
			args: args{role: auth.RoleManager, body: movement("adjustment", 4)},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.uow, nil)
				m.uow.EXPECT().LockProduct(gomock.Any(), productID).Return(soda(nil), nil)
				m.uow.EXPECT().AdjustStock(gomock.Any(), productID, int64(4)).Return(int64(4), nil)
				m.uow.EXPECT().RecordMovement(gomock.Any(), gomock.Any()).Return(nil)
				m.uow.EXPECT().Commit().Return(nil)
				m.uow.EXPECT().Rollback().Return(nil).AnyTimes()
				m.rec.EXPECT().Operation(workflow.OpRecordStockMovement, gomock.Nil())
				m.rec.EXPECT().StockLevel(productID, "Soda", int64(4))
			},
			wantStatus: http.StatusCreated,
			want: &stockhttp.MovementResponse{
				ProductID:        productID,
				ProductName:      "Soda",
				Type:             stock.MovementAdjustment,
				Quantity:         4,
				PreviousQuantity: 0,
				NewQuantity:      4,
			},
		},
		{
			name: "LossBeyondStock",
			args: args{role: auth.RoleManager, body: movement("loss", 20)},
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.uow, nil)
				m.uow.EXPECT().LockProduct(gomock.Any(), productID).Return(soda(new(int64(3))), nil)
				m.uow.EXPECT().Rollback().Return(nil)
				m.rec.EXPECT().Operation(workflow.OpRecordStockMovement, gomock.Not(gomock.Nil()))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "UnknownType",
			args:       args{role: auth.RoleManager, body: movement("gift", 1)},
			setupMock:  func(mocks) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "ZeroQuantity",
			args:       args{role: auth.RoleManager, body: movement("purchase", 0)},
			setupMock:  func(mocks) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "WaiterForbidden",
			args:       args{role: auth.RoleWaiter, body: movement("purchase", 1)},
			setupMock:  func(mocks) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, tt.args.role, tt.setupMock, http.MethodPost, "/stock/movements", tt.args.body)

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.want == nil {
				return
			}

			var got stockhttp.MovementResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))

			assert.Equal(t, tt.want.ProductID, got.ProductID)
			assert.Equal(t, tt.want.ProductName, got.ProductName)
			assert.Equal(t, tt.want.Type, got.Type)
			assert.Equal(t, tt.want.Quantity, got.Quantity)
			assert.Equal(t, tt.want.PreviousQuantity, got.PreviousQuantity)
			assert.Equal(t, tt.want.NewQuantity, got.NewQuantity)
			assert.Equal(t, got.NewQuantity-got.PreviousQuantity, got.Quantity)
		})
	}
}

func TestHandler_List(t *testing.T) {
	productID := uuid.New()

	type testCase struct {
		name       string
		target     string
		setupMock  func(m mocks)
		wantStatus int
		wantCount  int
	}

	tests := []testCase{
		{
			name:   "Filtered",
			target: "/stock/movements?product_id=" + productID.String() + "&type=sale&start_date=2026-03-01&end_date=2026-03-31",
			setupMock: func(m mocks) {
				m.stock.EXPECT().ListMovements(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f stock.ListFilter) ([]*stock.Movement, error) {
						require.NotNil(t, f.ProductID)
						assert.Equal(t, productID, *f.ProductID)
						assert.Equal(t, stock.MovementSale, f.Type)
						assert.Equal(t, "2026-03-01", f.Range.Start.Format(time.DateOnly))
						assert.Equal(t, "2026-03-31", f.Range.LastDay().Format(time.DateOnly))

						return []*stock.Movement{
							{ID: uuid.New(), ProductID: productID, Type: stock.MovementSale, Quantity: -3, PreviousQuantity: 10, NewQuantity: 7},
						}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:       "BadProductID",
			target:     "/stock/movements?product_id=nope",
			setupMock:  func(mocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ReversedRange",
			target:     "/stock/movements?start_date=2026-03-31&end_date=2026-03-01",
			setupMock:  func(mocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, auth.RoleManager, tt.setupMock, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var got []stockhttp.MovementResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.Len(t, got, tt.wantCount)
		})
	}
}
