package order_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	orderhttp "github.com/MrJamesThe3rd/balcao/internal/http/order"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type mocks struct {
	orders   *order.MockRepository
	etx      *order.MockEditTx
	products *order.MockProductLookup
	repo     *workflow.MockRepository
	uow      *workflow.MockUnitOfWork
	rec      *workflow.MockRecorder
}

func serve(t *testing.T, role auth.Role, setup func(m mocks), method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := mocks{
		orders:   order.NewMockRepository(ctrl),
		etx:      order.NewMockEditTx(ctrl),
		products: order.NewMockProductLookup(ctrl),
		repo:     workflow.NewMockRepository(ctrl),
		uow:      workflow.NewMockUnitOfWork(ctrl),
		rec:      workflow.NewMockRecorder(ctrl),
	}
	setup(m)

	wf := workflow.NewService(m.repo, m.rec, slog.New(slog.DiscardHandler))
	h := orderhttp.NewHandler(order.NewService(m.orders, m.products), wf)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithActor(req.Context(), auth.NewActor(uuid.New(), "Ana", role))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/orders", h.Routes)

	req := httptest.NewRequestWithContext(context.Background(), method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	return rr
}

func TestHandler_AddItem(t *testing.T) {
	orderID := uuid.New()
	productID := uuid.New()

	soda := &product.Product{ID: productID, Name: "Soda", Price: 500, Active: true}

	type args struct {
		target string
		body   string
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(m mocks)
		wantStatus int
		check      func(t *testing.T, got orderhttp.OrderResponse)
	}

	body := fmt.Sprintf(`{"product_id":%q,"quantity":3}`, productID)

	tests := []testCase{
		{
			name: "SnapshotsPriceAndStartsOrder",
			args: args{target: "/orders/" + orderID.String() + "/items", body: body},
			setupMock: func(m mocks) {
				m.products.EXPECT().GetProduct(gomock.Any(), productID).Return(soda, nil)
				m.orders.EXPECT().BeginEdit(gomock.Any()).Return(m.etx, nil)
				m.etx.EXPECT().LockOrder(gomock.Any(), orderID).
					Return(&order.Order{ID: orderID, Type: order.TypeTakeaway, Status: order.StatusOpen}, nil)
				m.etx.EXPECT().InsertItem(gomock.Any(), gomock.Any()).Return(nil)
				m.etx.EXPECT().UpdateStatus(gomock.Any(), orderID, order.StatusInProgress).Return(nil)
				m.etx.EXPECT().RecomputeTotal(gomock.Any(), orderID).Return(int64(1500), nil)
				m.etx.EXPECT().Commit().Return(nil)
				m.etx.EXPECT().Rollback().Return(nil).AnyTimes()
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, got orderhttp.OrderResponse) {
				assert.Equal(t, order.StatusInProgress, got.Status)
				assert.Equal(t, int64(1500), got.Total)
			},
		},
		{
			name: "ClosedOrderIsLocked",
			args: args{target: "/orders/" + orderID.String() + "/items", body: body},
			setupMock: func(m mocks) {
				m.products.EXPECT().GetProduct(gomock.Any(), productID).Return(soda, nil)
				m.orders.EXPECT().BeginEdit(gomock.Any()).Return(m.etx, nil)
				m.etx.EXPECT().LockOrder(gomock.Any(), orderID).
					Return(&order.Order{ID: orderID, Status: order.StatusClosed}, nil)
				m.etx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "BadOrderID",
			args:       args{target: "/orders/123/items", body: body},
			setupMock:  func(mocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ZeroQuantity",
			args:       args{target: "/orders/" + orderID.String() + "/items", body: fmt.Sprintf(`{"product_id":%q,"quantity":0}`, productID)},
			setupMock:  func(mocks) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, auth.RoleWaiter, tt.setupMock, http.MethodPost, tt.args.target, tt.args.body)

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.check == nil {
				return
			}

			var got orderhttp.OrderResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			tt.check(t, got)
		})
	}
}

type closingBody struct {
	Order     orderhttp.OrderResponse `json:"order"`
	Movements []struct {
		Quantity         int64 `json:"quantity"`
		PreviousQuantity int64 `json:"previous_quantity"`
		NewQuantity      int64 `json:"new_quantity"`
	} `json:"stock_movements"`
	Entry *struct {
		Amount   int64       `json:"amount"`
		Type     ledger.Type `json:"type"`
		Category string      `json:"category"`
	} `json:"financial_transaction"`
}

func TestHandler_Close(t *testing.T) {
	orderID := uuid.New()
	tableID := uuid.New()
	productID := uuid.New()

	readyOrder := func() *order.Order {
		return &order.Order{
			ID:      orderID,
			TableID: &tableID,
			Type:    order.TypeTable,
			Status:  order.StatusReady,
			Items: []*order.Item{
				{ID: uuid.New(), ProductID: productID, Quantity: 2, UnitPrice: 500, TotalPrice: 1000, Status: order.ItemDelivered},
				{ID: uuid.New(), ProductID: productID, Quantity: 5, UnitPrice: 500, TotalPrice: 2500, Status: order.ItemCancelled},
			},
		}
	}

	type testCase struct {
		name       string
		body       string
		setupMock  func(m mocks)
		wantStatus int
		check      func(t *testing.T, got closingBody)
	}

	tests := []testCase{
		{
			name: "ReadyOrder",
			body: `{"payment_method":"cash"}`,
			setupMock: func(m mocks) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.uow, nil)
				m.uow.EXPECT().LockOrder(gomock.Any(), orderID).Return(readyOrder(), nil)
				m.uow.EXPECT().LockProduct(gomock.Any(), productID).
					Return(&product.Product{ID: productID, Name: "Soda", StockQuantity: new(int64(10)), Active: true}, nil)
				m.uow.EXPECT().AdjustStock(gomock.Any(), productID, int64(-2)).Return(int64(8), nil)
				m.uow.EXPECT().RecordMovement(gomock.Any(), gomock.Any()).Return(nil)
				m.uow.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
				m.uow.EXPECT().CloseOrder(gomock.Any(), orderID, ledger.PaymentCash, gomock.Any()).Return(nil)
				m.uow.EXPECT().SetTableStatus(gomock.Any(), tableID, order.TableAvailable).Return(nil)
				m.uow.EXPECT().Commit().Return(nil)
				m.uow.EXPECT().Rollback().Return(nil).AnyTimes()
				m.rec.EXPECT().Operation(workflow.OpCloseOrder, gomock.Nil())
				m.rec.EXPECT().StockLevel(productID, "Soda", int64(8))
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, got closingBody) {
				assert.Equal(t, order.StatusClosed, got.Order.Status)
				assert.Equal(t, order.PaymentPaid, got.Order.PaymentStatus)
				assert.Equal(t, int64(1000), got.Order.Total)

				require.Len(t, got.Movements, 1)
				assert.Equal(t, int64(-2), got.Movements[0].Quantity)
				assert.Equal(t, int64(10), got.Movements[0].PreviousQuantity)
				assert.Equal(t, int64(8), got.Movements[0].NewQuantity)

				require.NotNil(t, got.Entry)
				assert.Equal(t, int64(1000), got.Entry.Amount)
				assert.Equal(t, ledger.TypeIncome, got.Entry.Type)
				assert.Equal(t, ledger.CategorySale, got.Entry.Category)
			},
		},
		{
			name: "OpenOrderCannotClose",
			body: `{"payment_method":"cash"}`,
			setupMock: func(m mocks) {
				o := readyOrder()
				o.Status = order.StatusOpen

				m.repo.EXPECT().Begin(gomock.Any()).Return(m.uow, nil)
				m.uow.EXPECT().LockOrder(gomock.Any(), orderID).Return(o, nil)
				m.uow.EXPECT().Rollback().Return(nil)
				m.rec.EXPECT().Operation(workflow.OpCloseOrder, gomock.Not(gomock.Nil()))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "MissingPaymentMethod",
			body:       `{}`,
			setupMock:  func(mocks) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, auth.RoleCashier, tt.setupMock, http.MethodPost, "/orders/"+orderID.String()+"/close", tt.body)

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.check == nil {
				return
			}

			var got closingBody
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			tt.check(t, got)
		})
	}
}

func TestHandler_Cancel(t *testing.T) {
	orderID := uuid.New()
	tableID := uuid.New()

	type testCase struct {
		name       string
		status     order.Status
		setupMock  func(m mocks, o *order.Order)
		wantStatus int
	}

	tests := []testCase{
		{
			name:   "ReleasesTable",
			status: order.StatusInProgress,
			setupMock: func(m mocks, o *order.Order) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.uow, nil)
				m.uow.EXPECT().LockOrder(gomock.Any(), orderID).Return(o, nil)
				m.uow.EXPECT().UpdateOrderStatus(gomock.Any(), orderID, order.StatusCancelled).Return(nil)
				m.uow.EXPECT().SetTableStatus(gomock.Any(), tableID, order.TableAvailable).Return(nil)
				m.uow.EXPECT().Commit().Return(nil)
				m.uow.EXPECT().Rollback().Return(nil).AnyTimes()
				m.rec.EXPECT().Operation(workflow.OpCancelOrder, gomock.Nil())
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "ClosedOrder",
			status: order.StatusClosed,
			setupMock: func(m mocks, o *order.Order) {
				m.repo.EXPECT().Begin(gomock.Any()).Return(m.uow, nil)
				m.uow.EXPECT().LockOrder(gomock.Any(), orderID).Return(o, nil)
				m.uow.EXPECT().Rollback().Return(nil)
				m.rec.EXPECT().Operation(workflow.OpCancelOrder, gomock.Not(gomock.Nil()))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &order.Order{ID: orderID, TableID: &tableID, Type: order.TypeTable, Status: tt.status}

			rr := serve(t, auth.RoleWaiter, func(m mocks) { tt.setupMock(m, o) },
				http.MethodPost, "/orders/"+orderID.String()+"/cancel", "")

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
