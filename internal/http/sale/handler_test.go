package sale_test

import (
	"context"
	"encoding/json"
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
	"github.com/MrJamesThe3rd/balcao/internal/http/sale"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
)

type errorBody struct {
	Error    string   `json:"error"`
	Problems []string `json:"problems"`
	Stock    *struct {
		Product   string `json:"product"`
		Available int64  `json:"available"`
		Requested int64  `json:"requested"`
	} `json:"stock"`
}

func withActor(role auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if role != "" {
				ctx = auth.WithActor(ctx, auth.NewActor(uuid.New(), "Caixa", role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TestHandler_Finalize(t *testing.T) {
	productID := uuid.New()

	type args struct {
		role auth.Role
		body string
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(repo *workflow.MockRepository, uow *workflow.MockUnitOfWork, rec *workflow.MockRecorder)
		wantStatus int
		check      func(t *testing.T, body errorBody)
	}

	tests := []testCase{
		{
			name:       "Unauthenticated",
			args:       args{body: `{"items":[],"payment_method":"cash"}`},
			setupMock:  func(*workflow.MockRepository, *workflow.MockUnitOfWork, *workflow.MockRecorder) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "WaiterForbidden",
			args:       args{role: auth.RoleWaiter, body: `{"items":[],"payment_method":"cash"}`},
			setupMock:  func(*workflow.MockRepository, *workflow.MockUnitOfWork, *workflow.MockRecorder) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "MalformedBody",
			args:       args{role: auth.RoleCashier, body: `{"items":`},
			setupMock:  func(*workflow.MockRepository, *workflow.MockUnitOfWork, *workflow.MockRecorder) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "EmptyCart",
			args:       args{role: auth.RoleCashier, body: `{"items":[],"payment_method":"cash"}`},
			setupMock:  func(*workflow.MockRepository, *workflow.MockUnitOfWork, *workflow.MockRecorder) {},
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body errorBody) {
				assert.NotEmpty(t, body.Problems)
			},
		},
		{
			name: "InsufficientStock",
			args: args{
				role: auth.RoleCashier,
				body: `{"items":[{"product_id":"` + productID.String() + `","quantity":3,"unit_price":500}],"payment_method":"pix"}`,
			},
			setupMock: func(repo *workflow.MockRepository, uow *workflow.MockUnitOfWork, rec *workflow.MockRecorder) {
				repo.EXPECT().Begin(gomock.Any()).Return(uow, nil)
				uow.EXPECT().LockProduct(gomock.Any(), productID).
					Return(&product.Product{ID: productID, Name: "Soda", StockQuantity: new(int64(1)), Active: true}, nil)
				uow.EXPECT().Rollback().Return(nil)
				rec.EXPECT().Operation(workflow.OpFinalizeSale, gomock.Not(gomock.Nil()))
			},
			wantStatus: http.StatusConflict,
			check: func(t *testing.T, body errorBody) {
				require.NotNil(t, body.Stock)
				assert.Equal(t, "Soda", body.Stock.Product)
				assert.Equal(t, int64(1), body.Stock.Available)
				assert.Equal(t, int64(3), body.Stock.Requested)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := workflow.NewMockRepository(ctrl)
			uow := workflow.NewMockUnitOfWork(ctrl)
			rec := workflow.NewMockRecorder(ctrl)
			tt.setupMock(repo, uow, rec)

			h := sale.NewHandler(workflow.NewService(repo, rec, slog.New(slog.DiscardHandler)))

			r := chi.NewRouter()
			r.Use(withActor(tt.args.role))
			r.Route("/sales", h.Routes)

			req := httptest.NewRequestWithContext(context.Background(), http.MethodPost, "/sales", strings.NewReader(tt.args.body))
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			var body errorBody
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)

			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}
