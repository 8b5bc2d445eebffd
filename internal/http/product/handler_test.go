package product_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/balcao/internal/apperr"
	"github.com/MrJamesThe3rd/balcao/internal/auth"
	producthttp "github.com/MrJamesThe3rd/balcao/internal/http/product"
	"github.com/MrJamesThe3rd/balcao/internal/product"
)

func serve(t *testing.T, role auth.Role, repo product.Repository, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := producthttp.NewHandler(product.NewService(repo))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithActor(req.Context(), auth.NewActor(uuid.New(), "Rui", role))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Route("/products", h.Routes)

	req := httptest.NewRequestWithContext(context.Background(), method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	return rr
}

func TestHandler_Create(t *testing.T) {
	type args struct {
		role auth.Role
		body string
	}

	type testCase struct {
		name       string
		args       args
		setupMock  func(repo *product.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Tracked",
			args: args{role: auth.RoleManager, body: `{"name":"Soda","category":"drinks","price":500,"track_stock":true,"min_stock_quantity":5}`},
			setupMock: func(repo *product.MockRepository) {
				repo.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p *product.Product) error {
					p.ID = uuid.New()
					return nil
				})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "MissingName",
			args:       args{role: auth.RoleManager, body: `{"category":"drinks","price":500}`},
			setupMock:  func(*product.MockRepository) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "WaiterForbidden",
			args:       args{role: auth.RoleWaiter, body: `{"name":"Soda","category":"drinks","price":500}`},
			setupMock:  func(*product.MockRepository) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "UnknownField",
			args:       args{role: auth.RoleManager, body: `{"name":"Soda","stock_quantity":10}`},
			setupMock:  func(*product.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rr := serve(t, tt.args.role, repo, http.MethodPost, "/products", tt.args.body)
			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantStatus != http.StatusCreated {
				return
			}

			var body struct {
				Name          string `json:"name"`
				StockQuantity *int64 `json:"stock_quantity"`
				StockStatus   string `json:"stock_status"`
				Active        bool   `json:"active"`
			}
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.Equal(t, "Soda", body.Name)
			require.NotNil(t, body.StockQuantity)
			assert.Equal(t, int64(0), *body.StockQuantity)
			assert.Equal(t, "out_of_stock", body.StockStatus)
			assert.True(t, body.Active)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		target     string
		setupMock  func(repo *product.MockRepository)
		wantStatus int
	}{
		{
			name:   "Found",
			target: "/products/" + id.String(),
			setupMock: func(repo *product.MockRepository) {
				repo.EXPECT().GetProduct(gomock.Any(), id).Return(&product.Product{ID: id, Name: "Ice", Active: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "NotFound",
			target: "/products/" + id.String(),
			setupMock: func(repo *product.MockRepository) {
				repo.EXPECT().GetProduct(gomock.Any(), id).Return(nil, apperr.NotFound("product"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "BadID",
			target:     "/products/42",
			setupMock:  func(*product.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rr := serve(t, auth.RoleWaiter, repo, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestHandler_ListByStockStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	active := true

	repo.EXPECT().ListProducts(gomock.Any(), product.ListFilter{Active: &active, Status: product.StockLow}).Return([]*product.Product{
		{ID: uuid.New(), Name: "Soda", StockQuantity: new(int64(3)), MinStockQuantity: 5, Active: true},
		{ID: uuid.New(), Name: "Beer", StockQuantity: new(int64(40)), MinStockQuantity: 5, Active: true},
		{ID: uuid.New(), Name: "Ice", Active: true},
	}, nil)

	rr := serve(t, auth.RoleManager, repo, http.MethodGet, "/products?status=low&active=true", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "Soda", body[0].Name)

	rr = serve(t, auth.RoleManager, repo, http.MethodGet, "/products?active=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
