package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	authhttp "github.com/MrJamesThe3rd/balcao/internal/http/auth"
	"github.com/MrJamesThe3rd/balcao/internal/http/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/http/order"
	"github.com/MrJamesThe3rd/balcao/internal/http/product"
	"github.com/MrJamesThe3rd/balcao/internal/http/purchase"
	"github.com/MrJamesThe3rd/balcao/internal/http/sale"
	"github.com/MrJamesThe3rd/balcao/internal/http/stock"
	"github.com/MrJamesThe3rd/balcao/internal/http/tour"
	"github.com/MrJamesThe3rd/balcao/internal/metrics"
)

func newTestRouter() http.Handler {
	return New(Handlers{
		Auth:      authhttp.NewHandler(auth.NewService(nil, auth.NewTokenManager("secret", time.Hour))),
		Products:  product.NewHandler(nil),
		Stock:     stock.NewHandler(nil, nil),
		Orders:    order.NewHandler(nil, nil),
		Purchases: purchase.NewHandler(nil, nil, nil),
		Sales:     sale.NewHandler(nil),
		Tours:     tour.NewHandler(nil, nil),
		Ledger:    ledger.NewHandler(nil, nil),
	}, Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		Metrics:        metrics.New(prometheus.NewRegistry(), "test"),
	})
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "Health", method: http.MethodGet, target: "/health", wantStatus: http.StatusOK},
		{name: "Metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK},
		{name: "ProductsNeedToken", method: http.MethodGet, target: "/api/v1/products", wantStatus: http.StatusUnauthorized},
		{name: "SalesNeedToken", method: http.MethodPost, target: "/api/v1/sales", wantStatus: http.StatusUnauthorized},
		{name: "LedgerNeedsToken", method: http.MethodGet, target: "/api/v1/ledger/summary", wantStatus: http.StatusUnauthorized},
		{name: "ReportNeedsToken", method: http.MethodGet, target: "/api/v1/reports/ledger.xlsx", wantStatus: http.StatusUnauthorized},
		{name: "ToursNeedToken", method: http.MethodPost, target: "/api/v1/tours/bookings", wantStatus: http.StatusUnauthorized},
		{name: "MeNeedsToken", method: http.MethodGet, target: "/api/v1/auth/me", wantStatus: http.StatusUnauthorized},
		{name: "Unknown", method: http.MethodGet, target: "/api/v2/products", wantStatus: http.StatusNotFound},
	}

	router := newTestRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequestWithContext(context.Background(), tt.method, tt.target, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequestWithContext(context.Background(), http.MethodOptions, "/api/v1/sales", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
