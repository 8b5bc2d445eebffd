package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/balcao/internal/metrics"
)

func TestMetrics_Operation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "balcao")

	m.Operation("finalize_sale", nil)
	m.Operation("finalize_sale", nil)
	m.Operation("finalize_sale", errors.New("insufficient stock"))

	expected := `
# HELP balcao_workflow_operations_total Workflow use cases by outcome
# TYPE balcao_workflow_operations_total counter
balcao_workflow_operations_total{operation="finalize_sale",outcome="committed"} 2
balcao_workflow_operations_total{operation="finalize_sale",outcome="rolled_back"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "balcao_workflow_operations_total"))
}

func TestMetrics_StockLevel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "")

	id := uuid.New()
	m.StockLevel(id, "Soda", 10)
	m.StockLevel(id, "Soda", 7)

	expected := `
# HELP stock_level Stock quantity of a product after its last movement
# TYPE stock_level gauge
stock_level{product="Soda",product_id="` + id.String() + `"} 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "stock_level"))
}

func TestMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "balcao")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/orders/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	for range 2 {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	expected := `
# HELP balcao_http_requests_total Total number of HTTP requests
# TYPE balcao_http_requests_total counter
balcao_http_requests_total{method="GET",path="/orders/{id}",status="404"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "balcao_http_requests_total"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "balcao_http_request_duration_seconds")
}
