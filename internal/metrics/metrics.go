// Package metrics exposes the prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	operations *prometheus.CounterVec
	stockLevel *prometheus.GaugeVec
}

// New registers every collector on reg under the given prefix. reg must
// also be a Gatherer for Handler to serve it.
func New(reg *prometheus.Registry, prefix string) *Metrics {
	name := func(n string) string {
		if prefix == "" {
			return n
		}

		return prefix + "_" + n
	}

	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: name("http_requests_total"),
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    name("http_request_duration_seconds"),
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: name("workflow_operations_total"),
				Help: "Workflow use cases by outcome",
			},
			[]string{"operation", "outcome"},
		),
		stockLevel: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: name("stock_level"),
				Help: "Stock quantity of a product after its last movement",
			},
			[]string{"product_id", "product"},
		),
	}
}

// Operation counts one run of a workflow use case.
func (m *Metrics) Operation(name string, err error) {
	outcome := OutcomeCommitted
	if err != nil {
		outcome = OutcomeRolledBack
	}

	m.operations.WithLabelValues(name, outcome).Inc()
}

func (m *Metrics) StockLevel(productID uuid.UUID, name string, qty int64) {
	m.stockLevel.WithLabelValues(productID.String(), name).Set(float64(qty))
}

// Middleware records request counts and latency labelled by route pattern,
// so ids in paths do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		labels := []string{r.Method, path, strconv.Itoa(status)}
		m.requests.WithLabelValues(labels...).Inc()
		m.duration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
