package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authhttp "github.com/MrJamesThe3rd/balcao/internal/http/auth"
	"github.com/MrJamesThe3rd/balcao/internal/http/ledger"
	"github.com/MrJamesThe3rd/balcao/internal/http/order"
	"github.com/MrJamesThe3rd/balcao/internal/http/product"
	"github.com/MrJamesThe3rd/balcao/internal/http/purchase"
	"github.com/MrJamesThe3rd/balcao/internal/http/sale"
	"github.com/MrJamesThe3rd/balcao/internal/http/stock"
	"github.com/MrJamesThe3rd/balcao/internal/http/tour"
	"github.com/MrJamesThe3rd/balcao/internal/idempotency"
	"github.com/MrJamesThe3rd/balcao/internal/metrics"
)

type Handlers struct {
	Auth      *authhttp.Handler
	Products  *product.Handler
	Stock     *stock.Handler
	Orders    *order.Handler
	Purchases *purchase.Handler
	Sales     *sale.Handler
	Tours     *tour.Handler
	Ledger    *ledger.Handler
}

type Options struct {
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	// Idempotency is optional; without it Idempotency-Key headers are ignored.
	Idempotency idempotency.Store
	Logger      *slog.Logger
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", idempotency.Header},
		ExposedHeaders:   []string{idempotency.ReplayedHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	replay := func(next http.Handler) http.Handler { return next }
	if opts.Idempotency != nil {
		replay = idempotency.Middleware(opts.Idempotency, opts.Logger)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
			r.With(h.Auth.Middleware).Group(h.Auth.ProtectedRoutes)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.Middleware)

			r.Route("/products", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Products.Routes(r)
			})

			r.Route("/stock", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"), replay)
				h.Stock.Routes(r)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"), replay)
				h.Orders.Routes(r)
			})

			r.Route("/tables", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Orders.TableRoutes(r)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"), replay)
				h.Sales.Routes(r)
			})

			r.Route("/tours", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"), replay)
				h.Tours.Routes(r)
			})

			// Purchases accept the multipart import upload.
			r.Route("/purchases", func(r chi.Router) {
				r.Use(replay)
				h.Purchases.Routes(r)
			})

			r.Route("/ledger", h.Ledger.Routes)
			r.Route("/reports", h.Ledger.ReportRoutes)
		})
	})

	return router
}
