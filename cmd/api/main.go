package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/balcao/internal/auth"
	authStore "github.com/MrJamesThe3rd/balcao/internal/auth/store"
	"github.com/MrJamesThe3rd/balcao/internal/config"
	"github.com/MrJamesThe3rd/balcao/internal/database"
	balcaoHttp "github.com/MrJamesThe3rd/balcao/internal/http"
	authHandler "github.com/MrJamesThe3rd/balcao/internal/http/auth"
	ledgerHandler "github.com/MrJamesThe3rd/balcao/internal/http/ledger"
	orderHandler "github.com/MrJamesThe3rd/balcao/internal/http/order"
	productHandler "github.com/MrJamesThe3rd/balcao/internal/http/product"
	purchaseHandler "github.com/MrJamesThe3rd/balcao/internal/http/purchase"
	saleHandler "github.com/MrJamesThe3rd/balcao/internal/http/sale"
	stockHandler "github.com/MrJamesThe3rd/balcao/internal/http/stock"
	tourHandler "github.com/MrJamesThe3rd/balcao/internal/http/tour"
	"github.com/MrJamesThe3rd/balcao/internal/idempotency"
	"github.com/MrJamesThe3rd/balcao/internal/importer"
	"github.com/MrJamesThe3rd/balcao/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/balcao/internal/ledger/store"
	"github.com/MrJamesThe3rd/balcao/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/balcao/internal/matching/store"
	"github.com/MrJamesThe3rd/balcao/internal/metrics"
	"github.com/MrJamesThe3rd/balcao/internal/order"
	orderStore "github.com/MrJamesThe3rd/balcao/internal/order/store"
	"github.com/MrJamesThe3rd/balcao/internal/product"
	productStore "github.com/MrJamesThe3rd/balcao/internal/product/store"
	"github.com/MrJamesThe3rd/balcao/internal/purchase"
	purchaseStore "github.com/MrJamesThe3rd/balcao/internal/purchase/store"
	"github.com/MrJamesThe3rd/balcao/internal/report"
	"github.com/MrJamesThe3rd/balcao/internal/stock"
	stockStore "github.com/MrJamesThe3rd/balcao/internal/stock/store"
	"github.com/MrJamesThe3rd/balcao/internal/tour"
	tourStore "github.com/MrJamesThe3rd/balcao/internal/tour/store"
	"github.com/MrJamesThe3rd/balcao/internal/workflow"
	workflowStore "github.com/MrJamesThe3rd/balcao/internal/workflow/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, cfg.Metrics.Prefix)

	products := productStore.New(db)

	var (
		authService     = auth.NewService(authStore.New(db), auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL))
		productService  = product.NewService(products)
		stockService    = stock.NewService(stockStore.New(db))
		orderService    = order.NewService(orderStore.New(db), products)
		purchaseService = purchase.NewService(purchaseStore.New(db))
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService(matchingService, purchaseService)
		reportService   = report.NewService(ledgerService)
		tourService     = tour.NewService(tourStore.New(db))
		workflowService = workflow.NewService(workflowStore.New(db), m, logger)
	)

	opts := balcaoHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
		Logger:         logger,
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}

		opts.Idempotency = idempotency.NewRedisStore(client, cfg.Redis.IdempotencyTTL)
		logger.Info("idempotency keys enabled", "redis", cfg.Redis.Addr)
	}

	router := balcaoHttp.New(balcaoHttp.Handlers{
		Auth:      authHandler.NewHandler(authService),
		Products:  productHandler.NewHandler(productService),
		Stock:     stockHandler.NewHandler(stockService, workflowService),
		Orders:    orderHandler.NewHandler(orderService, workflowService),
		Purchases: purchaseHandler.NewHandler(purchaseService, workflowService, importService),
		Sales:     saleHandler.NewHandler(workflowService),
		Tours:     tourHandler.NewHandler(tourService, workflowService),
		Ledger:    ledgerHandler.NewHandler(ledgerService, reportService),
	}, opts)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting server", "port", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
