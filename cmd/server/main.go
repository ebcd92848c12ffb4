package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/categories"
	"github.com/mytheresa/storefront/app/middleware"
	"github.com/mytheresa/storefront/app/sessions"
	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/logging"
	"github.com/mytheresa/storefront/metrics"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{
		Service: "storefront",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := models.Open(cfg.Postgres.DSN())
	if err != nil {
		return err
	}
	if err := models.Migrate(db); err != nil {
		return err
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)

	products, err := models.LoadCatalog(productsRepo)
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.Int("products", products.Len()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serverMetrics := metrics.NewServerMetrics(reg, "api")
	sessionMetrics := metrics.NewSessionMetrics(reg)

	store := session.NewStore(products, cfg.SessionIdleTimeout)
	metrics.RegisterActiveSessions(reg, store.Len)

	catalogHandler := catalog.NewCatalogHandler(products)
	categoriesHandler := categories.NewCategoryHandler(categoriesRepo)
	sessionsHandler := sessions.NewSessionsHandler(store, sessionMetrics, log)

	mux := http.NewServeMux()
	handle := func(pattern, name string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.Instrument(serverMetrics, name, h))
	}

	handle("GET /catalog", "catalog", catalogHandler.HandleGet)
	handle("GET /catalog/{id}", "catalog_product", catalogHandler.HandleGetProduct)
	handle("GET /categories", "categories", categoriesHandler.HandleGetAll)
	handle("POST /categories", "categories_create", categoriesHandler.HandleCreate)

	handle("POST /sessions", "session_create", sessionsHandler.HandleCreate)
	handle("GET /sessions/{id}", "session_get", sessionsHandler.HandleGet)
	handle("DELETE /sessions/{id}", "session_delete", sessionsHandler.HandleDelete)
	handle("GET /sessions/{id}/products", "session_products", sessionsHandler.HandleProducts)
	handle("POST /sessions/{id}/cart/items", "cart_add", sessionsHandler.HandleAddToCart)
	handle("PUT /sessions/{id}/cart/items/{productID}", "cart_update", sessionsHandler.HandleUpdateQuantity)
	handle("DELETE /sessions/{id}/cart/items/{productID}", "cart_remove", sessionsHandler.HandleRemoveFromCart)
	handle("POST /sessions/{id}/cart/open", "cart_open", sessionsHandler.HandleOpenCart)
	handle("POST /sessions/{id}/cart/close", "cart_close", sessionsHandler.HandleCloseCart)
	handle("POST /sessions/{id}/wishlist/{productID}", "wishlist_toggle", sessionsHandler.HandleToggleWishlist)
	handle("PUT /sessions/{id}/category", "category_select", sessionsHandler.HandleSelectCategory)
	handle("POST /sessions/{id}/buy-now", "buy_now", sessionsHandler.HandleBuyNow)
	handle("POST /sessions/{id}/checkout", "checkout", sessionsHandler.HandleCheckout)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("GET /metrics", metrics.Handler(reg))

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           middleware.Logging(log, mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return store.RunSweeper(gctx, cfg.SessionSweepInterval, func(n int) {
			sessionMetrics.RecordExpired(n)
			log.Info("expired idle sessions", zap.Int("count", n))
		})
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	log.Info("bye")
	return nil
}
