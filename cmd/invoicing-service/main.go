package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/gamestore/internal/invoicing-service/core/ports"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/infra/catalog"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/infra/httpx"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/infra/rates"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/infra/storage/sqlite"
	"github.com/jcmexdev/gamestore/internal/invoicing-service/pricing"
	"github.com/jcmexdev/gamestore/internal/pkg/cache"
	"github.com/jcmexdev/gamestore/internal/pkg/telemetry"
)

func main() {
	telemetry.InitLogger()

	// Monetary fields marshal as JSON numbers, matching what API consumers
	// already parse.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "invoicing-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	store, err := sqlite.Open(getEnv("INVOICING_DB_PATH", "./data/invoicing.db"))
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var rateLookup ports.RateLookup = sqlite.NewRateRepository(store)
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rateLookup = rates.NewCached(rateLookup, cache.NewRedisCache(redisAddr, "invoicing"))
		slog.Info("rate cache enabled", "addr", redisAddr)
	}

	catalogClient := catalog.NewClient(getEnv("CATALOG_SERVICE_URL", "http://localhost:8081"))
	service := pricing.NewService(catalogClient, rateLookup, sqlite.NewInvoiceRepository(store))
	router := httpx.NewRouter(httpx.NewHandler(service))

	addr := ":" + getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("invoicing service running", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
