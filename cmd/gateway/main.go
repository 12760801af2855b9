package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/femiolade/student-report-gateway/internal/config"
	"github.com/femiolade/student-report-gateway/internal/idempotency"
	"github.com/femiolade/student-report-gateway/internal/infrastructure/persistence/postgres"
	"github.com/femiolade/student-report-gateway/internal/infrastructure/persistence/redis"
	"github.com/femiolade/student-report-gateway/internal/interfaces/rest/handlers"
	"github.com/femiolade/student-report-gateway/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting gateway service",
		"port", cfg.Server.Port,
		"idempotency_backend", cfg.Idempotency.Backend,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	store, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to set up idempotency store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if cfg.Idempotency.MaxRetries > 0 {
		store = idempotency.NewRetryStore(store, cfg.Idempotency.BaseDelay, cfg.Idempotency.MaxRetries)
	}

	h := handlers.NewReportHandler(store, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// newStore builds the configured idempotency store backend plus a cleanup
// function for its underlying connections.
func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (idempotency.Store, func(), error) {
	switch cfg.Idempotency.Backend {
	case "postgres":
		db, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewIdempotencyStore(db), db.Close, nil

	case "redis":
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewIdempotencyStore(client, cfg.Idempotency.KeyTTL), func() { _ = client.Close() }, nil

	default:
		return idempotency.NewMemoryStore(), func() {}, nil
	}
}
