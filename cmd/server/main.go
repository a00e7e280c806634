package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/carefluent/alarmbridge/internal/config"
	"github.com/carefluent/alarmbridge/internal/logging"
	"github.com/carefluent/alarmbridge/internal/record"
	"github.com/carefluent/alarmbridge/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded", "config", cfg.String())

	// The conversion log is optional; without DATABASE_URL the service
	// converts without persistence.
	ctx := context.Background()
	store, err := record.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open conversion log store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if store.Enabled() {
		slog.Info("conversion log store ready")
	} else {
		slog.Info("no database configured, conversion log disabled")
	}

	server := web.NewServer(cfg, store)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
