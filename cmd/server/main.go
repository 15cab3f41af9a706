package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/go-cotizaciones/internal/config"
	"github.com/diewo77/go-cotizaciones/internal/db"
	"github.com/diewo77/go-cotizaciones/internal/logging"
	"github.com/diewo77/go-cotizaciones/internal/metrics"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/diewo77/go-cotizaciones/internal/store"
	"github.com/joho/godotenv"
)

var (
	checkConfigFlag = flag.Bool("check-config", false, "Validate configuration and exit")
	envFileFlag     = flag.String("env-file", ".env", "Optional dotenv file loaded before reading the environment")
)

func main() {
	flag.Parse()

	// Missing .env is fine; real environment variables win.
	_ = godotenv.Load(*envFileFlag)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	if *checkConfigFlag {
		fmt.Println("configuration ok")
		return
	}

	logger := logging.New(cfg.Log)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	backend, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage %s: %w", cfg.Storage.Driver, err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("closing storage", "error", err)
		}
	}()

	st := store.Open(ctx, backend, store.Options{Key: cfg.Storage.Key, Logger: logger})
	m := metrics.New()
	st.Subscribe(m.Observe)

	svc := services.NewQuotationService(st, services.Options{
		Numbering:    services.ParseNumbering(cfg.App.Numbering),
		DefaultTax:   cfg.App.DefaultTax,
		ValidityDays: cfg.App.ValidityDays,
		Logger:       logger,
	})

	app := NewApp(st, svc, backend, cfg.Storage.Key, m, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(logger, app),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "storage", cfg.Storage.Driver, "dev", cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

// withLogging adds request logging middleware.
func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLog := logger.With("method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(logging.WithContext(r.Context(), reqLog)))
		reqLog.Info("request served", "duration", time.Since(start))
	})
}
