package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/library-fines/internal/config"
	"github.com/josh-kwaku/library-fines/internal/fine"
	"github.com/josh-kwaku/library-fines/internal/handler"
	"github.com/josh-kwaku/library-fines/internal/logging"
	"github.com/josh-kwaku/library-fines/internal/middleware"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init(os.Stdout, "fines-api", cfg.LogLevel, cfg.AppEnv)

	calc := fine.NewCalculator(fine.DefaultRules())
	fines := handler.NewFineHandler(calc, cfg.CurrencyLabel, cfg.MaxBatchSize)
	health := handler.NewHealthHandler(version)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Liveness)
	mux.HandleFunc("POST /api/v1/fines/evaluate", fines.Evaluate)
	mux.HandleFunc("POST /api/v1/fines/batch", fines.EvaluateBatch)
	mux.HandleFunc("GET /docs", handler.ServeDocs())
	mux.HandleFunc("GET /docs/openapi.yaml", handler.ServeSpec())

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.Chain(mux, middleware.Recovery, middleware.Tracing, middleware.Logging),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
