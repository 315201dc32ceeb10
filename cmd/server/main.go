// Package main is the entrypoint for the AutoSEO API server.
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

	"autoseo/internal/ai"
	"autoseo/internal/api"
	"autoseo/internal/api/handler"
	"autoseo/internal/api/response"
	"autoseo/internal/config"
	"autoseo/internal/seo"
	"autoseo/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load config — fail fast on invalid config, including a missing
	// provider credential.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded",
		"ai_provider", cfg.AI.Provider,
		"env", cfg.Server.Env,
		"batch_size", cfg.Batch.Size,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		return fmt.Errorf("create AI provider: %w", err)
	}
	slog.Info("AI provider initialized", "provider", provider.Name())

	client := ai.NewBatchClient(provider, ai.RetryPolicy{
		MaxRetries: cfg.Batch.MaxRetries,
		Delay:      cfg.Batch.RetryDelay,
	})

	runStore := store.NewMemoryStore()
	svc := seo.NewService(runStore, client, seo.PolicyFromConfig(cfg.Batch))

	deps := api.Dependencies{
		Health:            healthHandler(provider.Name()),
		StartRun:          handler.NewStartRunHandler(svc),
		RunStatus:         handler.NewRunStatusHandler(runStore),
		ResetRun:          handler.NewResetRunHandler(svc),
		ExportSpreadsheet: handler.NewSpreadsheetExportHandler(runStore),
		ExportShopify:     handler.NewShopifyExportHandler(runStore),
		WorkflowTemplate:  handler.NewWorkflowTemplateHandler(),
	}

	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler reports liveness and the active provider.
func healthHandler(provider string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, map[string]any{
			"status":   "ok",
			"provider": provider,
		})
	}
}
