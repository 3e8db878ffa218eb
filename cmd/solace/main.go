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

	"github.com/MikeSquared-Agency/solace/internal/api"
	"github.com/MikeSquared-Agency/solace/internal/config"
	"github.com/MikeSquared-Agency/solace/internal/grief"
	"github.com/MikeSquared-Agency/solace/internal/hermes"
	"github.com/MikeSquared-Agency/solace/internal/llm"
	"github.com/MikeSquared-Agency/solace/internal/media"
	"github.com/MikeSquared-Agency/solace/internal/planner"
	"github.com/MikeSquared-Agency/solace/internal/tavily"
	"github.com/MikeSquared-Agency/solace/internal/unified"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)
	logger := slog.Default()

	slog.Info("solace starting", "port", cfg.Port, "env", cfg.AppEnv, "provider", cfg.ModelProvider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Model provider
	gen, err := llm.FromConfig(cfg, logger)
	if err != nil {
		slog.Error("failed to configure model provider", "error", err)
		os.Exit(1)
	}
	if cfg.ModelAPIKey() == "" {
		slog.Warn("model API key not set, analysis requests will fail", "provider", cfg.ModelProvider)
	}

	// Search
	if cfg.TavilyAPIKey == "" {
		slog.Warn("TAVILY_API_KEY not set, media recommendations will fail")
	}
	search := tavily.NewClient(cfg.TavilyAPIKey)

	// Services
	griefSvc := grief.New(gen, logger)
	planSvc := planner.New(gen, logger)
	mediaSvc := media.New(gen, search, logger)
	mediaSvc.QueryMode = media.QueryMode(cfg.MediaQueryMode)
	mediaSvc.Annotate = cfg.MediaAnnotate
	coordinator := unified.New(griefSvc, planSvc, mediaSvc, logger)

	// NATS/Hermes (optional, events only)
	var publisher hermes.Publisher = hermes.Nop{}
	if cfg.NatsURL != "" {
		hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, logger)
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer hermesClient.Close()
		publisher = hermesClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Info("NATS_URL not set, analysis events disabled")
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, cfg.AppEnv, cfg.RequestTimeout, api.Deps{
		Grief:     griefSvc,
		Planner:   planSvc,
		Media:     mediaSvc,
		Unified:   coordinator,
		Publisher: publisher,
		Logger:    logger,
	})
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	slog.Info("solace ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown", "error", err)
	}
	slog.Info("solace stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
