package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/empdesk/empdesk-console/config"
	"github.com/empdesk/empdesk-console/internal/api"
	"github.com/empdesk/empdesk-console/internal/auth"
	"github.com/empdesk/empdesk-console/internal/cache"
	"github.com/empdesk/empdesk-console/internal/session"
	"github.com/empdesk/empdesk-console/internal/ui"
	"github.com/empdesk/empdesk-console/pkg/httpclient"
	"github.com/empdesk/empdesk-console/pkg/logger"
	"github.com/empdesk/empdesk-console/pkg/metrics"
	"github.com/empdesk/empdesk-console/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize tracing (no-op unless an exporter endpoint is configured)
	shutdownTracer, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting employee admin console",
		zap.String("api_url", cfg.API.BaseURL),
		zap.String("environment", cfg.AppEnv))

	// Expose Prometheus metrics when an address is configured
	if addr := cfg.Observability.MetricsAddr; addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			logger.Info("Serving metrics", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("Metrics server stopped", zap.Error(err))
			}
		}()
	}

	// Wire the client stack: session store -> HTTP client -> API client
	sessions := session.NewStore(cfg.Session.File)
	hc := httpclient.NewStandardClientWithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second)
	client := api.New(cfg, hc, sessions)
	authService := auth.NewService(client, sessions)
	images := cache.NewImageCache(client, cfg.Cache.ImageTTLSeconds)

	console := ui.New(client, images, sessions, authService, cfg.API.PageSize, os.Stdin, os.Stdout)
	if err := console.Run(context.Background()); err != nil {
		logger.Fatal("Console terminated", zap.Error(err))
	}
}
