// Package app wires configuration, logging, telemetry, the dataset loader
// and the HTTP transport into a runnable service.
//
// # Architecture
//
// Application owns the full lifecycle: it loads configuration, initializes
// the logger and tracer provider, reads the order table from disk, builds
// the dashboard service and mounts the REST routes on a chi router. Start
// and Stop bracket the HTTP server with a graceful shutdown window taken
// from configuration.
package app

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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ecompulse/internal/config"
	"ecompulse/internal/dataset"
	apierrors "ecompulse/internal/errors"
	"ecompulse/internal/infrastructure"
	custommw "ecompulse/internal/middleware"
	"ecompulse/internal/services"
	httptransport "ecompulse/internal/transport/http"
	"ecompulse/pkg/contracts"
)

// Application holds all initialized components of the service.
type Application struct {
	config    *config.Config
	logger    *slog.Logger
	server    *http.Server
	providers *infrastructure.OTelProviders
	service   *services.DashboardService
	registry  *prometheus.Registry
}

// NewApplication builds a fully wired application from configuration.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	providers, err := infrastructure.InitializeOTel(os.Stdout, "ecompulse", contracts.Version)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := infrastructure.NewMetrics(registry)

	loader := dataset.NewLoader(logger)
	table, err := loader.Load(context.Background(), cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", cfg.Dataset.Path, err)
	}

	service, err := services.NewDashboardService(table, cfg.Dataset.Parallel, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("build dashboard service: %w", err)
	}

	app := &Application{
		config:    cfg,
		logger:    logger,
		providers: providers,
		service:   service,
		registry:  registry,
	}
	app.server = app.createServer(app.setupRouter(metrics))

	logger.Info("application initialized",
		slog.String("version", contracts.Version),
		slog.Int("rows", len(table)),
		slog.String("bounds", service.Bounds().String()),
	)
	return app, nil
}

func (a *Application) setupRouter(metrics *infrastructure.Metrics) chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.StructuredLogger(a.logger))
	r.Use(custommw.Recoverer(a.logger))
	if a.config.Server.RateLimit.Enabled {
		r.Use(custommw.RateLimit(a.config.Server.RateLimit.RPS, a.config.Server.RateLimit.Burst))
	}
	r.Use(custommw.Metrics(metrics))

	errorHandler := apierrors.NewErrorHandler(a.logger)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	health := httptransport.NewHealthHandler(contracts.GetVersionInfo())
	r.Get("/healthz", health.Health)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	dashboard := httptransport.NewDashboardHandler(a.service, a.logger, errorHandler)
	r.Mount("/api/dashboard", dashboard.Routes())

	return r
}

func (a *Application) createServer(handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (a *Application) Start() error {
	a.logger.Info("server starting", slog.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server and flushes telemetry.
func (a *Application) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	a.logger.Info("server stopping")
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := a.providers.Shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
	}
	return nil
}

// Run starts the application and blocks until an interrupt or terminate
// signal arrives, then performs a graceful shutdown.
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		a.logger.Info("signal received", slog.String("signal", sig.String()))
	}

	if err := a.Stop(); err != nil {
		return err
	}

	// Give the listener goroutine a moment to return after Shutdown.
	select {
	case err := <-errCh:
		return err
	case <-time.After(time.Second):
		return nil
	}
}
