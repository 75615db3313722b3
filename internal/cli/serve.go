package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/strumyk"
	"github.com/aretw0/strumyk/internal/config"
	httpAdapter "github.com/aretw0/strumyk/pkg/adapters/http"
	"github.com/aretw0/strumyk/pkg/adapters/mcp"
	"github.com/aretw0/strumyk/pkg/observability"
)

// ShutdownTimeout bounds how long outstanding requests may take after a shutdown signal.
const ShutdownTimeout = 5 * time.Second

// NewServerHandler wires the engine, a fresh Prometheus registry and the
// configured report store into the HTTP API. The closer releases the store.
func NewServerHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (http.Handler, func() error, error) {
	store, kind, closer, err := OpenReportStore(ctx, cfg, true)
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	eng, err := NewEngine(cfg, logger,
		strumyk.WithReportStore(store),
		strumyk.WithLifecycleHooks(metrics.Hooks()),
	)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	logger.Info("report store ready", "store", string(kind), "catalog", cfg.CatalogDir)
	handler := httpAdapter.NewHandler(eng,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithVersion(version),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})),
		httpAdapter.WithUnsupported(strumyk.ErrNoLoader, strumyk.ErrNoStore),
	)
	return handler, closer.Close, nil
}

// Serve runs the HTTP API on addr until ctx is cancelled, then drains
// outstanding requests for at most ShutdownTimeout.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, version, addr string) error {
	handler, closeStore, err := NewServerHandler(ctx, cfg, logger, version)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		logger.Info("starting strumyk server", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
		return nil
	})

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("start shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("strumyk server stopped gracefully")
		return nil
	}
}

// Transports supported by ServeMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP runs the MCP server over stdio or SSE.
func ServeMCP(ctx context.Context, cfg *config.Config, logger *slog.Logger, version, transport string, port int) error {
	store, _, closer, err := OpenReportStore(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	eng, err := NewEngine(cfg, logger, strumyk.WithReportStore(store))
	if err != nil {
		return err
	}

	srv := mcp.NewServer(eng, version, logger)
	switch transport {
	case TransportStdio:
		logger.Info("starting strumyk MCP server (stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		err := srv.ServeSSE(ctx, port)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	}
	return fmt.Errorf("unknown transport: %s (supported: stdio, sse)", transport)
}
