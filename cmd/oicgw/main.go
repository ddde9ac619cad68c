// Command oicgw runs the MCP gateway for the Oracle Integration Cloud
// monitoring API: a fixed tool catalog exposed over two JSON-RPC
// transports, authenticating against the upstream with per-tenant
// OAuth2 client-credentials tokens.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/oicgw/internal/catalog"
	"github.com/fyrsmithlabs/oicgw/internal/config"
	"github.com/fyrsmithlabs/oicgw/internal/dispatcher"
	"github.com/fyrsmithlabs/oicgw/internal/logging"
	"github.com/fyrsmithlabs/oicgw/internal/metrics"
	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"github.com/fyrsmithlabs/oicgw/internal/tokencache"
	"github.com/fyrsmithlabs/oicgw/internal/upstream"
	"github.com/fyrsmithlabs/oicgw/pkg/mcp"
	"github.com/fyrsmithlabs/oicgw/pkg/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logCfg, err := logging.ConfigFromLevel(cfg.Observability.LogLevel, cfg.Observability.LogEncoding)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	registry := tenant.LoadFromEnv()
	if !registry.AnyConfigured() {
		return fmt.Errorf("no tenant is fully configured; set OIC_CLIENT_ID_<TENANT> and friends for at least one of %v", tenant.Names)
	}

	tokenDir, err := tokencache.DefaultDir()
	if err != nil {
		return fmt.Errorf("resolving token cache directory: %w", err)
	}
	tokens := tokencache.New(tokenDir, logger)
	// Never trust a bearer token left over from a previous run across a
	// restart boundary.
	tokens.EvictAll(tenant.Names)

	var m *metrics.Metrics
	if cfg.Observability.MetricsEnabled {
		m = metrics.New()
	} else {
		m = metrics.Noop()
	}

	upstreamClient := upstream.New(tokens, m, logger)
	d := dispatcher.New(catalog.CatalogWithBulkMode(cfg.Bulk.Mode), registry, tokens, upstreamClient, logger)

	srv := server.NewServer(cfg)
	mcpServer := mcp.NewServer(srv.Echo(), d, tokens, m, cfg, logger)
	mcpServer.RegisterRoutes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "starting oicgw gateway", zap.Int("port", cfg.Server.Port), zap.Strings("tenants", tenant.Names))
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := mcpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn(context.Background(), "mcp shutdown reported an error")
	}

	// srv.Start itself drives the echo server's graceful shutdown once ctx
	// is cancelled; wait for it to finish before returning.
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
</content>
