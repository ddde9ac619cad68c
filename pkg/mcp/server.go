package mcp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fyrsmithlabs/oicgw/internal/config"
	"github.com/fyrsmithlabs/oicgw/internal/dispatcher"
	"github.com/fyrsmithlabs/oicgw/internal/logging"
	"github.com/fyrsmithlabs/oicgw/internal/metrics"
	"github.com/fyrsmithlabs/oicgw/internal/tenant"
	"github.com/fyrsmithlabs/oicgw/internal/tokencache"
)

// paginatedCallTimeout bounds a tools/call whose handler iterates the
// upstream's date-keyed pagination loop; it is long enough to absorb the
// 100-batch worst case.
const paginatedCallTimeout = 120 * time.Second

// defaultCallTimeout bounds every other tools/call.
const defaultCallTimeout = 30 * time.Second

// Server implements the MCP gateway over HTTP with the Echo router: a
// legacy SSE push transport (/sse, /messages) and a bidirectional
// streaming transport (/stream), both sharing the same JSON-RPC
// dispatch logic so tool resolution is never duplicated between them.
type Server struct {
	echo          *echo.Echo
	dispatcher    *dispatcher.Dispatcher
	sessions      *SessionStore
	pushHub       *pushHub
	streamWorkers *streamWorkers
	tokens        *tokencache.Cache
	metrics       *metrics.Metrics
	logger        *logging.Logger
	cfg           *config.Config
	version       string
}

// NewServer creates an MCP server wired to a dispatcher and its
// supporting infrastructure. logger may be nil (a no-op logger is used).
func NewServer(e *echo.Echo, d *dispatcher.Dispatcher, tokens *tokencache.Cache, m *metrics.Metrics, cfg *config.Config, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.FromContext(context.Background())
	}
	return &Server{
		echo:          e,
		dispatcher:    d,
		sessions:      NewSessionStore(),
		pushHub:       newPushHub(),
		streamWorkers: newStreamWorkers(),
		tokens:        tokens,
		metrics:       m,
		logger:        logger,
		cfg:           cfg,
		version:       "1.0.0",
	}
}

// RegisterRoutes registers the MCP transport endpoints plus the
// operational surface (/health, /metrics, /). No authentication
// middleware guards these routes: the gateway's only credential
// boundary is the per-tenant OAuth2 exchange performed by the
// dispatcher against the upstream API, not the MCP client connection
// itself.
func (s *Server) RegisterRoutes() {
	// Transport A: legacy SSE push channel.
	s.echo.GET("/sse", s.handleSSEConnect)
	s.echo.POST("/messages", s.handleMessagesPost)

	// Transport B: bidirectional streaming, preferred.
	s.echo.GET("/stream", s.handleStreamGet)
	s.echo.POST("/stream", s.handleStreamPost)
	s.echo.DELETE("/stream", s.handleStreamDelete)

	s.echo.GET("/health", s.handleHealth)
	if s.cfg == nil || s.cfg.Observability.MetricsEnabled {
		s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	}
	s.echo.GET("/", s.handleIndex)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"version":   s.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service":   "oicgw",
		"version":   s.version,
		"tenants":   tenant.Names,
		"toolCount": len(s.dispatcher.Tools()),
	})
}

// callTimeout returns the deadline to apply to a tools/call invocation
// of name: paginated list tools get the longer budget needed to absorb
// the upstream's date-keyed batching loop, everything else gets the
// default.
func (s *Server) callTimeout(name string) time.Duration {
	if isPaginatedTool(name) {
		return paginatedCallTimeout
	}
	return defaultCallTimeout
}

// Shutdown stops accepting new work and evicts every tenant's cached
// token, so no bearer survives the process past a restart.
func (s *Server) Shutdown(ctx context.Context) error {
	s.pushHub.closeAll()
	s.streamWorkers.stopAll()
	if s.tokens != nil {
		s.tokens.EvictAll(tenant.Names)
	}
	return nil
}
</content>
