// Package metrics exposes the gateway's Prometheus instrumentation on a
// dedicated registry, mirroring the teacher's main-wiring convention of
// registering collectors once at startup and serving them at /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the gateway's collectors, registered on a private
// registry so the gateway's /metrics endpoint is not polluted by the
// Go runtime's default collectors unless explicitly added.
type Metrics struct {
	Registry *prometheus.Registry

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	TokenCacheEventsTotal   *prometheus.CounterVec
	PaginationBatchesTotal  *prometheus.CounterVec
}

// New builds and registers the gateway's collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		UpstreamRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total upstream HTTP requests issued, by tenant and outcome.",
		}, []string{"tenant", "outcome"}),
		UpstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream HTTP request latency, by tenant.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tenant"}),
		TokenCacheEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "token_cache_events_total",
			Help: "Token cache events (hit, miss, refresh, evict), by tenant.",
		}, []string{"tenant", "event"}),
		PaginationBatchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pagination_batches_total",
			Help: "Date-keyed pagination batches issued, by tenant.",
		}, []string{"tenant"}),
	}

	reg.MustRegister(
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
		m.TokenCacheEventsTotal,
		m.PaginationBatchesTotal,
	)
	return m
}

// Noop returns a Metrics instance registered on a throwaway registry, for
// tests and for METRICS_ENABLED=false deployments that still want to call
// through the same instrumentation points.
func Noop() *Metrics {
	return New()
}
</content>
