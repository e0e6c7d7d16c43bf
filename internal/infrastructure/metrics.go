package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	SnapshotDuration prometheus.Histogram
	SnapshotRows     prometheus.Histogram
}

// NewMetrics registers the application collectors on the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use a fresh registry
// so collectors never collide across test cases.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ecompulse_http_requests_total",
			Help: "Total HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ecompulse_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		SnapshotDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecompulse_snapshot_duration_seconds",
			Help:    "Time spent computing one dashboard snapshot.",
			Buckets: prometheus.DefBuckets,
		}),
		SnapshotRows: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecompulse_snapshot_rows",
			Help:    "Number of filtered order lines per snapshot.",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		}),
	}
}
