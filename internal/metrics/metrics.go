// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CatalogSize is the number of records currently in the store.
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "carcatalog_records",
			Help: "Number of catalog records in memory",
		},
	)
	// RecordsDropped counts raw cars left out by the builder.
	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carcatalog_build_dropped_total",
			Help: "Raw cars dropped during catalog build",
		},
		[]string{"reason"},
	)
	// IngestDuration is the wall time of a full fetch, build and load.
	IngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carcatalog_ingest_duration_seconds",
			Help:    "Duration of catalog ingestion runs",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
		[]string{"source", "status"},
	)
	// ProviderRequests counts outbound calls to the car provider.
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carcatalog_provider_requests_total",
			Help: "Requests sent to the external car provider",
		},
		[]string{"endpoint", "status"},
	)
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carcatalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carcatalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// GinMiddleware records RequestTotal and RequestDuration. The route template
// is used as the path label so IDs don't blow up cardinality.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
