package tuteliq

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector exposes Prometheus metrics for the request pipeline. It is
// safe for concurrent use and is disabled unless installed via WithMetrics or
// WithMetricsRegistry.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuteliq_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "path", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tuteliq_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuteliq_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"method", "path"},
		),
		cacheHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuteliq_cache_hits_total",
				Help: "Total number of GET cache hits",
			},
			[]string{"path"},
		),
		cacheMisses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuteliq_cache_misses_total",
				Help: "Total number of GET cache misses",
			},
			[]string{"path"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuteliq_errors_total",
				Help: "Total number of classified errors by kind",
			},
			[]string{"kind", "method", "path"},
		),
	}
}

func (m *MetricsCollector) recordRequest(method, path string, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (m *MetricsCollector) recordRetry(method, path string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(method, path).Inc()
}

func (m *MetricsCollector) recordCacheHit(path string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(path).Inc()
}

func (m *MetricsCollector) recordCacheMiss(path string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(path).Inc()
}

func (m *MetricsCollector) recordError(kind ErrorKind, method, path string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(string(kind), method, path).Inc()
}
