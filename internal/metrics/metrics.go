// Package metrics provides Prometheus metrics collection for the web server.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// FileLoadsTotal tracks disk reads by result (ok, not_found, error).
	FileLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "file_loads_total",
			Help: "Total number of files loaded from disk",
		},
		[]string{"result"},
	)

	// FileLoadDuration tracks how long disk reads take.
	FileLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "file_load_duration_seconds",
			Help:    "Disk file load duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// FilesSavedTotal tracks POSTed files written to disk by result.
	FilesSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "files_saved_total",
			Help: "Total number of files saved through POST",
		},
		[]string{"result"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current number of cached entries",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Maximum number of cached entries",
		},
	)

	// CircuitBreakerState reports 0 (closed), 1 (open) or 2 (half-open) per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state",
		},
		[]string{"name"},
	)

	// AccessLogsTotal tracks access-log entries handed to the async writer.
	AccessLogsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_logs_total",
			Help: "Access-log entries by outcome (queued, dropped, written, failed)",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
// Unmatched routes are labelled by a fixed value so file paths do not
// explode label cardinality.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "static"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordFileLoad records metrics for a disk read.
func RecordFileLoad(duration time.Duration, result string) {
	FileLoadDuration.Observe(duration.Seconds())
	FileLoadsTotal.WithLabelValues(result).Inc()
}

// RecordFileSave records metrics for a POST save.
func RecordFileSave(result string) {
	FilesSavedTotal.WithLabelValues(result).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the state of a named circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAccessLog counts an access-log entry outcome.
func RecordAccessLog(result string) {
	AccessLogsTotal.WithLabelValues(result).Inc()
}
