// Package metrics provides Prometheus metrics infrastructure for the application.
// It exports metrics via an HTTP endpoint in Prometheus format.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsRegistry holds all application metrics and provides helper methods
// for recording various metric types.
type MetricsRegistry struct {
	registry prometheus.Registerer

	// Counter metrics
	httpRequestsTotal       prometheus.CounterVec
	httpErrorsTotal         prometheus.CounterVec
	validationErrorsTotal   prometheus.CounterVec
	databaseOperationsTotal prometheus.CounterVec
	generationRunsTotal     prometheus.CounterVec
	shiftsGeneratedTotal    prometheus.CounterVec
	shiftWarningsTotal      prometheus.CounterVec
	candidatesFilteredTotal prometheus.CounterVec

	// Histogram metrics
	httpRequestDuration      prometheus.HistogramVec
	databaseQueryDuration    prometheus.HistogramVec
	serviceOperationDuration prometheus.HistogramVec
	queryCountPerOperation   prometheus.HistogramVec
	generationDuration       prometheus.HistogramVec

	// Gauge metrics
	generationRunsActive       prometheus.GaugeVec
	queueDepth                 prometheus.GaugeVec
	databaseConnectionPoolSize prometheus.GaugeVec

	mu sync.RWMutex
}

// NewMetricsRegistry creates and registers all application metrics using the global registry.
// It panics if any metric fails to register.
func NewMetricsRegistry() *MetricsRegistry {
	return NewMetricsRegistryWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsRegistryWithRegistry creates and registers all application metrics with a custom registry.
// This is mainly used for testing. It panics if any metric fails to register.
func NewMetricsRegistryWithRegistry(registerer prometheus.Registerer) *MetricsRegistry {
	m := &MetricsRegistry{
		registry: registerer,
	}

	// Initialize counter metrics
	m.httpRequestsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method and path",
		},
		[]string{"method", "path"},
	)
	m.registry.MustRegister(&m.httpRequestsTotal)

	m.httpErrorsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total HTTP errors by error type",
		},
		[]string{"error_type"},
	)
	m.registry.MustRegister(&m.httpErrorsTotal)

	m.validationErrorsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_errors_total",
			Help: "Total validation failures by error code",
		},
		[]string{"error_code"},
	)
	m.registry.MustRegister(&m.validationErrorsTotal)

	m.databaseOperationsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_operations_total",
			Help: "Total database operations by operation type",
		},
		[]string{"operation"},
	)
	m.registry.MustRegister(&m.databaseOperationsTotal)

	m.generationRunsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_runs_total",
			Help: "Total shift generation runs by outcome",
		},
		[]string{"outcome"},
	)
	m.registry.MustRegister(&m.generationRunsTotal)

	m.shiftsGeneratedTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shifts_generated_total",
			Help: "Total shifts created by the generation engine",
		},
		[]string{},
	)
	m.registry.MustRegister(&m.shiftsGeneratedTotal)

	m.shiftWarningsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_warnings_total",
			Help: "Total shifts created with an unmet-constraint warning, by reason",
		},
		[]string{"reason"},
	)
	m.registry.MustRegister(&m.shiftWarningsTotal)

	m.candidatesFilteredTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_filtered_total",
			Help: "Total candidate publishers removed from a shift's pool before scoring",
		},
		[]string{},
	)
	m.registry.MustRegister(&m.candidatesFilteredTotal)

	// Initialize histogram metrics
	m.httpRequestDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	m.registry.MustRegister(&m.httpRequestDuration)

	m.databaseQueryDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	m.registry.MustRegister(&m.databaseQueryDuration)

	m.serviceOperationDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "service_operation_duration_seconds",
			Help:    "Service operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	m.registry.MustRegister(&m.serviceOperationDuration)

	m.queryCountPerOperation = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_count_per_operation",
			Help:    "Number of database queries per operation (tracks N+1 opportunities)",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 500},
		},
		[]string{"operation"},
	)
	m.registry.MustRegister(&m.queryCountPerOperation)

	m.generationDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Wall-clock duration of a full shift generation run",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{},
	)
	m.registry.MustRegister(&m.generationDuration)

	// Initialize gauge metrics
	m.generationRunsActive = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "generation_runs_active",
			Help: "Concurrent shift generation runs in progress",
		},
		[]string{"service"},
	)
	m.registry.MustRegister(&m.generationRunsActive)

	m.queueDepth = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "queue_depth",
			Help: "Pending job queue length",
		},
		[]string{"queue_name"},
	)
	m.registry.MustRegister(&m.queueDepth)

	m.databaseConnectionPoolSize = *prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "database_connection_pool_size",
			Help: "Active database connections",
		},
		[]string{"pool_name"},
	)
	m.registry.MustRegister(&m.databaseConnectionPoolSize)

	return m
}

// RecordHTTPRequest records an HTTP request metric.
// This includes both request count and latency histogram.
func (m *MetricsRegistry) RecordHTTPRequest(method, path string, statusCode int, duration float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.httpRequestsTotal.WithLabelValues(method, path).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, statusCodeLabel(statusCode)).Observe(duration)
}

// RecordHTTPError records an HTTP error metric.
func (m *MetricsRegistry) RecordHTTPError(errorType string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.httpErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordDatabaseQuery records a database query metric.
func (m *MetricsRegistry) RecordDatabaseQuery(operation string, duration float64, queryCount int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.databaseOperationsTotal.WithLabelValues(operation).Inc()
	m.databaseQueryDuration.WithLabelValues(operation).Observe(duration)
	m.queryCountPerOperation.WithLabelValues(operation).Observe(float64(queryCount))
}

// RecordServiceOperation records a service operation metric.
func (m *MetricsRegistry) RecordServiceOperation(service, operation string, duration float64, hasError bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.serviceOperationDuration.WithLabelValues(service, operation).Observe(duration)
	if hasError {
		m.RecordHTTPError(service + "_error")
	}
}

// RecordValidationError records a validation error metric.
func (m *MetricsRegistry) RecordValidationError(errorCode string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.validationErrorsTotal.WithLabelValues(errorCode).Inc()
}

// IncrementActiveGenerationRuns increments the active generation run gauge.
func (m *MetricsRegistry) IncrementActiveGenerationRuns(service string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.generationRunsActive.WithLabelValues(service).Inc()
}

// DecrementActiveGenerationRuns decrements the active generation run gauge.
func (m *MetricsRegistry) DecrementActiveGenerationRuns(service string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.generationRunsActive.WithLabelValues(service).Dec()
}

// SetQueueDepth sets the queue depth metric to a specific value.
func (m *MetricsRegistry) SetQueueDepth(queueName string, depth int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.queueDepth.WithLabelValues(queueName).Set(float64(depth))
}

// SetDatabaseConnectionPoolSize sets the database connection pool size to a specific value.
func (m *MetricsRegistry) SetDatabaseConnectionPoolSize(poolName string, size int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.databaseConnectionPoolSize.WithLabelValues(poolName).Set(float64(size))
}

// ObserveGenerationDuration records the wall-clock duration of a generation run.
func (m *MetricsRegistry) ObserveGenerationDuration(seconds float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.generationDuration.WithLabelValues().Observe(seconds)
}

// IncGenerationRun records the terminal outcome of a generation run.
func (m *MetricsRegistry) IncGenerationRun(outcome string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.generationRunsTotal.WithLabelValues(outcome).Inc()
}

// IncShiftsGenerated adds n to the total number of shifts created.
func (m *MetricsRegistry) IncShiftsGenerated(n int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.shiftsGeneratedTotal.WithLabelValues().Add(float64(n))
}

// IncShiftWarning records a shift created with an unmet-constraint warning.
func (m *MetricsRegistry) IncShiftWarning(reason string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.shiftWarningsTotal.WithLabelValues(reason).Inc()
}

// IncCandidatesFiltered adds n to the total number of publishers removed
// from a candidate pool before scoring.
func (m *MetricsRegistry) IncCandidatesFiltered(n int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.candidatesFilteredTotal.WithLabelValues().Add(float64(n))
}

// GetHandler returns an HTTP handler that serves Prometheus metrics from this registry.
func (m *MetricsRegistry) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry.(prometheus.Gatherer), promhttp.HandlerOpts{})
}

// statusCodeLabel converts an HTTP status code to a label string.
func statusCodeLabel(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

// HTTPMiddleware returns an HTTP middleware that records request metrics.
func (m *MetricsRegistry) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		startTime := prometheus.NewTimer(prometheus.ObserverFunc(func(seconds float64) {
			m.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, seconds)
		}))

		next.ServeHTTP(wrapped, r)

		startTime.ObserveDuration()
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader implements http.ResponseWriter.WriteHeader.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// Write implements http.ResponseWriter.Write.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.written = true
	}
	return rw.ResponseWriter.Write(b)
}
