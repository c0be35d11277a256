package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "streamvault"

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Account metrics
	accountsByLifecycle = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "lifecycle",
			Help:      "Number of accounts per lifecycle state at the last expiry scan",
		},
		[]string{"state"},
	)

	accountOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "accounts",
			Name:      "operations_total",
			Help:      "Total number of account mutations",
		},
		[]string{"operation", "outcome"},
	)

	// Transfer metrics
	importEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "import_entries_total",
			Help:      "Total number of imported entries by result",
		},
		[]string{"result"},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transfer",
			Name:      "exports_total",
			Help:      "Total number of exports by format",
		},
		[]string{"format"},
	)

	// Backup metrics
	backupRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backup",
			Name:      "runs_total",
			Help:      "Total number of backup runs",
		},
		[]string{"status"},
	)

	backupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backup",
			Name:      "duration_seconds",
			Help:      "Duration of backup runs in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60},
		},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Label by route pattern so ids don't explode cardinality
		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// SetAccountLifecycle sets the per-state account gauges
func SetAccountLifecycle(active, expiring, expired int) {
	accountsByLifecycle.WithLabelValues("active").Set(float64(active))
	accountsByLifecycle.WithLabelValues("expiring").Set(float64(expiring))
	accountsByLifecycle.WithLabelValues("expired").Set(float64(expired))
}

// RecordAccountOperation records a create, update or delete outcome
func RecordAccountOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	accountOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordImport records the outcome of one import batch
func RecordImport(imported, failed int) {
	importEntriesTotal.WithLabelValues("imported").Add(float64(imported))
	importEntriesTotal.WithLabelValues("failed").Add(float64(failed))
}

// RecordExport records an export in the given format
func RecordExport(format string) {
	exportsTotal.WithLabelValues(format).Inc()
}

// RecordBackup records a backup run
func RecordBackup(status string, duration time.Duration) {
	backupRunsTotal.WithLabelValues(status).Inc()
	backupDuration.Observe(duration.Seconds())
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
