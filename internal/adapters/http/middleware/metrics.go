package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "advisory_http_request_duration_seconds",
		Help:    "HTTP request latency by method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisory_http_requests_total",
		Help: "Total HTTP requests by method and status.",
	}, []string{"method", "status"})
)

// metricsWriter wraps http.ResponseWriter to capture the status code.
type metricsWriter struct {
	http.ResponseWriter
	status int
}

// WriteHeader captures the status code and delegates to the underlying ResponseWriter.
// PRE: code is a valid HTTP status code
// POST: status stored, header written to underlying ResponseWriter
func (mw *metricsWriter) WriteHeader(code int) {
	mw.status = code
	mw.ResponseWriter.WriteHeader(code)
}

// Metrics returns middleware that records request latency and counts for
// the /metrics endpoint. The path is deliberately not a label: IDs in URLs
// would blow up cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mw := &metricsWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(mw, r)

		status := strconv.Itoa(mw.status)
		requestDuration.WithLabelValues(r.Method, status).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(r.Method, status).Inc()
	})
}
