package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dropDatabas3/boardz/internal/metrics"
)

// WithMetrics instrumenta cada request: contador por método/path/status,
// histograma de duración e in-flight gauge. El path se normaliza para
// no explotar la cardinalidad con IDs.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := metrics.NormalizePath(r.URL.Path)

			metrics.HTTPInflight.Inc()
			defer metrics.HTTPInflight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
