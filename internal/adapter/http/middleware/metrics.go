package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/txreplay/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies per route.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap instruments the next handler.
func (mw *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// the route pattern is only known after routing
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}

		mw.metrics.HTTPRequests.
			WithLabelValues(r.Method, pattern, strconv.Itoa(ww.Status())).Inc()
		mw.metrics.HTTPDuration.
			WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}
