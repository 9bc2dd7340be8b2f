package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"yatube-api/internal/metrics"
)

// Metrics records per-request counters and latency, labelled by the chi
// route pattern rather than the raw path to keep cardinality bounded.
func Metrics(provider metrics.MetricsProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chi_middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(ww.Status())

			provider.IncrementHTTPRequests(r.Method, route, status)
			provider.RecordHTTPRequestDuration(r.Method, route, status, time.Since(start))
		})
	}
}
