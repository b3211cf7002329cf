package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Metrics records latency and status per chi route pattern.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			m.Observe(r.Method, routePattern(r), rec.code(), time.Since(start))
		})
	}
}
