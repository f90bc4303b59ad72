package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/summitlist-backend/internal/metrics"
)

// Metrics records request count and latency under route, the mux pattern
// the handler is registered with.
func Metrics(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			metrics.RecordHTTPRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
