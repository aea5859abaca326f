package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/observability"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics records request duration labeled by method, route pattern and
// status. The pattern is resolved after the handler runs so path params
// do not explode label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = "unmatched"
		}
		observability.HTTPRequestDuration.WithLabelValues(
			r.Method,
			pattern,
			strconv.Itoa(ww.Status()),
		).Observe(time.Since(start).Seconds())
	})
}
