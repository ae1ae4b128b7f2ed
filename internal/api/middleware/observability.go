package middleware

import (
	"net/http"
	"time"

	"github.com/zatekoja/careplannavigator/internal/infrastructure/observability"
	"go.opentelemetry.io/otel/attribute"
)

// UnmatchedRoute labels requests no registered pattern serves
const UnmatchedRoute = "unmatched"

// RouteMatcher resolves the pattern registered for a request.
// *http.ServeMux implements it.
type RouteMatcher interface {
	Handler(r *http.Request) (h http.Handler, pattern string)
}

// ObservabilityMiddleware traces each request and records request metrics
// under the matched route pattern, e.g. "GET /api/risk/{stepId}". The
// pattern is resolved before the request runs, so responses served by
// outer layers (cache hits) are labelled the same as routed ones.
func ObservabilityMiddleware(metrics *observability.Metrics, routes RouteMatcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchRoute(routes, r)

			ctx, span := observability.StartSpan(r.Context(), route)
			defer span.End()

			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			)

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rw, r.WithContext(ctx))

			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, time.Since(start))
			observability.SetSpanAttributes(span, attribute.Int("http.status_code", rw.statusCode))
		})
	}
}

func matchRoute(routes RouteMatcher, r *http.Request) string {
	if routes == nil {
		return UnmatchedRoute
	}
	if _, pattern := routes.Handler(r); pattern != "" {
		return pattern
	}
	return UnmatchedRoute
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}
