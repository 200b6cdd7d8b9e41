package providers

import (
	"net/http"
	"time"
)

// unmatchedEndpoint labels requests no API route serves, keeping the
// endpoint label bounded by the route table.
const unmatchedEndpoint = "unmatched"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// AccessMiddleware records request metrics under the route pattern routes
// matches and writes one access line per request to the get or post log.
func AccessMiddleware(metrics MetricsProviderInterface, logger Logger, routes *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := unmatchedEndpoint
		if _, pattern := routes.Handler(r); pattern != "" {
			endpoint = pattern
		}

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		duration := time.Since(start)

		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, duration)
		logger.Debugf(GetLogTypeByRequestType(r.Method), "%s %s (%s) %d %s", r.Method, r.URL.Path, endpoint, sw.status, duration)
	})
}
