package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mstern/tasktriage/internal/api/shared"
)

// NewTraceMiddleware returns middleware that attaches a trace ID to every
// request context and logs the request at debug level. The trace ID also
// appears in error responses so client reports can be correlated with logs.
func NewTraceMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			logger.Debug("request received",
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
