package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/gymdesk/gymdesk/internal/pkg/logger"
)

// Logger logs one line per request with method, path, status, size, and
// duration. The SSE stream endpoint logs on close, which may be much later.
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.WithFields(map[string]interface{}{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      ww.Status(),
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
					"remote":      r.RemoteAddr,
					"request_id":  GetRequestID(r.Context()),
				}).Info("request")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
