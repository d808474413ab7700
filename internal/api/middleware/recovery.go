package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gymdesk/gymdesk/internal/pkg/errors"
	"github.com/gymdesk/gymdesk/internal/pkg/logger"
	"github.com/gymdesk/gymdesk/internal/pkg/utils"
)

// Recovery turns panics into 500 responses instead of dropped connections
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.WithFields(map[string]interface{}{
						"panic":      rec,
						"path":       r.URL.Path,
						"request_id": GetRequestID(r.Context()),
						"stack":      string(debug.Stack()),
					}).Error("panic recovered")
					utils.WriteError(w, errors.Internal("internal server error", nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
