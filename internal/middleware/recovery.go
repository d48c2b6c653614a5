package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/josh-kwaku/library-fines/internal/handler"
	"github.com/josh-kwaku/library-fines/internal/logging"
)

// Recovery converts a panic in a handler into a 500 envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(r.Context()).Error("panic recovered",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", TraceIDFromContext(r.Context()),
					"error", rec,
					"stack", string(debug.Stack()),
				)
				handler.RespondAppError(w, handler.ErrInternalError, nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
