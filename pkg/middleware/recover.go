package middleware

import (
	"errors"
	"net/http"

	"pilgrimage-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a 500 response. http.ErrAbortHandler is
// re-raised so the server can drop the connection.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				fields := []zap.Field{
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				}
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					fields = append(fields, zap.String("route", rctx.RoutePattern()))
				}
				if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
					fields = append(fields, zap.String("user_id", userID.String()))
				}
				logger.Error("Handler panicked", fields...)

				utils.ResponseInternalError(w, "Internal server error")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
