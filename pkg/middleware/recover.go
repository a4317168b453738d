package middleware

import (
	"net/http"

	"tic-marketplace/pkg/utils"

	"go.uber.org/zap"
)

// Recover middleware. A panic in a handler is logged with its stack and
// answered with a generic 500; the process keeps serving.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					utils.ResponseInternalError(w, "Error en el servidor.")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
