package middleware

import (
	"net/http"
	"strings"

	"tic-marketplace/pkg/token"
	"tic-marketplace/pkg/utils"

	"go.uber.org/zap"
)

// Auth middleware validates the bearer session token and attaches the
// decoded identity to the request context. The token comes from the
// Authorization header (with or without "Bearer " prefix) or, as a fallback,
// the ?token= query parameter.
func Auth(issuer *token.Issuer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				raw = r.URL.Query().Get("token")
			}
			if raw == "" {
				utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
				return
			}

			tokenStr := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

			claims, err := issuer.Verify(tokenStr)
			if err != nil {
				logger.Warn("Token verification failed",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseForbidden(w, "Token inválido o expirado.")
				return
			}

			userID, err := claims.Subject()
			if err != nil {
				logger.Warn("Token carries malformed user id",
					zap.String("user_id", claims.UserID),
					zap.Error(err))
				utils.ResponseForbidden(w, "Token inválido o expirado.")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin gates a route to admin accounts. Runs after Auth; the role comes
// from the verified token claims, not a second database lookup.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
				return
			}

			if !utils.IsAdmin(r.Context()) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Acceso denegado: Solo administradores pueden acceder a este recurso.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
