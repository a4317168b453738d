package wire

import (
	"tic-marketplace/internal/adaptor"
	"tic-marketplace/pkg/middleware"
	"tic-marketplace/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	issuer *token.Issuer,
	log *zap.Logger,
) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.Auth(issuer, log))

		// Listing is admin-only; deletion allows self-or-admin (checked in service)
		r.With(middleware.Admin(log)).Get("/", userHandler.GetAllUsers)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
