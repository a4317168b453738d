package wire

import (
	"tic-marketplace/internal/adaptor"
	"tic-marketplace/pkg/middleware"
	"tic-marketplace/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProfile(
	r chi.Router,
	profileHandler *adaptor.ProfileHandler,
	uploadHandler *adaptor.UploadHandler,
	issuer *token.Issuer,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(issuer, log))

		r.Get("/api/profile", profileHandler.GetProfile)
		r.Put("/api/profile", profileHandler.UpdateProfile)
		r.Post("/api/upload", uploadHandler.Upload)
	})
}
