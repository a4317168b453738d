package wire

import (
	"tic-marketplace/internal/adaptor"
	"tic-marketplace/pkg/middleware"
	"tic-marketplace/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProgram(
	r chi.Router,
	programHandler *adaptor.ProgramHandler,
	issuer *token.Issuer,
	log *zap.Logger,
) {
	r.Route("/api/program", func(r chi.Router) {
		r.Use(middleware.Auth(issuer, log))

		r.Post("/start", programHandler.Start)
		r.Get("/active", programHandler.GetActive)
	})
}
