// internal/wire/wire.go
package wire

import (
	"net/http"

	"tic-marketplace/internal/adaptor"
	"tic-marketplace/internal/data/repository"
	"tic-marketplace/internal/email"
	"tic-marketplace/internal/usecase"
	"tic-marketplace/pkg/middleware"
	"tic-marketplace/pkg/token"
	"tic-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface.
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	issuer := token.NewIssuer(config.JWT.Secret)
	mailer := email.NewSender(config.Email)

	service := usecase.NewService(repo, issuer, mailer, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, issuer, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	issuer *token.Issuer,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.FrontendURL))

	// Routes
	wireAuth(r, handler.Auth, issuer, logger)
	wireUser(r, handler.User, issuer, logger)
	wireProfile(r, handler.Profile, handler.Upload, issuer, logger)
	wireProduct(r, handler.Product, issuer, logger)
	wireProgram(r, handler.Program, issuer, logger)

	// Uploaded profile images are served statically
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.Upload.Dir)))
	r.Get("/uploads/*", fs.ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
