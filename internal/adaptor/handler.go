package adaptor

import (
	"tic-marketplace/internal/usecase"
	"tic-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Profile *ProfileHandler
	Product *ProductHandler
	Program *ProgramHandler
	Upload  *UploadHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Profile: NewProfileHandler(service.Profile, log),
		Product: NewProductHandler(service.Product, log),
		Program: NewProgramHandler(service.Program, log),
		Upload:  NewUploadHandler(service.Profile, config.Upload.Dir, config.App.BackendURL, log),
	}
}
