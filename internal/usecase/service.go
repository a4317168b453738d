package usecase

import (
	"tic-marketplace/internal/data/repository"
	"tic-marketplace/pkg/token"
	"tic-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Profile ProfileService
	Product ProductService
	Program ProgramService
}

func NewService(repo *repository.Repository, issuer *token.Issuer, mailer Mailer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, issuer, mailer, config, log),
		User:    NewUserService(repo.User, log),
		Profile: NewProfileService(repo.User, repo.Company, log),
		Product: NewProductService(repo.Product, repo.Category, log),
		Program: NewProgramService(repo.Program, log),
	}
}
