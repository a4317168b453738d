package repository

import (
	"tic-marketplace/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User          UserRepository
	Company       CompanyRepository
	PasswordReset PasswordResetRepository
	Product       ProductRepository
	Category      CategoryRepository
	Program       ProgramRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Company:       NewCompanyRepository(db, log),
		PasswordReset: NewPasswordResetRepository(db, log),
		Product:       NewProductRepository(db, log),
		Category:      NewCategoryRepository(db, log),
		Program:       NewProgramRepository(db, log),
	}
}
