package repository

import (
	"context"
	"fmt"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CompanyRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Company, error)
	// Upsert creates the user's company row if missing, updates it otherwise.
	Upsert(ctx context.Context, company *entity.Company) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type companyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCompanyRepository(db database.PgxIface, log *zap.Logger) CompanyRepository {
	return &companyRepository{
		db:  db,
		log: log.With(zap.String("repository", "company")),
	}
}

func (r *companyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Company, error) {
	query := `
		SELECT id, user_id, name, description, location, phone, photo,
		       created_at, updated_at
		FROM companies
		WHERE user_id = $1
	`

	var company entity.Company
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&company.ID,
		&company.UserID,
		&company.Name,
		&company.Description,
		&company.Location,
		&company.Phone,
		&company.Photo,
		&company.CreatedAt,
		&company.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find company by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find company for user %s: %w", userID.String(), err)
	}

	return &company, nil
}

func (r *companyRepository) Upsert(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, user_id, name, description, location, phone,
		                      photo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    location = EXCLUDED.location,
		    phone = EXCLUDED.phone,
		    photo = EXCLUDED.photo,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		company.ID,
		company.UserID,
		company.Name,
		company.Description,
		company.Location,
		company.Phone,
		company.Photo,
		company.CreatedAt,
		company.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert company",
			zap.Error(err),
			zap.String("user_id", company.UserID.String()),
		)
		return fmt.Errorf("upsert company for user %s: %w", company.UserID.String(), err)
	}

	return nil
}

func (r *companyRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM companies WHERE user_id = $1`, userID)
	if err != nil {
		r.log.Error("Failed to delete company",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete company for user %s: %w", userID.String(), err)
	}

	return nil
}
