package usecase

import (
	"context"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/internal/data/repository"
	"tic-marketplace/internal/dto/request"
	"tic-marketplace/internal/dto/response"
	"tic-marketplace/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) error
	SetProfilePhoto(ctx context.Context, userID uuid.UUID, photoURL string) error
}

type profileService struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	log       *zap.Logger
}

func NewProfileService(users repository.UserRepository, companies repository.CompanyRepository, log *zap.Logger) ProfileService {
	return &profileService{
		users:     users,
		companies: companies,
		log:       log,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
	}

	company, err := s.companies.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	return response.ProfileToResponse(user, company), nil
}

// UpdateProfile patches the user's own fields; absent fields keep their
// stored values. Company fields, when present, upsert the company row.
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Description != nil {
		user.Description = req.Description
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = req.ProfilePhoto
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	if req.CompanyName != nil || req.CompanyDescription != nil ||
		req.CompanyLocation != nil || req.CompanyPhone != nil || req.CompanyPhoto != nil {
		if err := s.upsertCompany(ctx, userID, req); err != nil {
			return err
		}
	}

	s.log.Info("Profile updated", zap.String("user_id", userID.String()))
	return nil
}

func (s *profileService) upsertCompany(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) error {
	company, err := s.companies.FindByUserID(ctx, userID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	now := time.Now()
	if company == nil {
		company = &entity.Company{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			UserID: userID,
		}
	}
	company.UpdatedAt = now

	if req.CompanyName != nil {
		company.Name = req.CompanyName
	}
	if req.CompanyDescription != nil {
		company.Description = req.CompanyDescription
	}
	if req.CompanyLocation != nil {
		company.Location = req.CompanyLocation
	}
	if req.CompanyPhone != nil {
		company.Phone = req.CompanyPhone
	}
	if req.CompanyPhoto != nil {
		company.Photo = req.CompanyPhoto
	}

	if err := s.companies.Upsert(ctx, company); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	return nil
}

func (s *profileService) SetProfilePhoto(ctx context.Context, userID uuid.UUID, photoURL string) error {
	if err := s.users.UpdatePhoto(ctx, userID, photoURL); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	return nil
}
