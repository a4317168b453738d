package usecase

import (
	"context"

	"tic-marketplace/internal/data/repository"
	"tic-marketplace/internal/dto/response"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetAllUsers(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.UserResponse], error)
	// DeleteUser enforces the ownership rule: a user may delete their own
	// account, an admin may delete any other account but not their own.
	DeleteUser(ctx context.Context, targetID, callerID uuid.UUID, callerIsAdmin bool) error
}

type userService struct {
	repo repository.UserRepository
	log  *zap.Logger
}

func NewUserService(repo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log,
	}
}

func (s *userService) GetAllUsers(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.UserResponse], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	offset := utils.CalculateOffset(page, perPage)

	users, err := s.repo.FindAll(ctx, perPage, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	items := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(items, page, perPage, total), nil
}

func (s *userService) DeleteUser(ctx context.Context, targetID, callerID uuid.UUID, callerIsAdmin bool) error {
	if !callerIsAdmin && callerID != targetID {
		return apperr.New(apperr.KindAuthorization, "No tienes permiso para eliminar este usuario.")
	}
	if callerIsAdmin && callerID == targetID {
		return apperr.New(apperr.KindAuthorization, "No puedes eliminar tu propia cuenta.")
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	s.log.Info("User account deleted",
		zap.String("target_id", targetID.String()),
		zap.String("caller_id", callerID.String()))

	return nil
}
