package usecase

import (
	"context"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/internal/data/repository"
	"tic-marketplace/internal/dto/request"
	"tic-marketplace/internal/dto/response"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProgramService interface {
	Start(ctx context.Context, req *request.StartProgramRequest) (*response.ProgramResponse, error)
	GetActive(ctx context.Context) ([]response.ProgramResponse, error)
}

type programService struct {
	repo repository.ProgramRepository
	log  *zap.Logger
}

func NewProgramService(repo repository.ProgramRepository, log *zap.Logger) ProgramService {
	return &programService{
		repo: repo,
		log:  log,
	}
}

// Start records a new program; it begins active.
func (s *programService) Start(ctx context.Context, req *request.StartProgramRequest) (*response.ProgramResponse, error) {
	if req.Duration == 0 || req.Mode == "" {
		return nil, apperr.Validation("Duración y modo son obligatorios.")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	program := &entity.Program{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Duration: req.Duration,
		Mode:     req.Mode,
		Active:   true,
	}

	if err := s.repo.Create(ctx, program); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error al iniciar el programa.", err)
	}

	s.log.Info("Program started",
		zap.String("program_id", program.ID.String()),
		zap.String("mode", program.Mode),
		zap.Int("duration", program.Duration))

	resp := response.ProgramToResponse(program)
	return &resp, nil
}

func (s *programService) GetActive(ctx context.Context) ([]response.ProgramResponse, error) {
	programs, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error al obtener los programas activos.", err)
	}

	items := make([]response.ProgramResponse, 0, len(programs))
	for _, program := range programs {
		items = append(items, response.ProgramToResponse(program))
	}

	return items, nil
}
