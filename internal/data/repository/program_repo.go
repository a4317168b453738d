package repository

import (
	"context"
	"fmt"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/pkg/database"

	"go.uber.org/zap"
)

type ProgramRepository interface {
	Create(ctx context.Context, program *entity.Program) error
	FindActive(ctx context.Context) ([]*entity.Program, error)
}

type programRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProgramRepository(db database.PgxIface, log *zap.Logger) ProgramRepository {
	return &programRepository{
		db:  db,
		log: log.With(zap.String("repository", "program")),
	}
}

func (r *programRepository) Create(ctx context.Context, program *entity.Program) error {
	query := `
		INSERT INTO programs (id, duration, mode, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		program.ID,
		program.Duration,
		program.Mode,
		program.Active,
		program.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create program",
			zap.Error(err),
			zap.String("mode", program.Mode),
		)
		return fmt.Errorf("create program: %w", err)
	}

	return nil
}

func (r *programRepository) FindActive(ctx context.Context) ([]*entity.Program, error) {
	query := `
		SELECT id, duration, mode, active, created_at
		FROM programs
		WHERE active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get active programs", zap.Error(err))
		return nil, fmt.Errorf("find active programs: %w", err)
	}
	defer rows.Close()

	var programs []*entity.Program
	for rows.Next() {
		var program entity.Program
		err := rows.Scan(
			&program.ID,
			&program.Duration,
			&program.Mode,
			&program.Active,
			&program.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan program row", zap.Error(err))
			return nil, fmt.Errorf("scan program row: %w", err)
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate programs rows: %w", err)
	}

	return programs, nil
}
