package response

import (
	"time"

	"tic-marketplace/internal/data/entity"
)

type ProgramResponse struct {
	ProgramID string    `json:"program_id"`
	Duration  int       `json:"duration"`
	Mode      string    `json:"mode"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func ProgramToResponse(program *entity.Program) ProgramResponse {
	return ProgramResponse{
		ProgramID: program.ID.String(),
		Duration:  program.Duration,
		Mode:      program.Mode,
		Active:    program.Active,
		CreatedAt: program.CreatedAt,
	}
}
