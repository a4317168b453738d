package adaptor

import (
	"encoding/json"
	"net/http"

	"tic-marketplace/internal/dto/request"
	"tic-marketplace/internal/usecase"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type ProgramHandler struct {
	service usecase.ProgramService
	log     *zap.Logger
}

func NewProgramHandler(service usecase.ProgramService, log *zap.Logger) *ProgramHandler {
	return &ProgramHandler{
		service: service,
		log:     log,
	}
}

// Start handles POST /api/program/start
func (h *ProgramHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartProgramRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	resp, err := h.service.Start(r.Context(), &req)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.log.Error("Failed to start program", zap.Error(err))
		}
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseCreated(w, "Programa iniciado exitosamente.", resp)
}

// GetActive handles GET /api/program/active
func (h *ProgramHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetActive(r.Context())
	if err != nil {
		h.log.Error("Failed to get active programs", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "", resp)
}
