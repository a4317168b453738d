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

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

// GetProfile handles GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	resp, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.log.Error("Failed to get profile", zap.Error(err), zap.String("user_id", userID.String()))
		}
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "", resp)
}

// UpdateProfile handles PUT /api/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	var req request.UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Datos inválidos.", validationErrors)
		return
	}

	if err := h.service.UpdateProfile(r.Context(), userID, &req); err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.log.Error("Failed to update profile", zap.Error(err), zap.String("user_id", userID.String()))
		}
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Perfil y empresa actualizados exitosamente.", nil)
}
