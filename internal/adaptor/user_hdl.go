package adaptor

import (
	"net/http"

	"tic-marketplace/internal/usecase"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// GetAllUsers handles GET /api/users?page=1&per_page=10 (admin only)
func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 10)

	resp, err := h.service.GetAllUsers(r.Context(), page, perPage)
	if err != nil {
		h.log.Error("Failed to list users", zap.Error(err))
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "", resp)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identificador de usuario inválido.", nil)
		return
	}

	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	err = h.service.DeleteUser(r.Context(), targetID, callerID, utils.IsAdmin(r.Context()))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			h.log.Error("Failed to delete user", zap.Error(err), zap.String("target_id", targetID.String()))
		}
		utils.ResponseError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Usuario eliminado exitosamente.", nil)
}
