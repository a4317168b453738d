package adaptor

import (
	"encoding/json"
	"net/http"

	"tic-marketplace/internal/dto/request"
	"tic-marketplace/internal/dto/response"
	"tic-marketplace/internal/usecase"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "signup")
		return
	}

	utils.ResponseCreated(w, "Usuario registrado exitosamente.", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login exitoso", resp)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.handleServiceError(w, err, "forgot-password")
		return
	}

	utils.ResponseSuccess(w, "Se ha enviado un correo con instrucciones para restablecer tu contraseña.", nil)
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "reset-password")
		return
	}

	utils.ResponseSuccess(w, "Contraseña restablecida con éxito.", nil)
}

// ValidatePassword handles POST /api/auth/validate-password (authenticated)
func (h *AuthHandler) ValidatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	var req request.ValidatePasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	valid, err := h.service.VerifyPassword(r.Context(), userID, req.Password)
	if err != nil {
		h.handleServiceError(w, err, "validate-password")
		return
	}

	if !valid {
		utils.ResponseJSON(w, http.StatusUnauthorized, false, "Contraseña incorrecta.",
			response.ValidatePasswordResponse{Valid: false}, nil)
		return
	}

	utils.ResponseSuccess(w, "", response.ValidatePasswordResponse{Valid: true})
}

// handleServiceError logs the failure and writes the mapped status. Internal
// causes are logged at error level with detail; expected failures at warn.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.log.Error("Auth operation failed",
			zap.String("operation", operation),
			zap.Error(err))
	} else {
		h.log.Warn("Auth operation rejected",
			zap.String("operation", operation),
			zap.Error(err))
	}

	utils.ResponseError(w, err)
}
