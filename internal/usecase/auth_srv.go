package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/internal/data/repository"
	"tic-marketplace/internal/dto/request"
	"tic-marketplace/internal/dto/response"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/token"
	"tic-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	signupTokenTTL = 24 * time.Hour
	loginTokenTTL  = 30 * 24 * time.Hour
	resetTokenTTL  = 1 * time.Hour
)

// Mailer is the narrow contract the auth flow needs from email delivery.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type AuthService interface {
	Register(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	VerifyPassword(ctx context.Context, userID uuid.UUID, password string) (bool, error)
}

type authService struct {
	repo   *repository.Repository
	issuer *token.Issuer
	mailer Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	issuer *token.Issuer,
	mailer Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		issuer: issuer,
		mailer: mailer,
		config: config,
		log:    log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error) {
	// 1. Required fields and password rules
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" || req.Role == "" {
		return nil, apperr.Validation("Todos los campos son obligatorios.")
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperr.Validation("Las contraseñas no coinciden.")
	}
	if len(req.Password) < 6 {
		return nil, apperr.Validation("La contraseña debe tener al menos 6 caracteres.")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	role := entity.UserRole(req.Role)

	// 2. Admin role requires the shared gate-code
	if role == entity.RoleAdmin {
		if err := s.checkGateCode(req.AdminPassword); err != nil {
			return nil, err
		}
	}

	// 3. Email must be unique
	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "El correo ya está registrado.")
	}

	// 4. Hash credentials
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	var hashedAdminPassword *string
	if role == entity.RoleAdmin {
		hashed, err := utils.HashPassword(req.AdminPassword)
		if err != nil {
			s.log.Error("Failed to hash admin password", zap.Error(err))
			return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
		}
		hashedAdminPassword = &hashed
	}

	// 5. Create user
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		AdminPasswordHash: hashedAdminPassword,
		Role:              role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	// 6. Issue session token
	tokenStr, err := s.issuer.Issue(user.ID, user.Email, user.Role, signupTokenTTL)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	return response.SignupToResponse(user, tokenStr), nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	// 1. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
	}

	// 2. Requested role must match the stored one
	if user.Role != entity.UserRole(req.Role) {
		return nil, apperr.New(apperr.KindAuthorization,
			fmt.Sprintf("Rol incorrecto. Tu cuenta está registrada como %s", user.Role))
	}

	// 3. Admin role requires the shared gate-code on every login
	if user.Role == entity.RoleAdmin {
		if err := s.checkGateCode(req.AdminPassword); err != nil {
			return nil, err
		}
	}

	// 4. Verify password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperr.New(apperr.KindInvalidCredentials, "Contraseña incorrecta.")
	}

	// 5. Issue session token
	tokenStr, err := s.issuer.Issue(user.ID, user.Email, user.Role, loginTokenTTL)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return response.LoginToResponse(user, tokenStr), nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return apperr.Validation("El correo es obligatorio.")
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("email", email))
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "No existe un usuario con ese correo.")
	}

	resetToken, err := utils.GenerateResetToken()
	if err != nil {
		s.log.Error("Failed to generate reset token", zap.Error(err))
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	reset := &entity.PasswordReset{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Token:     resetToken,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}

	if err := s.repo.PasswordReset.Create(ctx, reset); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	// Delivery failure must reach the caller, not vanish in a goroutine.
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.config.App.FrontendURL, resetToken)
	html := fmt.Sprintf(`
		<p>Has solicitado restablecer tu contraseña. Haz clic en el siguiente enlace o pégalo en tu navegador:</p>
		<p><a href="%s">%s</a></p>
		<p>Este enlace expira en 1 hora.</p>
	`, resetLink, resetLink)

	mailCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := s.mailer.Send(mailCtx, email, "Restablecer Contraseña - TIC Americas", html); err != nil {
		s.log.Error("Failed to send reset email", zap.Error(err), zap.String("email", email))
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	s.log.Info("Password reset requested",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", reset.ExpiresAt))

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if req.Token == "" || req.NewPassword == "" {
		return apperr.Validation("Token y nueva contraseña son obligatorios.")
	}
	if len(req.NewPassword) < 6 {
		return apperr.Validation("La nueva contraseña debe tener al menos 6 caracteres.")
	}

	reset, err := s.repo.PasswordReset.FindByToken(ctx, req.Token)
	if err != nil {
		s.log.Error("Failed to find reset token", zap.Error(err))
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if reset == nil {
		return apperr.New(apperr.KindInvalidToken, "Token inválido o inexistente.")
	}
	if reset.Expired(time.Now()) {
		return apperr.New(apperr.KindExpiredToken, "El token ha expirado.")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	// Update and consume atomically so the token is single-use.
	if err := s.repo.PasswordReset.ConsumeAndUpdatePassword(ctx, reset.ID, reset.UserID, hashed); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	s.log.Info("Password reset completed", zap.String("user_id", reset.UserID.String()))
	return nil
}

func (s *authService) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) (bool, error) {
	if password == "" {
		return false, apperr.Validation("La contraseña es obligatoria.")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return false, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if user == nil {
		return false, apperr.New(apperr.KindNotFound, "Usuario no encontrado.")
	}

	return utils.CheckPasswordHash(password, user.PasswordHash), nil
}

// checkGateCode compares the supplied admin code against the configured
// shared secret, trimming whitespace on both sides.
func (s *authService) checkGateCode(adminPassword string) error {
	if adminPassword == "" ||
		strings.TrimSpace(adminPassword) != strings.TrimSpace(s.config.Admin.GateCode) {
		return apperr.New(apperr.KindGateCode, "Contraseña de Admin incorrecta.")
	}
	return nil
}
