package request

type SignupRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Role            string `json:"role" validate:"required,oneof=user admin"`
	// AdminPassword carries the shared gate-code; only checked for role=admin.
	AdminPassword string `json:"adminPassword,omitempty"`
}

type LoginRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	Role          string `json:"role" validate:"required,oneof=user admin"`
	AdminPassword string `json:"adminPassword,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ValidatePasswordRequest struct {
	Password string `json:"password" validate:"required"`
}
