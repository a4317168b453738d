package response

import "tic-marketplace/internal/data/entity"

// AuthUser is the minimal user projection returned by signup and login.
// Role is only populated on login.
type AuthUser struct {
	UserID string          `json:"user_id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   entity.UserRole `json:"role,omitempty"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type ValidatePasswordResponse struct {
	Valid bool `json:"valid"`
}

func SignupToResponse(user *entity.User, token string) *AuthResponse {
	return &AuthResponse{
		Token: token,
		User: AuthUser{
			UserID: user.ID.String(),
			Name:   user.Name,
			Email:  user.Email,
		},
	}
}

func LoginToResponse(user *entity.User, token string) *AuthResponse {
	return &AuthResponse{
		Token: token,
		User: AuthUser{
			UserID: user.ID.String(),
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
		},
	}
}
