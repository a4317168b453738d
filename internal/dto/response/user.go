package response

import (
	"time"

	"tic-marketplace/internal/data/entity"
)

type UserResponse struct {
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         entity.UserRole `json:"role"`
	Phone        *string         `json:"phone,omitempty"`
	Description  *string         `json:"description,omitempty"`
	ProfilePhoto *string         `json:"profile_photo,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		UserID:       user.ID.String(),
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		Phone:        user.Phone,
		Description:  user.Description,
		ProfilePhoto: user.ProfilePhoto,
		CreatedAt:    user.CreatedAt,
	}
}
