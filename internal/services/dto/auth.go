package dto

import (
	"time"

	"plantpal_backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=32"`
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// UserDTO is the public shape of a user record.
type UserDTO struct {
	ID                       string                  `json:"id"`
	Username                 string                  `json:"username"`
	Email                    string                  `json:"email"`
	Role                     models.UserRole         `json:"role"`
	SubscriptionType         models.SubscriptionType `json:"subscription_type"`
	IdentificationsRemaining int                     `json:"identifications_remaining"`
	TrialEndDate             *time.Time              `json:"trial_end_date,omitempty"`
	CreatedAt                time.Time               `json:"created_at"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:                       u.ID,
		Username:                 u.Username,
		Email:                    u.Email,
		Role:                     u.Role,
		SubscriptionType:         u.SubscriptionType,
		IdentificationsRemaining: u.IdentificationsRemaining,
		TrialEndDate:             u.TrialEndDate,
		CreatedAt:                u.CreatedAt,
	}
}
