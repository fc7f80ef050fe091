package dto

import "plantpal_backend/internal/models"

type AdminStartTrialRequest struct {
	UserID string `json:"user_id" binding:"required" validate:"required,uuid"`
}

type UpdateUserStatusRequest struct {
	UserID           string                  `json:"user_id" binding:"required" validate:"required,uuid"`
	SubscriptionType models.SubscriptionType `json:"subscription_type" binding:"required" validate:"required,oneof=free trial premium premium_lifetime"`
}
