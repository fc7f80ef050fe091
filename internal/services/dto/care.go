package dto

import (
	"time"

	"plantpal_backend/internal/models"
)

type CreateCareActionRequest struct {
	PlantID string                `json:"plant_id" binding:"required" validate:"required,uuid"`
	Kind    models.CareActionKind `json:"kind" binding:"required" validate:"required,oneof=water fertilize"`
	DueDate *time.Time            `json:"due_date"`
}

type CareActionDTO struct {
	ID          string                `json:"id"`
	PlantID     string                `json:"plant_id"`
	Kind        models.CareActionKind `json:"kind"`
	DueDate     time.Time             `json:"due_date"`
	IsCompleted bool                  `json:"is_completed"`
	CompletedAt *time.Time            `json:"completed_at,omitempty"`
}

func NewCareActionDTO(a *models.CareAction) CareActionDTO {
	return CareActionDTO{
		ID:          a.ID,
		PlantID:     a.PlantID,
		Kind:        a.Kind,
		DueDate:     a.DueDate,
		IsCompleted: a.IsCompleted,
		CompletedAt: a.CompletedAt,
	}
}

func NewCareActionDTOs(actions []models.CareAction) []CareActionDTO {
	out := make([]CareActionDTO, 0, len(actions))
	for i := range actions {
		out = append(out, NewCareActionDTO(&actions[i]))
	}
	return out
}
