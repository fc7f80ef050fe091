package dto

import (
	"time"

	"plantpal_backend/internal/models"
)

type CreateShareRequest struct {
	PlantID string `json:"plant_id" binding:"required" validate:"required,uuid"`
	Caption string `json:"caption" validate:"omitempty,max=500"`
}

type ShareDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlantID   string    `json:"plant_id"`
	Caption   string    `json:"caption,omitempty"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

func NewShareDTO(s *models.CommunityShare) ShareDTO {
	return ShareDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		PlantID:   s.PlantID,
		Caption:   s.Caption,
		Likes:     s.Likes,
		CreatedAt: s.CreatedAt,
	}
}

func NewShareDTOs(shares []models.CommunityShare) []ShareDTO {
	out := make([]ShareDTO, 0, len(shares))
	for i := range shares {
		out = append(out, NewShareDTO(&shares[i]))
	}
	return out
}
