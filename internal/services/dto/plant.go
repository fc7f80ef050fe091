package dto

import (
	"time"

	"plantpal_backend/internal/models"
)

type CreatePlantRequest struct {
	Name               string `json:"name" binding:"required" validate:"required,min=1,max=100"`
	Species            string `json:"species" validate:"omitempty,max=150"`
	ImageURL           string `json:"image_url" validate:"omitempty,url"`
	Notes              string `json:"notes" validate:"omitempty,max=2000"`
	WaterFrequency     *int   `json:"water_frequency" validate:"omitempty,gt=0"`
	FertilizeFrequency *int   `json:"fertilize_frequency" validate:"omitempty,gt=0"`
}

type UpdatePlantRequest struct {
	Name               *string `json:"name" validate:"omitempty,min=1,max=100"`
	Species            *string `json:"species" validate:"omitempty,max=150"`
	ImageURL           *string `json:"image_url" validate:"omitempty,url"`
	Notes              *string `json:"notes" validate:"omitempty,max=2000"`
	WaterFrequency     *int    `json:"water_frequency" validate:"omitempty,gt=0"`
	FertilizeFrequency *int    `json:"fertilize_frequency" validate:"omitempty,gt=0"`
}

type PlantDTO struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Species            string     `json:"species,omitempty"`
	ImageURL           string     `json:"image_url,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	WaterFrequency     *int       `json:"water_frequency,omitempty"`
	FertilizeFrequency *int       `json:"fertilize_frequency,omitempty"`
	LastWatered        *time.Time `json:"last_watered,omitempty"`
	LastFertilized     *time.Time `json:"last_fertilized,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func NewPlantDTO(p *models.Plant) PlantDTO {
	return PlantDTO{
		ID:                 p.ID,
		Name:               p.Name,
		Species:            p.Species,
		ImageURL:           p.ImageURL,
		Notes:              p.Notes,
		WaterFrequency:     p.WaterFrequency,
		FertilizeFrequency: p.FertilizeFrequency,
		LastWatered:        p.LastWatered,
		LastFertilized:     p.LastFertilized,
		CreatedAt:          p.CreatedAt,
	}
}

func NewPlantDTOs(plants []models.Plant) []PlantDTO {
	out := make([]PlantDTO, 0, len(plants))
	for i := range plants {
		out = append(out, NewPlantDTO(&plants[i]))
	}
	return out
}
