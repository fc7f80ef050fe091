package services

import (
	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

type PlantService struct {
	plantRepo repositories.PlantRepository
	shareRepo repositories.ShareRepository
	care      *CareService
}

func NewPlantService(plantRepo repositories.PlantRepository, shareRepo repositories.ShareRepository, care *CareService) *PlantService {
	return &PlantService{
		plantRepo: plantRepo,
		shareRepo: shareRepo,
		care:      care,
	}
}

// CreatePlant stores the plant and eagerly schedules its first care actions.
func (s *PlantService) CreatePlant(userID string, req *dto.CreatePlantRequest) (*models.Plant, error) {
	plant := &models.Plant{
		UserID:             userID,
		Name:               req.Name,
		Species:            req.Species,
		ImageURL:           req.ImageURL,
		Notes:              req.Notes,
		WaterFrequency:     req.WaterFrequency,
		FertilizeFrequency: req.FertilizeFrequency,
	}

	if err := s.plantRepo.Create(plant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.care.ScheduleForNewPlant(plant); err != nil {
		return nil, err
	}

	logger.Info("Plant created", "plant_id", plant.ID, "user_id", userID)
	return plant, nil
}

func (s *PlantService) GetPlant(plantID, userID string) (*models.Plant, error) {
	plant, err := s.plantRepo.FindByID(plantID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if plant.UserID != userID {
		return nil, apperrors.ErrNotPlantOwner
	}
	return plant, nil
}

func (s *PlantService) ListPlants(userID string) ([]models.Plant, error) {
	plants, err := s.plantRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plants, nil
}

// UpdatePlant applies the provided fields only. A changed cadence affects the
// next scheduled occurrence, already-pending actions keep their due dates.
func (s *PlantService) UpdatePlant(plantID, userID string, req *dto.UpdatePlantRequest) (*models.Plant, error) {
	plant, err := s.GetPlant(plantID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plant.Name = *req.Name
	}
	if req.Species != nil {
		plant.Species = *req.Species
	}
	if req.ImageURL != nil {
		plant.ImageURL = *req.ImageURL
	}
	if req.Notes != nil {
		plant.Notes = *req.Notes
	}
	if req.WaterFrequency != nil {
		plant.WaterFrequency = req.WaterFrequency
	}
	if req.FertilizeFrequency != nil {
		plant.FertilizeFrequency = req.FertilizeFrequency
	}

	if err := s.plantRepo.Update(plant); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plant, nil
}

// DeletePlant removes the plant together with its care actions and any
// community shares that pointed at it.
func (s *PlantService) DeletePlant(plantID, userID string) error {
	if _, err := s.GetPlant(plantID, userID); err != nil {
		return err
	}

	if err := s.shareRepo.DeleteByPlant(plantID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.plantRepo.Delete(plantID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("Plant deleted", "plant_id", plantID, "user_id", userID)
	return nil
}
