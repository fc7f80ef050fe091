package services

import (
	"time"

	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

// CareService owns the watering and fertilizing schedule. Completing a care
// action stamps the plant and chains the next occurrence, so a plant with a
// cadence always has exactly one pending action per kind.
type CareService struct {
	careRepo  repositories.CareActionRepository
	plantRepo repositories.PlantRepository

	now func() time.Time
}

func NewCareService(careRepo repositories.CareActionRepository, plantRepo repositories.PlantRepository) *CareService {
	return &CareService{
		careRepo:  careRepo,
		plantRepo: plantRepo,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Test hook.
func (s *CareService) WithClock(now func() time.Time) *CareService {
	s.now = now
	return s
}

// ScheduleForNewPlant creates the initial pending action for each care kind
// the plant has a cadence for. A nil frequency means the kind is unscheduled.
func (s *CareService) ScheduleForNewPlant(plant *models.Plant) error {
	now := s.now()
	for _, kind := range []models.CareActionKind{models.CareActionWater, models.CareActionFertilize} {
		freq := plant.FrequencyFor(kind)
		if freq == nil {
			continue
		}
		action := &models.CareAction{
			PlantID: plant.ID,
			UserID:  plant.UserID,
			Kind:    kind,
			DueDate: now.AddDate(0, 0, *freq),
		}
		if err := s.careRepo.Create(action); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

// CreateCareAction adds an ad-hoc pending action for a plant the user owns.
func (s *CareService) CreateCareAction(userID string, req *dto.CreateCareActionRequest) (*models.CareAction, error) {
	plant, err := s.plantRepo.FindByID(req.PlantID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if plant.UserID != userID {
		return nil, apperrors.ErrNotPlantOwner
	}

	due := s.now()
	if req.DueDate != nil {
		due = *req.DueDate
	}

	action := &models.CareAction{
		PlantID: plant.ID,
		UserID:  userID,
		Kind:    req.Kind,
		DueDate: due,
	}
	if err := s.careRepo.Create(action); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return action, nil
}

// CompleteCareAction marks a pending action done, stamps the plant's last-care
// timestamp and schedules the next occurrence one cadence out. When the plant
// no longer exists the completion is still recorded and the chain stops there.
func (s *CareService) CompleteCareAction(actionID, userID string) (*models.CareAction, error) {
	action, err := s.careRepo.FindByID(actionID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if action.UserID != userID {
		return nil, apperrors.ErrNotPlantOwner
	}
	if action.IsCompleted {
		return nil, apperrors.ErrCareActionCompleted
	}

	now := s.now()
	action.IsCompleted = true
	action.CompletedAt = &now
	if err := s.careRepo.Update(action); err != nil {
		return nil, apperrors.InternalError(err)
	}

	plant, err := s.plantRepo.FindByID(action.PlantID)
	if err != nil {
		// Plant was deleted out from under the action. The completion stands.
		logger.Warn("Completed care action for missing plant", "action_id", action.ID, "plant_id", action.PlantID)
		return action, nil
	}

	s.stampPlant(plant, action.Kind, now)
	if err := s.plantRepo.Update(plant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if freq := plant.FrequencyFor(action.Kind); freq != nil {
		next := &models.CareAction{
			PlantID: plant.ID,
			UserID:  plant.UserID,
			Kind:    action.Kind,
			DueDate: now.AddDate(0, 0, *freq),
		}
		if err := s.careRepo.Create(next); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return action, nil
}

// RecordCare backs the water/fertilize endpoints. An existing pending action
// of the kind is completed through the normal chain; without one the plant is
// stamped directly and the next occurrence scheduled.
func (s *CareService) RecordCare(plantID, userID string, kind models.CareActionKind) (*models.Plant, error) {
	plant, err := s.plantRepo.FindByID(plantID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if plant.UserID != userID {
		return nil, apperrors.ErrNotPlantOwner
	}

	pending, err := s.careRepo.PendingForPlantKind(plantID, kind)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(pending) > 0 {
		if _, err := s.CompleteCareAction(pending[0].ID, userID); err != nil {
			return nil, err
		}
		return s.plantRepo.FindByID(plantID)
	}

	now := s.now()
	s.stampPlant(plant, kind, now)
	if err := s.plantRepo.Update(plant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if freq := plant.FrequencyFor(kind); freq != nil {
		next := &models.CareAction{
			PlantID: plant.ID,
			UserID:  plant.UserID,
			Kind:    kind,
			DueDate: now.AddDate(0, 0, *freq),
		}
		if err := s.careRepo.Create(next); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return plant, nil
}

func (s *CareService) stampPlant(plant *models.Plant, kind models.CareActionKind, at time.Time) {
	switch kind {
	case models.CareActionWater:
		plant.LastWatered = &at
	case models.CareActionFertilize:
		plant.LastFertilized = &at
	}
}

func (s *CareService) ListForUser(userID string) ([]models.CareAction, error) {
	actions, err := s.careRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return actions, nil
}

func (s *CareService) ListPending(userID string) ([]models.CareAction, error) {
	actions, err := s.careRepo.PendingForUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return actions, nil
}
