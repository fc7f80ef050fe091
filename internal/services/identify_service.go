package services

import (
	"context"
	"encoding/json"

	"plantpal_backend/internal/entitlement"
	"plantpal_backend/internal/logger"
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/plantid"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

// IdentifyService gates plant recognition behind the metered quota.
// The quota is checked before any provider call and only decremented after a
// successful recognition, so provider failures never cost an identification.
type IdentifyService struct {
	recognizer plantid.Recognizer
	userRepo   repositories.UserRepository
	identRepo  repositories.IdentificationRepository
}

func NewIdentifyService(recognizer plantid.Recognizer, userRepo repositories.UserRepository, identRepo repositories.IdentificationRepository) *IdentifyService {
	return &IdentifyService{
		recognizer: recognizer,
		userRepo:   userRepo,
		identRepo:  identRepo,
	}
}

// Identify runs one recognition for the user and records the result.
func (s *IdentifyService) Identify(ctx context.Context, user *models.User, image []byte) (*dto.IdentifyResponse, error) {
	if !entitlement.CanIdentify(user) {
		return nil, apperrors.ErrIdentificationQuotaExhausted
	}

	suggestions, err := s.recognizer.Identify(ctx, image)
	if err != nil {
		logger.Error("Plant recognition failed", "user_id", user.ID, "error", err)
		return nil, apperrors.ErrRecognitionProviderError
	}

	if entitlement.ConsumeIdentification(user) {
		if err := s.userRepo.Update(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	record := &models.Identification{UserID: user.ID}
	if len(suggestions) > 0 {
		record.TopSuggestion = suggestions[0].PlantName
		record.Confidence = suggestions[0].Probability
	}
	if raw, err := json.Marshal(suggestions); err == nil {
		record.RawSuggestions = raw
	}
	if err := s.identRepo.Create(record); err != nil {
		// Recognition already succeeded, losing the history row is not
		// worth failing the request over.
		logger.Warn("Failed to store identification record", "user_id", user.ID, "error", err)
	}

	return &dto.IdentifyResponse{
		Suggestions:              suggestions,
		IdentificationsRemaining: user.IdentificationsRemaining,
	}, nil
}

// History returns the user's past identifications, newest first.
func (s *IdentifyService) History(userID string, limit, offset int) ([]models.Identification, error) {
	records, err := s.identRepo.FindByUser(userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return records, nil
}
