package services

import (
	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"
	"plantpal_backend/internal/services/dto"
	"plantpal_backend/pkg/apperrors"
)

type ShareService struct {
	shareRepo repositories.ShareRepository
	plantRepo repositories.PlantRepository
}

func NewShareService(shareRepo repositories.ShareRepository, plantRepo repositories.PlantRepository) *ShareService {
	return &ShareService{
		shareRepo: shareRepo,
		plantRepo: plantRepo,
	}
}

// CreateShare publishes one of the user's plants to the community feed.
func (s *ShareService) CreateShare(userID string, req *dto.CreateShareRequest) (*models.CommunityShare, error) {
	plant, err := s.plantRepo.FindByID(req.PlantID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if plant.UserID != userID {
		return nil, apperrors.ErrNotPlantOwner
	}

	share := &models.CommunityShare{
		UserID:  userID,
		PlantID: plant.ID,
		Caption: req.Caption,
	}
	if err := s.shareRepo.Create(share); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return share, nil
}

func (s *ShareService) ListShares(limit, offset int) ([]models.CommunityShare, error) {
	shares, err := s.shareRepo.ListPublic(limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return shares, nil
}

// Like bumps the like counter and returns the new total.
func (s *ShareService) Like(shareID string) (int, error) {
	likes, err := s.shareRepo.IncrementLikes(shareID)
	if err != nil {
		if err == repositories.ErrShareNotFound {
			return 0, apperrors.ErrNotFound(err)
		}
		return 0, apperrors.InternalError(err)
	}
	return likes, nil
}
