package repositories

import (
	"errors"

	"plantpal_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShareNotFound = errors.New("community share not found")

type ShareRepository interface {
	Create(share *models.CommunityShare) error
	FindByID(id string) (*models.CommunityShare, error)
	ListPublic(limit, offset int) ([]models.CommunityShare, error)
	DeleteByPlant(plantID string) error

	// IncrementLikes bumps the monotonic likes counter and returns the new value.
	IncrementLikes(id string) (int, error)
}

type ShareRepositoryImpl struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) ShareRepository {
	return &ShareRepositoryImpl{db: db}
}

func (r *ShareRepositoryImpl) Create(share *models.CommunityShare) error {
	if share.ID == "" {
		share.ID = uuid.NewString()
	}
	return r.db.Create(share).Error
}

func (r *ShareRepositoryImpl) FindByID(id string) (*models.CommunityShare, error) {
	var share models.CommunityShare
	err := r.db.First(&share, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &share, nil
}

func (r *ShareRepositoryImpl) ListPublic(limit, offset int) ([]models.CommunityShare, error) {
	var shares []models.CommunityShare
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&shares).Error
	return shares, err
}

func (r *ShareRepositoryImpl) DeleteByPlant(plantID string) error {
	return r.db.Where("plant_id = ?", plantID).Delete(&models.CommunityShare{}).Error
}

func (r *ShareRepositoryImpl) IncrementLikes(id string) (int, error) {
	// Row-level update keeps the counter monotonic under concurrent likes.
	result := r.db.Model(&models.CommunityShare{}).Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrShareNotFound
	}

	share, err := r.FindByID(id)
	if err != nil {
		return 0, err
	}
	return share.Likes, nil
}
