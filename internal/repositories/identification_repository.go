package repositories

import (
	"plantpal_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdentificationRepository interface {
	Create(identification *models.Identification) error
	FindByUser(userID string, limit, offset int) ([]models.Identification, error)
}

type IdentificationRepositoryImpl struct {
	db *gorm.DB
}

func NewIdentificationRepository(db *gorm.DB) IdentificationRepository {
	return &IdentificationRepositoryImpl{db: db}
}

func (r *IdentificationRepositoryImpl) Create(identification *models.Identification) error {
	if identification.ID == "" {
		identification.ID = uuid.NewString()
	}
	return r.db.Create(identification).Error
}

func (r *IdentificationRepositoryImpl) FindByUser(userID string, limit, offset int) ([]models.Identification, error) {
	var identifications []models.Identification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&identifications).Error
	return identifications, err
}
