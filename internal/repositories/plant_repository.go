package repositories

import (
	"errors"
	"time"

	"plantpal_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPlantNotFound = errors.New("plant not found")

type PlantRepository interface {
	Create(plant *models.Plant) error
	FindByID(id string) (*models.Plant, error)
	FindByUser(userID string) ([]models.Plant, error)
	Update(plant *models.Plant) error

	// Delete removes the plant and all of its care actions.
	Delete(plantID string) error
}

type PlantRepositoryImpl struct {
	db *gorm.DB
}

func NewPlantRepository(db *gorm.DB) PlantRepository {
	return &PlantRepositoryImpl{db: db}
}

func (r *PlantRepositoryImpl) Create(plant *models.Plant) error {
	if plant.ID == "" {
		plant.ID = uuid.NewString()
	}
	return r.db.Create(plant).Error
}

func (r *PlantRepositoryImpl) FindByID(id string) (*models.Plant, error) {
	var plant models.Plant
	err := r.db.First(&plant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlantNotFound
		}
		return nil, err
	}
	return &plant, nil
}

func (r *PlantRepositoryImpl) FindByUser(userID string) ([]models.Plant, error) {
	var plants []models.Plant
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&plants).Error
	return plants, err
}

func (r *PlantRepositoryImpl) Update(plant *models.Plant) error {
	plant.UpdatedAt = time.Now()
	result := r.db.Save(plant)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlantNotFound
	}
	return nil
}

func (r *PlantRepositoryImpl) Delete(plantID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plant_id = ?", plantID).Delete(&models.CareAction{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", plantID).Delete(&models.Plant{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPlantNotFound
		}
		return nil
	})
}
