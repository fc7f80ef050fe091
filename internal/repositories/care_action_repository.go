package repositories

import (
	"errors"
	"time"

	"plantpal_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCareActionNotFound = errors.New("care action not found")

type CareActionRepository interface {
	Create(action *models.CareAction) error
	FindByID(id string) (*models.CareAction, error)
	Update(action *models.CareAction) error

	FindByPlant(plantID string) ([]models.CareAction, error)
	FindByUser(userID string) ([]models.CareAction, error)

	// PendingForUser returns incomplete actions ordered by due date.
	PendingForUser(userID string) ([]models.CareAction, error)

	// PendingForPlantKind returns incomplete actions of one kind for a plant.
	// Normal operation keeps at most one.
	PendingForPlantKind(plantID string, kind models.CareActionKind) ([]models.CareAction, error)
}

type CareActionRepositoryImpl struct {
	db *gorm.DB
}

func NewCareActionRepository(db *gorm.DB) CareActionRepository {
	return &CareActionRepositoryImpl{db: db}
}

func (r *CareActionRepositoryImpl) Create(action *models.CareAction) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	return r.db.Create(action).Error
}

func (r *CareActionRepositoryImpl) FindByID(id string) (*models.CareAction, error) {
	var action models.CareAction
	err := r.db.First(&action, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCareActionNotFound
		}
		return nil, err
	}
	return &action, nil
}

func (r *CareActionRepositoryImpl) Update(action *models.CareAction) error {
	action.UpdatedAt = time.Now()
	result := r.db.Save(action)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCareActionNotFound
	}
	return nil
}

func (r *CareActionRepositoryImpl) FindByPlant(plantID string) ([]models.CareAction, error) {
	var actions []models.CareAction
	err := r.db.Where("plant_id = ?", plantID).Order("due_date ASC").Find(&actions).Error
	return actions, err
}

func (r *CareActionRepositoryImpl) FindByUser(userID string) ([]models.CareAction, error) {
	var actions []models.CareAction
	err := r.db.Where("user_id = ?", userID).Order("due_date ASC").Find(&actions).Error
	return actions, err
}

func (r *CareActionRepositoryImpl) PendingForUser(userID string) ([]models.CareAction, error) {
	var actions []models.CareAction
	err := r.db.Where("user_id = ? AND is_completed = ?", userID, false).
		Order("due_date ASC").Find(&actions).Error
	return actions, err
}

func (r *CareActionRepositoryImpl) PendingForPlantKind(plantID string, kind models.CareActionKind) ([]models.CareAction, error) {
	var actions []models.CareAction
	err := r.db.Where("plant_id = ? AND kind = ? AND is_completed = ?", plantID, kind, false).
		Order("due_date ASC").Find(&actions).Error
	return actions, err
}
