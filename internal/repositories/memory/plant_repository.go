package memory

import (
	"sync"
	"time"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"

	"github.com/google/uuid"
)

type PlantRepository struct {
	mu     sync.RWMutex
	plants map[string]models.Plant

	// careRepo mirrors the relational ON DELETE cascade to care actions.
	careRepo *CareActionRepository
}

func NewPlantRepository(careRepo *CareActionRepository) *PlantRepository {
	return &PlantRepository{
		plants:   make(map[string]models.Plant),
		careRepo: careRepo,
	}
}

func (r *PlantRepository) Create(plant *models.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if plant.ID == "" {
		plant.ID = uuid.NewString()
	}
	now := time.Now()
	if plant.CreatedAt.IsZero() {
		plant.CreatedAt = now
	}
	plant.UpdatedAt = now

	r.plants[plant.ID] = *plant
	return nil
}

func (r *PlantRepository) FindByID(id string) (*models.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plants[id]
	if !ok {
		return nil, repositories.ErrPlantNotFound
	}
	return &p, nil
}

func (r *PlantRepository) FindByUser(userID string) ([]models.Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var plants []models.Plant
	for _, p := range r.plants {
		if p.UserID == userID {
			plants = append(plants, p)
		}
	}
	sortByCreatedDesc(plants, func(p models.Plant) time.Time { return p.CreatedAt })
	return plants, nil
}

func (r *PlantRepository) Update(plant *models.Plant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plants[plant.ID]; !ok {
		return repositories.ErrPlantNotFound
	}
	plant.UpdatedAt = time.Now()
	r.plants[plant.ID] = *plant
	return nil
}

func (r *PlantRepository) Delete(plantID string) error {
	r.mu.Lock()
	if _, ok := r.plants[plantID]; !ok {
		r.mu.Unlock()
		return repositories.ErrPlantNotFound
	}
	delete(r.plants, plantID)
	r.mu.Unlock()

	if r.careRepo != nil {
		return r.careRepo.DeleteByPlant(plantID)
	}
	return nil
}
