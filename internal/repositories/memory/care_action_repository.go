package memory

import (
	"sort"
	"sync"
	"time"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"

	"github.com/google/uuid"
)

type CareActionRepository struct {
	mu      sync.RWMutex
	actions map[string]models.CareAction
}

func NewCareActionRepository() *CareActionRepository {
	return &CareActionRepository{actions: make(map[string]models.CareAction)}
}

func (r *CareActionRepository) Create(action *models.CareAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	now := time.Now()
	if action.CreatedAt.IsZero() {
		action.CreatedAt = now
	}
	action.UpdatedAt = now

	r.actions[action.ID] = *action
	return nil
}

func (r *CareActionRepository) FindByID(id string) (*models.CareAction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.actions[id]
	if !ok {
		return nil, repositories.ErrCareActionNotFound
	}
	return &a, nil
}

func (r *CareActionRepository) Update(action *models.CareAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.actions[action.ID]; !ok {
		return repositories.ErrCareActionNotFound
	}
	action.UpdatedAt = time.Now()
	r.actions[action.ID] = *action
	return nil
}

func (r *CareActionRepository) FindByPlant(plantID string) ([]models.CareAction, error) {
	return r.filter(func(a models.CareAction) bool {
		return a.PlantID == plantID
	}), nil
}

func (r *CareActionRepository) FindByUser(userID string) ([]models.CareAction, error) {
	return r.filter(func(a models.CareAction) bool {
		return a.UserID == userID
	}), nil
}

func (r *CareActionRepository) PendingForUser(userID string) ([]models.CareAction, error) {
	return r.filter(func(a models.CareAction) bool {
		return a.UserID == userID && !a.IsCompleted
	}), nil
}

func (r *CareActionRepository) PendingForPlantKind(plantID string, kind models.CareActionKind) ([]models.CareAction, error) {
	return r.filter(func(a models.CareAction) bool {
		return a.PlantID == plantID && a.Kind == kind && !a.IsCompleted
	}), nil
}

// DeleteByPlant removes all actions for a plant. Called by the plant
// repository on delete, mirroring the relational cascade.
func (r *CareActionRepository) DeleteByPlant(plantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, a := range r.actions {
		if a.PlantID == plantID {
			delete(r.actions, id)
		}
	}
	return nil
}

func (r *CareActionRepository) filter(keep func(models.CareAction) bool) []models.CareAction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var actions []models.CareAction
	for _, a := range r.actions {
		if keep(a) {
			actions = append(actions, a)
		}
	}
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].DueDate.Before(actions[j].DueDate)
	})
	return actions
}
