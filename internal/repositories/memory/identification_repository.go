package memory

import (
	"sync"
	"time"

	"plantpal_backend/internal/models"

	"github.com/google/uuid"
)

type IdentificationRepository struct {
	mu              sync.RWMutex
	identifications map[string]models.Identification
}

func NewIdentificationRepository() *IdentificationRepository {
	return &IdentificationRepository{identifications: make(map[string]models.Identification)}
}

func (r *IdentificationRepository) Create(identification *models.Identification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if identification.ID == "" {
		identification.ID = uuid.NewString()
	}
	now := time.Now()
	if identification.CreatedAt.IsZero() {
		identification.CreatedAt = now
	}
	identification.UpdatedAt = now

	r.identifications[identification.ID] = *identification
	return nil
}

func (r *IdentificationRepository) FindByUser(userID string, limit, offset int) ([]models.Identification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var identifications []models.Identification
	for _, id := range r.identifications {
		if id.UserID == userID {
			identifications = append(identifications, id)
		}
	}
	sortByCreatedDesc(identifications, func(i models.Identification) time.Time { return i.CreatedAt })
	return paginate(identifications, limit, offset), nil
}
