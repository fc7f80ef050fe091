package memory

import (
	"sync"
	"time"

	"plantpal_backend/internal/models"
	"plantpal_backend/internal/repositories"

	"github.com/google/uuid"
)

type ShareRepository struct {
	mu     sync.RWMutex
	shares map[string]models.CommunityShare
}

func NewShareRepository() *ShareRepository {
	return &ShareRepository{shares: make(map[string]models.CommunityShare)}
}

func (r *ShareRepository) Create(share *models.CommunityShare) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if share.ID == "" {
		share.ID = uuid.NewString()
	}
	now := time.Now()
	if share.CreatedAt.IsZero() {
		share.CreatedAt = now
	}
	share.UpdatedAt = now

	r.shares[share.ID] = *share
	return nil
}

func (r *ShareRepository) FindByID(id string) (*models.CommunityShare, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shares[id]
	if !ok {
		return nil, repositories.ErrShareNotFound
	}
	return &s, nil
}

func (r *ShareRepository) ListPublic(limit, offset int) ([]models.CommunityShare, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shares := make([]models.CommunityShare, 0, len(r.shares))
	for _, s := range r.shares {
		shares = append(shares, s)
	}
	sortByCreatedDesc(shares, func(s models.CommunityShare) time.Time { return s.CreatedAt })
	return paginate(shares, limit, offset), nil
}

func (r *ShareRepository) DeleteByPlant(plantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.shares {
		if s.PlantID == plantID {
			delete(r.shares, id)
		}
	}
	return nil
}

func (r *ShareRepository) IncrementLikes(id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shares[id]
	if !ok {
		return 0, repositories.ErrShareNotFound
	}
	s.Likes++
	s.UpdatedAt = time.Now()
	r.shares[id] = s
	return s.Likes, nil
}
