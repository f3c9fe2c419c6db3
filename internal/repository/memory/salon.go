package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/saloonbook/saloon-server/internal/model"
)

var _ model.SalonStore = (*SalonRepository)(nil)

type SalonRepository struct {
	mu     sync.RWMutex
	salons map[uuid.UUID]model.Salon
	order  []uuid.UUID
}

func NewSalonRepository() *SalonRepository {
	return &SalonRepository{
		salons: make(map[uuid.UUID]model.Salon),
	}
}

func (r *SalonRepository) Create(_ context.Context, salon model.Salon) (model.Salon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.salons[salon.ID]; ok {
		return model.Salon{}, model.ErrAlreadyExists
	}
	salon.Version = 1
	salon = clone(salon)
	r.salons[salon.ID] = salon
	r.order = append(r.order, salon.ID)
	return clone(salon), nil
}

func (r *SalonRepository) GetByID(_ context.Context, id uuid.UUID) (model.Salon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.salons[id]
	if !ok {
		return model.Salon{}, model.ErrNotFound
	}
	return clone(s), nil
}

// List returns salons in creation order.
func (r *SalonRepository) List(_ context.Context) ([]model.Salon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Salon, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.salons[id]))
	}
	return out, nil
}

func (r *SalonRepository) Replace(_ context.Context, salon model.Salon, expectedVersion *int64) (model.Salon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.salons[salon.ID]
	if !ok || existing.OwnerID != salon.OwnerID {
		return model.Salon{}, model.ErrNotFound
	}
	if expectedVersion != nil && *expectedVersion != existing.Version {
		return model.Salon{}, model.ErrVersionMismatch
	}

	salon.Version = existing.Version + 1
	salon.CreatedAt = existing.CreatedAt
	salon = clone(salon)
	r.salons[salon.ID] = salon
	return clone(salon), nil
}

func (r *SalonRepository) Delete(_ context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.salons[id]
	if !ok || existing.OwnerID != ownerID {
		return model.ErrNotFound
	}
	delete(r.salons, id)
	r.order = slices.DeleteFunc(r.order, func(v uuid.UUID) bool { return v == id })
	return nil
}

func clone(s model.Salon) model.Salon {
	s.Services = append([]string{}, s.Services...)
	s.Pictures = append([]string{}, s.Pictures...)
	return s
}
