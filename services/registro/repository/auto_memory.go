package repository

import (
	"context"

	"registro/domain"
)

type autoMemoryRepository struct {
	*memoryCollection[domain.Auto, domain.AutoUpdate]
}

// NewAutoMemoryRepository builds the transient Auto backend.
func NewAutoMemoryRepository() domain.AutoRepo {
	return &autoMemoryRepository{
		memoryCollection: newMemoryCollection(
			func(a *domain.Auto) *string { return &a.ID },
			func(u *domain.AutoUpdate, a *domain.Auto) { u.ApplyTo(a) },
		),
	}
}

func (r *autoMemoryRepository) GetByOwnerID(_ context.Context, ownerID string) ([]domain.Auto, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]domain.Auto, 0)
	for _, auto := range r.items {
		if auto.PersonaID == ownerID {
			owned = append(owned, auto)
		}
	}
	return owned, nil
}
