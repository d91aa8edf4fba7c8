package repository

import (
	"context"

	"registro/domain"
)

type personaMemoryRepository struct {
	*memoryCollection[domain.Persona, domain.PersonaUpdate]
}

// NewPersonaMemoryRepository builds the transient Persona backend.
func NewPersonaMemoryRepository() domain.PersonaRepo {
	return &personaMemoryRepository{
		memoryCollection: newMemoryCollection(
			func(p *domain.Persona) *string { return &p.ID },
			func(u *domain.PersonaUpdate, p *domain.Persona) { u.ApplyTo(p) },
		),
	}
}

func (r *personaMemoryRepository) IsDNIUnique(_ context.Context, dni, ignoreID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, persona := range r.items {
		if persona.DNI == dni && id != ignoreID {
			return false, nil
		}
	}
	return true, nil
}
