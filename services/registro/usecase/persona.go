package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"registro/domain"
)

type personaUC struct {
	personaRepo domain.PersonaRepo
	autoRepo    domain.AutoRepo
	TimeOut     time.Duration
	log         *logrus.Logger
}

func NewPersonaUseCase(personaRepo domain.PersonaRepo, autoRepo domain.AutoRepo, timeOut time.Duration, log *logrus.Logger) domain.PersonaUseCase {
	return &personaUC{
		personaRepo: personaRepo,
		autoRepo:    autoRepo,
		TimeOut:     timeOut,
		log:         log,
	}
}

func (pu *personaUC) GetResumenes(ctx context.Context) ([]domain.PersonaResumen, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.TimeOut)
	defer cancel()

	personas, err := pu.personaRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	resumenes := make([]domain.PersonaResumen, 0, len(personas))
	for _, persona := range personas {
		resumenes = append(resumenes, domain.ResumenDe(persona))
	}
	return resumenes, nil
}

func (pu *personaUC) GetByID(ctx context.Context, id string) (*domain.Persona, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.TimeOut)
	defer cancel()

	persona, err := pu.personaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pu.hydrateAutos(ctx, persona)
	return persona, nil
}

// hydrateAutos recomputes the derived autos list. A fault in the Auto
// subsystem leaves the list empty and is logged; it never fails the Persona
// read.
func (pu *personaUC) hydrateAutos(ctx context.Context, persona *domain.Persona) {
	persona.Autos = make([]domain.Auto, 0)

	ownerQueries, ok := pu.autoRepo.(domain.OwnerQueries[domain.Auto])
	if !ok {
		pu.log.Warnf("auto repository %T does not support owner queries; persona %s served without autos", pu.autoRepo, persona.ID)
		return
	}

	autos, err := ownerQueries.GetByOwnerID(ctx, persona.ID)
	if err != nil {
		pu.log.Warnf("could not hydrate autos for persona %s: %v", persona.ID, err)
		return
	}
	persona.Autos = autos
}

func (pu *personaUC) Create(ctx context.Context, persona *domain.Persona) (*domain.Persona, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.TimeOut)
	defer cancel()

	if fe := domain.ValidatePersona(persona); fe != nil {
		return nil, &domain.InvalidData{Fields: fe}
	}

	unique, err := pu.personaRepo.IsDNIUnique(ctx, persona.DNI, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, &domain.InvalidData{Fields: domain.FieldErrors{
			"dni": "DNI is already registered",
		}}
	}

	created, err := pu.personaRepo.Create(ctx, persona)
	if err != nil {
		return nil, err
	}

	// A brand-new id cannot own anything yet.
	created.Autos = make([]domain.Auto, 0)
	return created, nil
}

func (pu *personaUC) Update(ctx context.Context, id string, patch *domain.PersonaUpdate) (*domain.Persona, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.TimeOut)
	defer cancel()

	if fe := patch.Validate(); fe != nil {
		return nil, &domain.InvalidData{Fields: fe}
	}

	if patch.DNI != nil {
		unique, err := pu.personaRepo.IsDNIUnique(ctx, *patch.DNI, id)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, &domain.InvalidData{Fields: domain.FieldErrors{
				"dni": "DNI is already registered",
			}}
		}
	}

	updated, err := pu.personaRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	pu.hydrateAutos(ctx, updated)
	return updated, nil
}

// Delete cascades autos-first: an orphaned Auto is recoverable information,
// so per-auto failures are logged and the Persona deletion proceeds anyway.
func (pu *personaUC) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, pu.TimeOut)
	defer cancel()

	if ownerQueries, ok := pu.autoRepo.(domain.OwnerQueries[domain.Auto]); ok {
		autos, err := ownerQueries.GetByOwnerID(ctx, id)
		if err != nil {
			pu.log.Warnf("could not list autos of persona %s for cascade delete: %v", id, err)
		}

		var wg sync.WaitGroup
		for _, auto := range autos {
			wg.Add(1)
			go func(auto domain.Auto) {
				defer wg.Done()
				removed, err := pu.autoRepo.Delete(ctx, auto.ID)
				if err != nil {
					pu.log.Warnf("cascade delete of auto %s (persona %s) failed: %v", auto.ID, id, err)
					return
				}
				if !removed {
					pu.log.Warnf("cascade delete of auto %s (persona %s) matched nothing", auto.ID, id)
				}
			}(auto)
		}
		wg.Wait()
	}

	return pu.personaRepo.Delete(ctx, id)
}
