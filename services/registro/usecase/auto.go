package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"registro/domain"
)

type autoUC struct {
	autoRepo    domain.AutoRepo
	personaRepo domain.PersonaRepo
	TimeOut     time.Duration
	log         *logrus.Logger
}

func NewAutoUseCase(autoRepo domain.AutoRepo, personaRepo domain.PersonaRepo, timeOut time.Duration, log *logrus.Logger) domain.AutoUseCase {
	return &autoUC{
		autoRepo:    autoRepo,
		personaRepo: personaRepo,
		TimeOut:     timeOut,
		log:         log,
	}
}

func (au *autoUC) GetAll(ctx context.Context) ([]domain.Auto, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.autoRepo.GetAll(ctx)
}

func (au *autoUC) GetByOwnerID(ctx context.Context, ownerID string) ([]domain.Auto, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	ownerQueries, ok := au.autoRepo.(domain.OwnerQueries[domain.Auto])
	if !ok {
		return nil, fmt.Errorf("auto repository %T does not support owner queries", au.autoRepo)
	}
	return ownerQueries.GetByOwnerID(ctx, ownerID)
}

func (au *autoUC) GetByID(ctx context.Context, id string) (*domain.Auto, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.autoRepo.GetByID(ctx, id)
}

func (au *autoUC) Create(ctx context.Context, auto *domain.Auto) (*domain.Auto, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if fe := domain.ValidateAuto(auto); fe != nil {
		return nil, &domain.InvalidData{Fields: fe}
	}

	// The owner must exist before an Auto can reference it.
	if _, err := au.personaRepo.GetByID(ctx, auto.PersonaID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNonExistingRelationship
		}
		return nil, err
	}

	return au.autoRepo.Create(ctx, auto)
}

func (au *autoUC) Update(ctx context.Context, id string, patch *domain.AutoUpdate) (*domain.Auto, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if fe := patch.Validate(); fe != nil {
		return nil, &domain.InvalidData{Fields: fe}
	}

	return au.autoRepo.Update(ctx, id, patch)
}

func (au *autoUC) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	return au.autoRepo.Delete(ctx, id)
}
