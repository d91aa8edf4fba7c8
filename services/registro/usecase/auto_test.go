package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registro/domain"
	"registro/services/registro/repository"
)

type AutoUseCaseSuite struct {
	suite.Suite
	autoRepo    domain.AutoRepo
	personaRepo domain.PersonaRepo
	uc          domain.AutoUseCase
	ctx         context.Context
	ownerID     string
}

func (s *AutoUseCaseSuite) SetupTest() {
	s.autoRepo = repository.NewAutoMemoryRepository()
	s.personaRepo = repository.NewPersonaMemoryRepository()
	s.uc = NewAutoUseCase(s.autoRepo, s.personaRepo, time.Second, testLogger())
	s.ctx = context.Background()

	fecha, err := domain.ParsePlainDate("1980-04-21")
	s.Require().NoError(err)
	owner, err := s.personaRepo.Create(s.ctx, &domain.Persona{
		DNI:               "12345678",
		Nombre:            "Juan",
		Apellido:          "Pérez",
		FechaDeNacimiento: fecha,
		Genero:            domain.GeneroMasculino,
	})
	s.Require().NoError(err)
	s.ownerID = owner.ID
}

func TestAutoUseCaseSuite(t *testing.T) {
	suite.Run(t, new(AutoUseCaseSuite))
}

func (s *AutoUseCaseSuite) newAuto(patente string) *domain.Auto {
	return &domain.Auto{
		Patente:   patente,
		Marca:     "Fiat",
		Modelo:    "Cronos",
		Anio:      2021,
		Color:     "gris",
		NroChasis: "8AP359000",
		NroMotor:  "55271234",
		PersonaID: s.ownerID,
	}
}

func (s *AutoUseCaseSuite) TestCreate() {
	created, err := s.uc.Create(s.ctx, s.newAuto("AB 123 CD"))
	s.Require().NoError(err)

	s.NotEmpty(created.ID)
	s.Equal("AB 123 CD", created.Patente)
	s.Equal(s.ownerID, created.PersonaID)
}

func (s *AutoUseCaseSuite) TestCreateRequiresExistingOwner() {
	auto := s.newAuto("AB 123 CD")
	auto.PersonaID = "999999"

	_, err := s.uc.Create(s.ctx, auto)
	s.Require().ErrorIs(err, domain.ErrNonExistingRelationship)

	all, err := s.autoRepo.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *AutoUseCaseSuite) TestCreateRequiredFields() {
	auto := s.newAuto("")
	auto.Marca = ""
	auto.Modelo = ""

	_, err := s.uc.Create(s.ctx, auto)

	var invalid *domain.InvalidData
	s.Require().ErrorAs(err, &invalid)
	s.Contains(invalid.Fields, "patente")
	s.Contains(invalid.Fields, "marca")
	s.Contains(invalid.Fields, "modelo")
}

func (s *AutoUseCaseSuite) TestCreateRejectsMalformedPatente() {
	_, err := s.uc.Create(s.ctx, s.newAuto("AB123CD"))

	var invalid *domain.InvalidData
	s.Require().ErrorAs(err, &invalid)
	s.Contains(invalid.Fields, "patente")
}

func (s *AutoUseCaseSuite) TestUpdatePartialMerge() {
	created, err := s.uc.Create(s.ctx, s.newAuto("AB 123 CD"))
	s.Require().NoError(err)

	color := "rojo"
	updated, err := s.uc.Update(s.ctx, created.ID, &domain.AutoUpdate{Color: &color})
	s.Require().NoError(err)

	s.Equal("rojo", updated.Color)
	s.Equal("AB 123 CD", updated.Patente)
	s.Equal("Fiat", updated.Marca)
	s.Equal(created.PersonaID, updated.PersonaID)
}

func (s *AutoUseCaseSuite) TestUpdateRejectsOwnerChange() {
	created, err := s.uc.Create(s.ctx, s.newAuto("AB 123 CD"))
	s.Require().NoError(err)

	other := "42"
	_, err = s.uc.Update(s.ctx, created.ID, &domain.AutoUpdate{PersonaID: &other})

	var invalid *domain.InvalidData
	s.Require().ErrorAs(err, &invalid)
	s.Contains(invalid.Fields, "personaID")

	found, err := s.uc.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(s.ownerID, found.PersonaID)
}

func (s *AutoUseCaseSuite) TestUpdateMiss() {
	color := "rojo"
	_, err := s.uc.Update(s.ctx, "missing", &domain.AutoUpdate{Color: &color})
	s.Require().ErrorIs(err, domain.ErrNotFound)
}

func (s *AutoUseCaseSuite) TestGetByOwnerID() {
	_, err := s.uc.Create(s.ctx, s.newAuto("AB 123 CD"))
	s.Require().NoError(err)
	_, err = s.uc.Create(s.ctx, s.newAuto("CD 456 EF"))
	s.Require().NoError(err)

	owned, err := s.uc.GetByOwnerID(s.ctx, s.ownerID)
	s.Require().NoError(err)
	s.Len(owned, 2)

	owned, err = s.uc.GetByOwnerID(s.ctx, "nobody")
	s.Require().NoError(err)
	s.Empty(owned)
}

func (s *AutoUseCaseSuite) TestGetByOwnerIDRequiresCapability() {
	limited := NewAutoUseCase(noOwnerQueriesRepo{s.autoRepo}, s.personaRepo, time.Second, testLogger())

	_, err := limited.GetByOwnerID(s.ctx, s.ownerID)
	s.Require().Error(err)
}

func (s *AutoUseCaseSuite) TestDelete() {
	created, err := s.uc.Create(s.ctx, s.newAuto("AB 123 CD"))
	s.Require().NoError(err)

	removed, err := s.uc.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(removed)

	removed, err = s.uc.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.False(removed)

	_, err = s.uc.GetByID(s.ctx, created.ID)
	s.Require().ErrorIs(err, domain.ErrNotFound)
}
