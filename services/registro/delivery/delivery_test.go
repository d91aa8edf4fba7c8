package delivery

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"registro/domain"
	"registro/services/registro/repository"
	"registro/services/registro/usecase"
)

// DeliverySuite runs full request/response cycles against an app wired to the
// transient backend, the same way main wires the real one.
type DeliverySuite struct {
	suite.Suite
	app *fiber.App
}

func (s *DeliverySuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	s.app = fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
	})

	personaRepo := repository.NewPersonaMemoryRepository()
	autoRepo := repository.NewAutoMemoryRepository()

	NewPersonaDelivery(s.app, usecase.NewPersonaUseCase(personaRepo, autoRepo, time.Second, log), log)
	NewAutoDelivery(s.app, usecase.NewAutoUseCase(autoRepo, personaRepo, time.Second, log), log)
}

func TestDeliverySuite(t *testing.T) {
	suite.Run(t, new(DeliverySuite))
}

func (s *DeliverySuite) do(method, target string, payload any) *http.Response {
	var body io.Reader
	if payload != nil {
		raw, err := sonic.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := s.app.Test(req)
	s.Require().NoError(err)
	return resp
}

func (s *DeliverySuite) decode(resp *http.Response, out any) {
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(sonic.Unmarshal(raw, out))
}

func (s *DeliverySuite) createPersona(dni string) domain.Persona {
	resp := s.do(http.MethodPost, "/personas", fiber.Map{
		"nombre":            "Juan",
		"apellido":          "Pérez",
		"dni":               dni,
		"fechaDeNacimiento": "1980-04-21",
		"genero":            "masculino",
		"donanteOrganos":    true,
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created domain.Persona
	s.decode(resp, &created)
	return created
}

func (s *DeliverySuite) createAuto(ownerID, patente string) domain.Auto {
	resp := s.do(http.MethodPost, "/autos", fiber.Map{
		"patente":   patente,
		"marca":     "Fiat",
		"modelo":    "Cronos",
		"anio":      2021,
		"color":     "gris",
		"nroChasis": "8AP359000",
		"nroMotor":  "55271234",
		"personaID": ownerID,
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created domain.Auto
	s.decode(resp, &created)
	return created
}

func (s *DeliverySuite) TestPersonaLifecycle() {
	resp := s.do(http.MethodGet, "/personas", nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	created := s.createPersona("12345678")
	s.NotEmpty(created.ID)
	s.Equal("Juan", created.Nombre)
	s.Equal("1980-04-21", created.FechaDeNacimiento.String())
	s.NotNil(created.Autos)
	s.Empty(created.Autos)

	resp = s.do(http.MethodGet, "/personas", nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var resumenes []domain.PersonaResumen
	s.decode(resp, &resumenes)
	s.Require().Len(resumenes, 1)
	s.Equal(created.ID, resumenes[0].ID)
	s.Equal("12345678", resumenes[0].DNI)

	resp = s.do(http.MethodGet, "/personas/"+created.ID, nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var found domain.Persona
	s.decode(resp, &found)
	s.Equal(created.ID, found.ID)
	s.True(found.DonanteOrganos)

	resp = s.do(http.MethodPut, "/personas/"+created.ID, fiber.Map{"apellido": "García"})
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated domain.Persona
	s.decode(resp, &updated)
	s.Equal("García", updated.Apellido)
	s.Equal("Juan", updated.Nombre)
	s.Equal("12345678", updated.DNI)

	resp = s.do(http.MethodDelete, "/personas/"+created.ID, nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/personas/"+created.ID, nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.do(http.MethodGet, "/personas/"+created.ID, nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *DeliverySuite) TestPersonaCreateWithoutFecha() {
	resp := s.do(http.MethodPost, "/personas", fiber.Map{
		"nombre":         "Juan",
		"apellido":       "Pérez",
		"dni":            "12345678",
		"genero":         "masculino",
		"donanteOrganos": true,
	})
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created domain.Persona
	s.decode(resp, &created)
	s.NotEmpty(created.ID)
	s.Equal("12345678", created.DNI)
	s.True(created.FechaDeNacimiento.IsZero())
	s.NotNil(created.Autos)
	s.Empty(created.Autos)
}

func (s *DeliverySuite) TestPersonaCreateRejectsInvalidData() {
	resp := s.do(http.MethodPost, "/personas", fiber.Map{
		"apellido": "Pérez",
		"dni":      "012345",
	})
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Errors  map[string]string `json:"errors"`
	}
	s.decode(resp, &body)
	s.False(body.Success)
	s.Contains(body.Errors, "nombre")
	s.Contains(body.Errors, "dni")

	resp = s.do(http.MethodGet, "/personas", nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
}

func (s *DeliverySuite) TestPersonaCreateRejectsDuplicateDNI() {
	s.createPersona("12345678")

	resp := s.do(http.MethodPost, "/personas", fiber.Map{
		"nombre":            "Ana",
		"apellido":          "Gómez",
		"dni":               "12345678",
		"fechaDeNacimiento": "1990-01-15",
		"genero":            "femenino",
	})
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	s.decode(resp, &body)
	s.Contains(body.Errors, "dni")
}

func (s *DeliverySuite) TestPersonaReadHydratesAutos() {
	owner := s.createPersona("12345678")
	auto := s.createAuto(owner.ID, "AB 123 CD")

	resp := s.do(http.MethodGet, "/personas/"+owner.ID, nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var found domain.Persona
	s.decode(resp, &found)
	s.Require().Len(found.Autos, 1)
	s.Equal(auto.ID, found.Autos[0].ID)
}

func (s *DeliverySuite) TestPersonaUpdateValidatesMergedResult() {
	created := s.createPersona("12345678")

	// The payload merges over the stored record, so clearing nombre or
	// breaking the DNI must be caught before the patch reaches the service.
	resp := s.do(http.MethodPut, "/personas/"+created.ID, fiber.Map{"nombre": ""})
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	s.decode(resp, &body)
	s.Contains(body.Errors, "nombre")

	resp = s.do(http.MethodPut, "/personas/"+created.ID, fiber.Map{"dni": "123"})
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.decode(resp, &body)
	s.Contains(body.Errors, "dni")

	resp = s.do(http.MethodGet, "/personas/"+created.ID, nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var found domain.Persona
	s.decode(resp, &found)
	s.Equal("Juan", found.Nombre)
	s.Equal("12345678", found.DNI)
}

func (s *DeliverySuite) TestPersonaUpdateMissing() {
	resp := s.do(http.MethodPut, "/personas/999999", fiber.Map{"apellido": "García"})
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *DeliverySuite) TestAutoLifecycle() {
	owner := s.createPersona("12345678")

	resp := s.do(http.MethodGet, "/autos", nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	created := s.createAuto(owner.ID, "AB 123 CD")
	s.NotEmpty(created.ID)
	s.Equal(owner.ID, created.PersonaID)

	resp = s.do(http.MethodGet, "/autos", nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var autos []domain.Auto
	s.decode(resp, &autos)
	s.Len(autos, 1)

	resp = s.do(http.MethodPut, "/autos/"+created.ID, fiber.Map{"color": "rojo"})
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated domain.Auto
	s.decode(resp, &updated)
	s.Equal("rojo", updated.Color)
	s.Equal("AB 123 CD", updated.Patente)

	resp = s.do(http.MethodDelete, "/autos/"+created.ID, nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/autos/"+created.ID, nil)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *DeliverySuite) TestAutoCreateRequiresExistingOwner() {
	resp := s.do(http.MethodPost, "/autos", fiber.Map{
		"patente":   "AB 123 CD",
		"marca":     "Fiat",
		"modelo":    "Cronos",
		"anio":      2021,
		"personaID": "999999",
	})
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	s.decode(resp, &body)
	s.False(body.Success)
	s.Equal("Referenced owner does not exist", body.Message)
}

func (s *DeliverySuite) TestAutoUpdateCannotChangeOwner() {
	owner := s.createPersona("12345678")
	other := s.createPersona("87654321")
	created := s.createAuto(owner.ID, "AB 123 CD")

	resp := s.do(http.MethodPut, "/autos/"+created.ID, fiber.Map{"personaID": other.ID})
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	s.decode(resp, &body)
	s.Contains(body.Errors, "personaID")

	resp = s.do(http.MethodGet, "/autos/"+created.ID, nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var found domain.Auto
	s.decode(resp, &found)
	s.Equal(owner.ID, found.PersonaID)
}

func (s *DeliverySuite) TestAutosFilteredByOwner() {
	first := s.createPersona("12345678")
	second := s.createPersona("87654321")
	s.createAuto(first.ID, "AB 123 CD")
	s.createAuto(first.ID, "CD 456 EF")
	s.createAuto(second.ID, "EF 789 GH")

	resp := s.do(http.MethodGet, "/autos?ownerId="+first.ID, nil)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var autos []domain.Auto
	s.decode(resp, &autos)
	s.Len(autos, 2)

	resp = s.do(http.MethodGet, "/autos?ownerId=nobody", nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
}

func (s *DeliverySuite) TestPersonaDeleteCascadesToAutos() {
	owner := s.createPersona("12345678")
	s.createAuto(owner.ID, "AB 123 CD")
	s.createAuto(owner.ID, "CD 456 EF")

	resp := s.do(http.MethodDelete, "/personas/"+owner.ID, nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, "/autos", nil)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)
}
