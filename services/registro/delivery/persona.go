package delivery

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"registro/domain"
	"registro/middleware"
)

type personaHandler struct {
	uc    domain.PersonaUseCase
	bread *middleware.BREAD[domain.Persona, domain.PersonaResumen, domain.Persona]
	log   *logrus.Logger
}

// NewPersonaDelivery registers the /personas routes. Reads and writes flow
// through the BREAD pipeline; create and update respond from their handlers
// so they can use 201 and patch semantics. PUT validates the merged result of
// applying the payload before the patch reaches the service.
func NewPersonaDelivery(app *fiber.App, uc domain.PersonaUseCase, log *logrus.Logger) {
	bread := &middleware.BREAD[domain.Persona, domain.PersonaResumen, domain.Persona]{
		Reader:    uc,
		ToListing: domain.ResumenDe,
		ToFull:    func(p domain.Persona) domain.Persona { return p },
		Validate:  domain.ValidatePersona,
		EntityID:  func(p *domain.Persona) *string { return &p.ID },
		Log:       log,
	}

	handler := &personaHandler{
		uc:    uc,
		bread: bread,
		log:   log,
	}

	route := app.Group("/personas")

	route.Get("/", handler.browse)
	route.Get("/:id", bread.FetchEntityByParamID, bread.SendFullEntityResponse)
	route.Post("/", bread.FetchEntityFromBody, bread.ValidateEntity, handler.create)
	route.Put("/:id", bread.FetchEntityByParamID, bread.MergeEntityWithBody, bread.ValidateEntity, handler.update)
	route.Delete("/:id", handler.delete)
}

// browse serves the summary projection directly: listing views never pay for
// auto hydration.
func (ph *personaHandler) browse(c *fiber.Ctx) error {
	resumenes, err := ph.uc.GetResumenes(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	if len(resumenes) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(fiber.StatusOK).JSON(resumenes)
}

func (ph *personaHandler) create(c *fiber.Ctx) error {
	persona, ok := ph.bread.Entity(c)
	if !ok {
		return fiber.ErrInternalServerError
	}

	created, err := ph.uc.Create(c.Context(), persona)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (ph *personaHandler) update(c *fiber.Ctx) error {
	var patch domain.PersonaUpdate
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	updated, err := ph.uc.Update(c.Context(), c.Params("id"), &patch)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (ph *personaHandler) delete(c *fiber.Ctx) error {
	removed, err := ph.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Entity not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
