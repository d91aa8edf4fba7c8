package delivery

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"registro/domain"
	"registro/middleware"
)

type autoHandler struct {
	uc    domain.AutoUseCase
	bread *middleware.BREAD[domain.Auto, domain.Auto, domain.Auto]
	log   *logrus.Logger
}

// NewAutoDelivery registers the /autos routes. Autos have no reduced listing
// shape, so both projectors are the identity.
func NewAutoDelivery(app *fiber.App, uc domain.AutoUseCase, log *logrus.Logger) {
	identity := func(a domain.Auto) domain.Auto { return a }

	bread := &middleware.BREAD[domain.Auto, domain.Auto, domain.Auto]{
		Reader:    uc,
		ToListing: identity,
		ToFull:    identity,
		Validate:  domain.ValidateAuto,
		EntityID:  func(a *domain.Auto) *string { return &a.ID },
		Log:       log,
	}

	handler := &autoHandler{
		uc:    uc,
		bread: bread,
		log:   log,
	}

	route := app.Group("/autos")

	route.Get("/", handler.browse, bread.SendListingResponse)
	route.Get("/:id", bread.FetchEntityByParamID, bread.SendFullEntityResponse)
	route.Post("/", bread.FetchEntityFromBody, bread.ValidateEntity, handler.create)
	route.Put("/:id", bread.FetchEntityByParamID, bread.MergeEntityWithBody, bread.ValidateEntity, handler.update)
	route.Delete("/:id", handler.delete)
}

// browse attaches either the whole collection or one owner's autos for the
// listing sender.
func (ah *autoHandler) browse(c *fiber.Ctx) error {
	var autos []domain.Auto
	var err error

	if ownerID := c.Query("ownerId"); ownerID != "" {
		autos, err = ah.uc.GetByOwnerID(c.Context(), ownerID)
	} else {
		autos, err = ah.uc.GetAll(c.Context())
	}
	if err != nil {
		return respondError(c, err)
	}

	ah.bread.SetList(c, autos)
	return c.Next()
}

func (ah *autoHandler) create(c *fiber.Ctx) error {
	auto, ok := ah.bread.Entity(c)
	if !ok {
		return fiber.ErrInternalServerError
	}

	created, err := ah.uc.Create(c.Context(), auto)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (ah *autoHandler) update(c *fiber.Ctx) error {
	var patch domain.AutoUpdate
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	updated, err := ah.uc.Update(c.Context(), c.Params("id"), &patch)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (ah *autoHandler) delete(c *fiber.Ctx) error {
	removed, err := ah.uc.Delete(c.Context(), c.Params("id"))
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
