package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"registro/domain"
)

// EntityReader is the slice of a service the fetch stage needs.
type EntityReader[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
}

// BREAD bundles the entity-specific moving parts of the
// browse/read/edit/add/delete request lifecycle so the same pipeline serves
// every resource: the backing service, the listing and full projectors, the
// validator and an accessor for the identifier field. Each stage is an
// independent fiber handler; routes compose the ones they need.
type BREAD[T any, L any, F any] struct {
	Reader    EntityReader[T]
	ToListing func(T) L
	ToFull    func(T) F
	Validate  func(*T) domain.FieldErrors
	EntityID  func(*T) *string
	Log       *logrus.Logger
}

// Inter-stage state lives under these keys; handlers only ever touch it
// through the typed accessors below.
const (
	localsEntityKey = "bread_entity"
	localsListKey   = "bread_list"
)

func (b *BREAD[T, L, F]) Entity(c *fiber.Ctx) (*T, bool) {
	entity, ok := c.Locals(localsEntityKey).(*T)
	return entity, ok
}

func (b *BREAD[T, L, F]) SetEntity(c *fiber.Ctx, entity *T) {
	c.Locals(localsEntityKey, entity)
}

func (b *BREAD[T, L, F]) List(c *fiber.Ctx) ([]T, bool) {
	list, ok := c.Locals(localsListKey).([]T)
	return list, ok
}

func (b *BREAD[T, L, F]) SetList(c *fiber.Ctx, list []T) {
	c.Locals(localsListKey, list)
}

// FetchEntityByParamID loads the entity named by the :id path parameter. A
// miss short-circuits the chain with a 404; unexpected errors are forwarded
// to the app error handler.
func (b *BREAD[T, L, F]) FetchEntityByParamID(c *fiber.Ctx) error {
	id := c.Params("id")

	entity, err := b.Reader.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Entity not found",
			})
		}
		return err
	}

	b.SetEntity(c, entity)
	return c.Next()
}

// FetchEntityFromBody stashes the decoded request body as the working
// entity. No validation happens here.
func (b *BREAD[T, L, F]) FetchEntityFromBody(c *fiber.Ctx) error {
	var entity T
	if err := c.BodyParser(&entity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	b.SetEntity(c, &entity)
	return c.Next()
}

// MergeEntityWithBody decodes the body over a copy of the previously fetched
// entity: only fields present in the payload overwrite, which is exactly the
// partial-merge contract. The original identifier always wins.
func (b *BREAD[T, L, F]) MergeEntityWithBody(c *fiber.Ctx) error {
	existing, ok := b.Entity(c)
	if !ok {
		return errors.New("merge stage reached without a fetched entity")
	}

	merged := *existing
	if err := c.BodyParser(&merged); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}
	*b.EntityID(&merged) = *b.EntityID(existing)

	b.SetEntity(c, &merged)
	return c.Next()
}

// ValidateEntity runs the entity validator; a failure answers 400 with the
// field-error map and stops the chain.
func (b *BREAD[T, L, F]) ValidateEntity(c *fiber.Ctx) error {
	entity, ok := b.Entity(c)
	if !ok {
		return errors.New("validate stage reached without a working entity")
	}

	if fe := b.Validate(entity); fe != nil {
		b.Log.Infof("validation failed for %s %s: %v", c.Method(), c.OriginalURL(), fe)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid data",
			"errors":  fe,
		})
	}

	return c.Next()
}

// SendListingResponse projects the attached list through ToListing and emits
// it, or 204 when nothing was attached.
func (b *BREAD[T, L, F]) SendListingResponse(c *fiber.Ctx) error {
	list, ok := b.List(c)
	if !ok || len(list) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	dtos := make([]L, 0, len(list))
	for _, entity := range list {
		dtos = append(dtos, b.ToListing(entity))
	}
	return c.Status(fiber.StatusOK).JSON(dtos)
}

// SendFullEntityResponse projects the attached entity through ToFull and
// emits it, or 204 when nothing was attached.
func (b *BREAD[T, L, F]) SendFullEntityResponse(c *fiber.Ctx) error {
	entity, ok := b.Entity(c)
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.Status(fiber.StatusOK).JSON(b.ToFull(*entity))
}
