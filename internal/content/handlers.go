package content

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/sessions/:id", func(c *fiber.Ctx) error {
		bundle, err := svc.ForSession(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(bundle)
	})

	r.Post("/readings", authMiddleware, func(c *fiber.Ctx) error {
		var req Reading
		if err := c.BodyParser(&req); err != nil || req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		created, err := svc.CreateReading(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/songs", authMiddleware, func(c *fiber.Ctx) error {
		var req Song
		if err := c.BodyParser(&req); err != nil || req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		created, err := svc.CreateSong(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/prayers", authMiddleware, func(c *fiber.Ctx) error {
		var req Prayer
		if err := c.BodyParser(&req); err != nil || req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		created, err := svc.CreatePrayer(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Post("/sessions/:id/mappings", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ContentType Type   `json:"content_type"`
			ContentID   string `json:"content_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.ContentID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "content_type and content_id required")
		}
		m, err := svc.AddMapping(c.Context(), Mapping{
			SessionID:   c.Params("id"),
			ContentType: body.ContentType,
			ContentID:   body.ContentID,
		})
		if errors.Is(err, ErrUnknownType) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	})

	r.Delete("/sessions/:id/mappings/:type/:contentID", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.RemoveMapping(c.Context(), c.Params("id"), Type(c.Params("type")), c.Params("contentID")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
