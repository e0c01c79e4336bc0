package prompt

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, gate *Gate) {
	r.Get("/should-show", func(c *fiber.Ctx) error {
		deviceID := c.Query("device_id")
		if deviceID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "device_id required")
		}
		return c.JSON(fiber.Map{"should_show": gate.ShouldShow(c.Context(), deviceID)})
	})

	r.Post("/record", func(c *fiber.Ctx) error {
		var body struct {
			DeviceID string `json:"device_id"`
			Action   Action `json:"action"`
		}
		if err := c.BodyParser(&body); err != nil || body.DeviceID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "device_id and action required")
		}
		switch body.Action {
		case ActionSignup, ActionLater, ActionIgnore:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown action")
		}
		if err := gate.Record(c.Context(), body.DeviceID, body.Action); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/usage", func(c *fiber.Ctx) error {
		deviceID := c.Query("device_id")
		if deviceID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "device_id required")
		}
		return c.JSON(fiber.Map{"usage_count": gate.UsageCount(c.Context(), deviceID)})
	})
}
