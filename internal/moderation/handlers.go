package moderation

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/reports", authMiddleware, func(c *fiber.Ctx) error {
		var req Report
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.PostID == "" || req.ReporterID == "" || req.Reason == "" {
			return fiber.NewError(fiber.StatusBadRequest, "post_id, reporter_id and reason required")
		}
		report, err := svc.CreateReport(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(report)
	})

	r.Get("/reports", authMiddleware, func(c *fiber.Ctx) error {
		reports, err := svc.Pending(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if reports == nil {
			reports = []PendingReport{}
		}
		return c.JSON(reports)
	})

	r.Post("/reports/:id/dismiss", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Dismiss(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/posts/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.DeleteReportedPost(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
