package feed

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const defaultPageSize = 10

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		tier := Tier(c.Query("tier", string(TierLocal)))
		limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
		offset, _ := strconv.Atoi(c.Query("offset", "0"))

		posts, err := svc.Fetch(c.Context(), tier, userID, limit, offset)
		if errors.Is(err, ErrUnknownTier) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if posts == nil {
			posts = []Post{}
		}
		return c.JSON(fiber.Map{
			"posts":    posts,
			"has_more": len(posts) == limit,
		})
	})

	r.Post("/posts", authMiddleware, func(c *fiber.Ctx) error {
		var req Post
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.AuthorID == "" || req.Content == "" || req.ParishID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "author_id, parish_id and content required")
		}
		post, err := svc.CreatePost(c.Context(), req)
		if errors.Is(err, ErrUnknownTier) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Post("/posts/:id/media", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			MediaType   string `json:"media_type"`
			URL         string `json:"url"`
			DurationSec int    `json:"duration_seconds"`
		}
		if err := c.BodyParser(&body); err != nil || body.URL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "media_type and url required")
		}
		if body.MediaType != MediaPhoto && body.MediaType != MediaVideo {
			return fiber.NewError(fiber.StatusBadRequest, "media_type must be photo or video")
		}
		m, err := svc.AddMedia(c.Context(), c.Params("id"), body.MediaType, body.URL, body.DurationSec)
		if errors.Is(err, ErrVideoLimit) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(m)
	})

	r.Get("/saved", authMiddleware, func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		offset, _ := strconv.Atoi(c.Query("offset", "0"))

		posts, err := svc.SavedPosts(c.Context(), userID, limit, offset)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if posts == nil {
			posts = []Post{}
		}
		return c.JSON(posts)
	})

	r.Post("/posts/:id/pin", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID string `json:"user_id"`
		}
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		if err := svc.Pin(c.Context(), c.Params("id"), body.UserID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/posts/:id/unpin", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Unpin(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/posts/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
