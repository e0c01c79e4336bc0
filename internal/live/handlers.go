package live

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func RegisterRoutes(r fiber.Router, hub *Hub, authMiddleware fiber.Handler) {
	r.Get("/ws/:sessionID", websocket.New(func(c *websocket.Conn) {
		sessionID := c.Params("sessionID")
		client := hub.Register(sessionID)
		defer hub.Unregister(client)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		<-done
	}))

	r.Post("/:sessionID/events", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			Kind string `json:"kind"`
			Body string `json:"body"`
		}
		if err := c.BodyParser(&body); err != nil || body.Kind == "" {
			return fiber.NewError(fiber.StatusBadRequest, "kind required")
		}
		if err := hub.Publish(Event{
			SessionID: c.Params("sessionID"),
			Kind:      body.Kind,
			Body:      body.Body,
		}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusAccepted)
	})
}
