package stream

import (
	"errors"

	"backend-workoutmap/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the websocket feed for every topic and, when view is
// set, the map click ingress for view's topic.
func RegisterRoutes(r fiber.Router, hub *Hub, view *View) {
	r.Get("/ws/:topic", websocket.New(func(c *websocket.Conn) {
		client := hub.Register(c.Params("topic"))
		defer hub.Unregister(client)
		hub.log.Debug("client connected", "client", client.ID, "topic", client.Topic)

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
		hub.Unregister(client)
		<-done
	}))

	if view == nil {
		return
	}

	r.Post("/"+view.Topic()+"/map/click", func(c *fiber.Ctx) error {
		var body geo.Coords
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if !body.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng out of range")
		}
		if err := view.Click(body); err != nil {
			if errors.Is(err, ErrMapNotReady) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
