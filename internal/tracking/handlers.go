package tracking

import (
	"errors"
	"strconv"

	"backend-workoutmap/internal/shared/geo"
	"backend-workoutmap/internal/workout"

	"github.com/gofiber/fiber/v2"
)

const defaultNearRadiusKm = 5.0

// RegisterRoutes exposes the tracker's events over HTTP. locator may be nil
// when the position does not come from the client.
func RegisterRoutes(r fiber.Router, svc *Service, locator *DeferredLocator) {
	r.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(svc.State())
	})

	r.Get("/workouts", func(c *fiber.Ctx) error {
		return c.JSON(svc.Workouts())
	})

	r.Post("/workouts", func(c *fiber.Ctx) error {
		var req FormInput
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		w, err := svc.Submit(c.Context(), req)
		if err != nil {
			return submitError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(workout.ToRecord(w))
	})

	r.Get("/workouts/near", func(c *fiber.Ctx) error {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat must be a number")
		}
		lng, err := strconv.ParseFloat(c.Query("lng"), 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lng must be a number")
		}
		radius := defaultNearRadiusKm
		if raw := c.Query("radius_km"); raw != "" {
			radius, err = strconv.ParseFloat(raw, 64)
			if err != nil || !(radius > 0) {
				return fiber.NewError(fiber.StatusBadRequest, "radius_km must be a positive number")
			}
		}
		center := geo.Coords{Lat: lat, Lng: lng}
		if !center.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng out of range")
		}
		return c.JSON(svc.Near(center, radius))
	})

	r.Post("/workouts/:id/select", func(c *fiber.Ctx) error {
		if _, ok := svc.Select(c.Context(), c.Params("id")); !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	r.Post("/form/type", func(c *fiber.Ctx) error {
		var body struct {
			Type string `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := svc.ChangeType(body.Type); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/form/cancel", func(c *fiber.Ctx) error {
		svc.Cancel()
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/position", func(c *fiber.Ctx) error {
		if locator == nil {
			return fiber.NewError(fiber.StatusNotFound, "position is not reported by the client")
		}
		var body geo.Coords
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if !body.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng out of range")
		}
		if err := locator.Resolve(body); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/position/error", func(c *fiber.Ctx) error {
		if locator == nil {
			return fiber.NewError(fiber.StatusNotFound, "position is not reported by the client")
		}
		var body struct {
			Message string `json:"message"`
		}
		_ = c.BodyParser(&body)
		if body.Message == "" {
			body.Message = "position unavailable"
		}
		if err := locator.Reject(errors.New(body.Message)); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/reset", func(c *fiber.Ctx) error {
		if err := svc.Reset(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func submitError(err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, workout.ErrUnknownKind):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNoPendingClick):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
