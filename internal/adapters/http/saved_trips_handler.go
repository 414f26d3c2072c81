package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iratxeld/tripfinder/internal/core/domain"
	"github.com/iratxeld/tripfinder/internal/pkg/metrics"
)

// CreateSavedTripHandler persists a trip-shaped payload and returns the
// stored record, id included.
func CreateSavedTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var trip domain.Trip
		if err := c.BodyParser(&trip); err != nil {
			metrics.SavedTripOps.WithLabelValues("create", "error").Inc()
			return respondFailure(c, "Failed to create trip", err)
		}

		saved, err := deps.SavedTrips.Create(c.Context(), trip)
		if err != nil {
			metrics.SavedTripOps.WithLabelValues("create", "error").Inc()
			return respondFailure(c, "Failed to create trip", err)
		}

		metrics.SavedTripOps.WithLabelValues("create", "success").Inc()
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
}

// ListSavedTripsHandler returns every saved trip.
func ListSavedTripsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trips, err := deps.SavedTrips.List(c.Context())
		if err != nil {
			metrics.SavedTripOps.WithLabelValues("list", "error").Inc()
			return respondFailure(c, "Failed to fetch trips", err)
		}

		metrics.SavedTripOps.WithLabelValues("list", "success").Inc()
		if trips == nil {
			trips = []domain.SavedTrip{}
		}
		return c.JSON(trips)
	}
}

// DeleteSavedTripHandler removes a saved trip by id. An id that matches
// nothing is a 404, not a store failure.
func DeleteSavedTripHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deleted, err := deps.SavedTrips.Delete(c.Context(), c.Params("id"))
		if err != nil {
			metrics.SavedTripOps.WithLabelValues("delete", "error").Inc()
			return respondFailure(c, "Failed to delete trip", err)
		}

		metrics.SavedTripOps.WithLabelValues("delete", "success").Inc()
		if !deleted {
			return c.Status(fiber.StatusNotFound).JSON(apiMessage{Message: "Trip not found"})
		}
		return c.JSON(apiMessage{Message: "Trip deleted successfully"})
	}
}
