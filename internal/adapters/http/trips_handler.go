package http

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/iratxeld/tripfinder/internal/core/domain"
)

// DefaultTripsHandler returns trips ordered by the requested sort key.
// Query parameters are checked by ValidateTripSearch before this runs.
func DefaultTripsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trips, err := deps.Search.SortedTrips(c.Context(),
			c.Query("origin"), c.Query("destination"), c.Query("sort_by"))
		if err != nil {
			return respondFetchFailure(c, err)
		}

		if trips == nil {
			trips = []domain.Trip{}
		}
		return c.JSON(trips)
	}
}

// FilteredTripsHandler returns trips narrowed by the optional price_range
// and transport_type filters. origin/destination are not validated on this
// route: a missing pair surfaces as an upstream fetch failure, which is the
// documented behavior.
func FilteredTripsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trips, err := deps.Search.FilteredTrips(c.Context(),
			c.Query("origin"), c.Query("destination"),
			parsePriceRange(c), c.Query("transport_type"))
		if err != nil {
			if errors.Is(err, domain.ErrInvalidPriceRange) {
				return c.Status(fiber.StatusBadRequest).JSON(apiMessage{
					Message: "Invalid price range.",
				})
			}
			return respondFetchFailure(c, err)
		}

		if trips == nil {
			trips = []domain.Trip{}
		}
		return c.JSON(trips)
	}
}

// parsePriceRange reads price_range either as a repeated query key or as one
// comma-separated value. Anything other than exactly two elements counts as
// absent. A bound that fails numeric parsing becomes NaN so that range
// validation rejects it after the fetch, not before.
func parsePriceRange(c *fiber.Ctx) *[2]float64 {
	args := c.Context().QueryArgs().PeekMulti("price_range")
	raw := make([]string, 0, len(args))
	for _, a := range args {
		raw = append(raw, string(a))
	}
	if len(raw) == 1 && strings.Contains(raw[0], ",") {
		raw = strings.Split(raw[0], ",")
	}
	if len(raw) != 2 {
		return nil
	}

	var pair [2]float64
	for i, s := range raw {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			v = math.NaN()
		}
		pair[i] = v
	}
	return &pair
}
