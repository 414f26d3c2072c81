package http

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/iratxeld/tripfinder/internal/core/usecases"
)

var iataCode = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateTripSearch guards the default trip listing: origin and destination
// must be 3-letter IATA-style codes and sort_by must be a known sort key.
// Every violated rule is reported in one comma-joined message. The filtered
// listing deliberately has no such guard.
func ValidateTripSearch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var violations []string

		switch origin := c.Query("origin"); {
		case origin == "":
			violations = append(violations, "Origin is required.")
		case !iataCode.MatchString(origin):
			violations = append(violations, "Origin must be a 3-letter IATA code.")
		}

		switch destination := c.Query("destination"); {
		case destination == "":
			violations = append(violations, "Destination is required.")
		case !iataCode.MatchString(destination):
			violations = append(violations, "Destination must be a 3-letter IATA code.")
		}

		switch c.Query("sort_by") {
		case usecases.SortFastest, usecases.SortCheapest:
		case "":
			violations = append(violations, "Sort_by is required.")
		default:
			violations = append(violations, `Sort_by must be either "fastest" or "cheapest".`)
		}

		if len(violations) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(apiMessage{
				Message: "Invalid query parameters",
				Error:   strings.Join(violations, ", "),
			})
		}

		return c.Next()
	}
}
