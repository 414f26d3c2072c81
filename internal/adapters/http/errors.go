package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/iratxeld/tripfinder/internal/core/domain"
)

// apiMessage is the stable {message, error} envelope used by every non-2xx
// response on the trip routes. Error is a string for local failures and an
// upstreamDetail for fetch failures.
type apiMessage struct {
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
}

// upstreamDetail forwards a failed upstream call verbatim so callers can
// diagnose the third party: message, status, headers and raw body.
type upstreamDetail struct {
	Message string            `json:"message"`
	Status  int               `json:"status,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Data    any               `json:"data,omitempty"`
}

// respondFetchFailure translates an upstream error into the documented
// envelope. The response status mirrors the upstream status when one exists,
// otherwise 500.
func respondFetchFailure(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	detail := upstreamDetail{Message: err.Error()}

	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		detail.Message = ue.Message
		detail.Status = ue.Status
		detail.Headers = ue.Headers
		if len(ue.Body) > 0 {
			if json.Valid(ue.Body) {
				detail.Data = json.RawMessage(ue.Body)
			} else {
				detail.Data = string(ue.Body)
			}
		}
		if ue.Status != 0 {
			status = ue.Status
		}
	}

	return c.Status(status).JSON(apiMessage{
		Message: "Failed to fetch trips from external API",
		Error:   detail,
	})
}

// respondFailure emits a client-error envelope with the underlying message.
func respondFailure(c *fiber.Ctx, message string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(apiMessage{
		Message: message,
		Error:   err.Error(),
	})
}
