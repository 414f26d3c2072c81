package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPriceRange is returned when a supplied price range has a
// negative bound, a non-numeric bound, or min above max.
var ErrInvalidPriceRange = errors.New("invalid price range")

// ErrStoreUnavailable is returned by persistence operations when no document
// store was configured at startup.
var ErrStoreUnavailable = errors.New("document store not configured")

// UpstreamError describes a failed call to the external trip-search API.
// Status, Headers and Body carry the upstream response verbatim when one was
// received; Status is zero for transport-level failures. Handlers forward
// all of it so the caller can diagnose the upstream, not just us.
type UpstreamError struct {
	Message string
	Status  int
	Headers map[string]string
	Body    []byte
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.Status)
	}
	return "upstream: " + e.Message
}
