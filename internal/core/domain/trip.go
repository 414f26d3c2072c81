package domain

import "time"

// Trip is a single transport option between an origin and a destination as
// returned by the external trip-search API. Field values are never modified
// locally; sorting and filtering change list order and membership only.
type Trip struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Cost        float64 `json:"cost"`
	Duration    float64 `json:"duration"`
	Type        string  `json:"type"`
	DisplayName string  `json:"display_name"`
}

// SavedTrip is a trip a user persisted for later. The identifier and the
// creation timestamp are assigned by the document store, never by callers.
// SavedTrips and fetched Trips share a shape but are otherwise unrelated.
type SavedTrip struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Cost        float64   `json:"cost"`
	Duration    float64   `json:"duration"`
	Type        string    `json:"type"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
