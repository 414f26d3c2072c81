package ports

import (
	"context"

	"github.com/iratxeld/tripfinder/internal/core/domain"
)

// SavedTripRepository persists user-saved trips in a document collection.
type SavedTripRepository interface {
	// Create stores the trip and returns it with its assigned identifier.
	Create(ctx context.Context, trip domain.Trip) (*domain.SavedTrip, error)
	// List returns every saved trip; an empty slice is a valid result.
	List(ctx context.Context) ([]domain.SavedTrip, error)
	// Delete removes the trip with the given id. The boolean reports whether
	// a record was actually removed; an unknown id is (false, nil), not an
	// error.
	Delete(ctx context.Context, id string) (bool, error)
}
