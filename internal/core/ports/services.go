package ports

import (
	"context"
	"time"

	"github.com/iratxeld/tripfinder/internal/core/domain"
)

// TripSearcher fetches trips between two locations from the external
// trip-search API. A successful call returns the upstream list verbatim;
// any failure is a *domain.UpstreamError.
type TripSearcher interface {
	Search(ctx context.Context, origin, destination string) ([]domain.Trip, error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher emits saved-trip lifecycle events to a message broker.
type EventPublisher interface {
	PublishTripSaved(ctx context.Context, trip *domain.SavedTrip) error
	PublishTripDeleted(ctx context.Context, id string) error
}
