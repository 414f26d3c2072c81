package usecases

import (
	"context"
	"log/slog"

	"github.com/iratxeld/tripfinder/internal/core/domain"
	"github.com/iratxeld/tripfinder/internal/core/ports"
)

// SavedTripService is a thin pass-through to the saved-trips collection.
// Lifecycle events are published best-effort when a broker is configured;
// a publish failure never fails the store operation.
type SavedTripService struct {
	repo   ports.SavedTripRepository
	events ports.EventPublisher
}

// NewSavedTripService creates a SavedTripService. repo may be nil when no
// document store was configured; operations then fail with
// domain.ErrStoreUnavailable. events may be nil.
func NewSavedTripService(repo ports.SavedTripRepository, events ports.EventPublisher) *SavedTripService {
	return &SavedTripService{repo: repo, events: events}
}

// Create persists a trip-shaped payload and returns the stored record with
// its assigned identifier.
func (s *SavedTripService) Create(ctx context.Context, trip domain.Trip) (*domain.SavedTrip, error) {
	if s.repo == nil {
		return nil, domain.ErrStoreUnavailable
	}

	saved, err := s.repo.Create(ctx, trip)
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishTripSaved(ctx, saved); err != nil {
			slog.Warn("publish trip saved event", "trip_id", saved.ID, "error", err)
		}
	}

	return saved, nil
}

// List returns every saved trip.
func (s *SavedTripService) List(ctx context.Context) ([]domain.SavedTrip, error) {
	if s.repo == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.repo.List(ctx)
}

// Delete removes the saved trip with the given id. The boolean reports
// whether anything was removed; an unknown id is not an error.
func (s *SavedTripService) Delete(ctx context.Context, id string) (bool, error) {
	if s.repo == nil {
		return false, domain.ErrStoreUnavailable
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted && s.events != nil {
		if err := s.events.PublishTripDeleted(ctx, id); err != nil {
			slog.Warn("publish trip deleted event", "trip_id", id, "error", err)
		}
	}

	return deleted, nil
}
