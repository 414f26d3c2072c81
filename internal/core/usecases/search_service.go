package usecases

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/iratxeld/tripfinder/internal/core/domain"
	"github.com/iratxeld/tripfinder/internal/core/ports"
)

// Sort keys accepted by the default trip listing.
const (
	SortFastest  = "fastest"
	SortCheapest = "cheapest"
)

const searchCacheTTL = 60 * time.Second

// SearchService proxies the external trip-search API and applies ordering
// and filtering to the fetched list. It never mutates trip field values.
type SearchService struct {
	upstream ports.TripSearcher
	cache    ports.CacheService
}

// NewSearchService creates a SearchService. cache may be nil, in which case
// every request goes straight to the upstream.
func NewSearchService(upstream ports.TripSearcher, cache ports.CacheService) *SearchService {
	return &SearchService{upstream: upstream, cache: cache}
}

// SortedTrips fetches trips and orders them ascending by duration
// ("fastest") or cost ("cheapest"). The sort is stable: trips with equal
// keys keep the upstream's relative order.
func (s *SearchService) SortedTrips(ctx context.Context, origin, destination, sortBy string) ([]domain.Trip, error) {
	trips, err := s.fetch(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	switch sortBy {
	case SortFastest:
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Duration < trips[j].Duration })
	case SortCheapest:
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Cost < trips[j].Cost })
	}

	return trips, nil
}

// ValidPriceRange reports whether both bounds are non-negative and min does
// not exceed max. NaN bounds fail both comparisons, so a pair that could
// not be parsed numerically is invalid here as well.
func ValidPriceRange(min, max float64) bool {
	return min >= 0 && max >= 0 && min <= max
}

// FilteredTrips fetches trips and retains only those matching every supplied
// filter. priceRange is nil when absent; when present it must satisfy
// ValidPriceRange or the call fails with domain.ErrInvalidPriceRange (after
// the fetch — upstream failures take precedence, matching the documented
// route behavior). Filtering never reorders the remaining trips.
func (s *SearchService) FilteredTrips(ctx context.Context, origin, destination string, priceRange *[2]float64, transportType string) ([]domain.Trip, error) {
	trips, err := s.fetch(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if priceRange != nil {
		min, max := priceRange[0], priceRange[1]
		if !ValidPriceRange(min, max) {
			return nil, domain.ErrInvalidPriceRange
		}
		var kept []domain.Trip
		for _, t := range trips {
			if t.Cost >= min && t.Cost <= max {
				kept = append(kept, t)
			}
		}
		trips = kept
	}

	if transportType != "" {
		var kept []domain.Trip
		for _, t := range trips {
			if t.Type == transportType {
				kept = append(kept, t)
			}
		}
		trips = kept
	}

	return trips, nil
}

// fetch returns the raw upstream list for an origin/destination pair,
// consulting the cache first when one is configured.
func (s *SearchService) fetch(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
	cacheKey := "trips:search:" + origin + ":" + destination
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var trips []domain.Trip
			if err := json.Unmarshal(data, &trips); err == nil {
				return trips, nil
			}
		}
	}

	trips, err := s.upstream.Search(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(trips); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, searchCacheTTL)
		}
	}

	return trips, nil
}
