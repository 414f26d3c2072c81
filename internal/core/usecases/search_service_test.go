package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iratxeld/tripfinder/internal/core/domain"
	"github.com/iratxeld/tripfinder/internal/core/usecases"
)

// --- Mock TripSearcher ---

type mockSearcher struct {
	searchFn func(ctx context.Context, origin, destination string) ([]domain.Trip, error)
}

func (m *mockSearcher) Search(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, origin, destination)
	}
	return nil, nil
}

// --- Mock CacheService ---

type mockCache struct {
	store map[string][]byte
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := m.store[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.store[key] = value
	m.sets++
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func sampleTrips() []domain.Trip {
	return []domain.Trip{
		{Origin: "ATL", Destination: "LAX", Cost: 150, Duration: 5, Type: "flight", DisplayName: "from ATL to LAX by flight"},
		{Origin: "ATL", Destination: "LAX", Cost: 60, Duration: 30, Type: "bus", DisplayName: "from ATL to LAX by bus"},
		{Origin: "ATL", Destination: "LAX", Cost: 250, Duration: 3, Type: "flight", DisplayName: "from ATL to LAX by express flight"},
	}
}

func fixedSearcher(trips []domain.Trip) *mockSearcher {
	return &mockSearcher{
		searchFn: func(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
			return trips, nil
		},
	}
}

func TestSortedTrips_Fastest(t *testing.T) {
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), nil)

	trips, err := svc.SortedTrips(context.Background(), "ATL", "LAX", usecases.SortFastest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(trips))
	}
	for i := 1; i < len(trips); i++ {
		if trips[i-1].Duration > trips[i].Duration {
			t.Errorf("trips not sorted by duration at %d: %v > %v", i, trips[i-1].Duration, trips[i].Duration)
		}
	}
}

func TestSortedTrips_Cheapest(t *testing.T) {
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), nil)

	trips, err := svc.SortedTrips(context.Background(), "ATL", "LAX", usecases.SortCheapest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trips[0].Cost != 60 || trips[2].Cost != 250 {
		t.Errorf("trips not sorted by cost: %+v", trips)
	}
}

func TestSortedTrips_StableOnTies(t *testing.T) {
	tied := []domain.Trip{
		{Origin: "ATL", Destination: "LAX", Cost: 100, Duration: 5, Type: "flight", DisplayName: "first"},
		{Origin: "ATL", Destination: "LAX", Cost: 100, Duration: 5, Type: "bus", DisplayName: "second"},
		{Origin: "ATL", Destination: "LAX", Cost: 100, Duration: 5, Type: "train", DisplayName: "third"},
	}
	svc := usecases.NewSearchService(fixedSearcher(tied), nil)

	trips, err := svc.SortedTrips(context.Background(), "ATL", "LAX", usecases.SortCheapest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if trips[i].DisplayName != w {
			t.Errorf("tie order broken at %d: got %s, want %s", i, trips[i].DisplayName, w)
		}
	}
}

func TestSortedTrips_UpstreamErrorPassthrough(t *testing.T) {
	ue := &domain.UpstreamError{Message: "boom", Status: 503}
	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
			return nil, ue
		},
	}
	svc := usecases.NewSearchService(searcher, nil)

	_, err := svc.SortedTrips(context.Background(), "ATL", "LAX", usecases.SortFastest)
	var got *domain.UpstreamError
	if !errors.As(err, &got) || got.Status != 503 {
		t.Fatalf("expected upstream error with status 503, got %v", err)
	}
}

func TestValidPriceRange(t *testing.T) {
	cases := []struct {
		min, max float64
		want     bool
	}{
		{100, 200, true},
		{0, 0, true},
		{-10, 10, false},
		{10, -10, false},
		{50, 10, false},
		{math.NaN(), 200, false},
		{100, math.NaN(), false},
	}
	for _, tc := range cases {
		if got := usecases.ValidPriceRange(tc.min, tc.max); got != tc.want {
			t.Errorf("ValidPriceRange(%v, %v) = %v, want %v", tc.min, tc.max, got, tc.want)
		}
	}
}

func TestFilteredTrips_PriceRangeInclusive(t *testing.T) {
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), nil)

	trips, err := svc.FilteredTrips(context.Background(), "ATL", "LAX", &[2]float64{60, 150}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips inside [60,150], got %d", len(trips))
	}
	// Bounds are inclusive, and the upstream order is kept
	if trips[0].Cost != 150 || trips[1].Cost != 60 {
		t.Errorf("wrong trips or order: %+v", trips)
	}
}

func TestFilteredTrips_TransportTypeExact(t *testing.T) {
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), nil)

	trips, err := svc.FilteredTrips(context.Background(), "ATL", "LAX", nil, "flight")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(trips))
	}
	for _, tr := range trips {
		if tr.Type != "flight" {
			t.Errorf("non-flight survived the filter: %+v", tr)
		}
	}
}

func TestFilteredTrips_FiltersCombine(t *testing.T) {
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), nil)

	trips, err := svc.FilteredTrips(context.Background(), "ATL", "LAX", &[2]float64{100, 200}, "flight")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 1 || trips[0].Cost != 150 {
		t.Fatalf("expected only the 150 flight, got %+v", trips)
	}
}

func TestFilteredTrips_InvalidRange(t *testing.T) {
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), nil)

	_, err := svc.FilteredTrips(context.Background(), "ATL", "LAX", &[2]float64{200, 100}, "")
	if !errors.Is(err, domain.ErrInvalidPriceRange) {
		t.Fatalf("expected ErrInvalidPriceRange, got %v", err)
	}
}

func TestFilteredTrips_NaNBoundRejected(t *testing.T) {
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), nil)

	_, err := svc.FilteredTrips(context.Background(), "ATL", "LAX", &[2]float64{math.NaN(), 200}, "")
	if !errors.Is(err, domain.ErrInvalidPriceRange) {
		t.Fatalf("expected ErrInvalidPriceRange, got %v", err)
	}
}

func TestFilteredTrips_FetchFailureBeatsBadRange(t *testing.T) {
	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
			return nil, &domain.UpstreamError{Message: "down", Status: 502}
		},
	}
	svc := usecases.NewSearchService(searcher, nil)

	_, err := svc.FilteredTrips(context.Background(), "ATL", "LAX", &[2]float64{200, 100}, "")
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected the fetch failure to win over range validation, got %v", err)
	}
}

func TestSearchService_CacheReadThrough(t *testing.T) {
	calls := 0
	searcher := &mockSearcher{
		searchFn: func(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
			calls++
			return sampleTrips(), nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewSearchService(searcher, cache)

	for i := 0; i < 3; i++ {
		if _, err := svc.SortedTrips(context.Background(), "ATL", "LAX", usecases.SortFastest); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if calls != 1 {
		t.Errorf("expected 1 upstream call with a warm cache, got %d", calls)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache fill, got %d", cache.sets)
	}
}

func TestSearchService_CorruptCacheEntryIgnored(t *testing.T) {
	cache := newMockCache()
	cache.store["trips:search:ATL:LAX"] = []byte("{not json")
	svc := usecases.NewSearchService(fixedSearcher(sampleTrips()), cache)

	trips, err := svc.SortedTrips(context.Background(), "ATL", "LAX", usecases.SortFastest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("expected fallback to upstream, got %d trips", len(trips))
	}

	var cached []domain.Trip
	if err := json.Unmarshal(cache.store["trips:search:ATL:LAX"], &cached); err != nil {
		t.Errorf("cache entry not overwritten with valid JSON: %v", err)
	}
}
