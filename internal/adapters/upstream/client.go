package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iratxeld/tripfinder/internal/core/domain"
	"github.com/iratxeld/tripfinder/internal/pkg/metrics"
)

const apiKeyHeader = "x-api-key"

// Client implements ports.TripSearcher against the third-party trip-search
// endpoint: one GET with the API key header and origin/destination query
// parameters. No retries, no redirects beyond the client defaults.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New creates a Client. timeout bounds the whole round-trip.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Search fetches every trip between origin and destination. On success the
// returned slice is exactly what the upstream sent; any failure — transport
// error, non-2xx status, or a payload this system cannot map to trips — is a
// *domain.UpstreamError carrying whatever the upstream produced.
func (c *Client) Search(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
	start := time.Now()
	trips, err := c.search(ctx, origin, destination)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.UpstreamRequests.WithLabelValues(outcome).Inc()
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	return trips, err
}

func (c *Client) search(ctx context.Context, origin, destination string) ([]domain.Trip, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &domain.UpstreamError{Message: "invalid upstream url: " + err.Error()}
	}
	q := u.Query()
	q.Set("origin", origin)
	q.Set("destination", destination)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.UpstreamError{Message: err.Error()}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{
			Message: "read upstream response: " + err.Error(),
			Status:  resp.StatusCode,
			Headers: flatten(resp.Header),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Message: fmt.Sprintf("upstream responded with status %d", resp.StatusCode),
			Status:  resp.StatusCode,
			Headers: flatten(resp.Header),
			Body:    body,
		}
	}

	var trips []domain.Trip
	if err := json.Unmarshal(body, &trips); err != nil {
		return nil, &domain.UpstreamError{
			Message: "malformed upstream payload: " + err.Error(),
			Status:  resp.StatusCode,
			Headers: flatten(resp.Header),
			Body:    body,
		}
	}

	// Required fields missing from a record, or a negative cost or
	// duration, mean a payload we do not understand, not a trip with
	// defaults.
	for i, t := range trips {
		if t.Origin == "" || t.Destination == "" || t.DisplayName == "" {
			return nil, &domain.UpstreamError{
				Message: fmt.Sprintf("malformed upstream payload: trip %d is missing required fields", i),
				Status:  resp.StatusCode,
				Headers: flatten(resp.Header),
				Body:    body,
			}
		}
		if t.Cost < 0 || t.Duration < 0 {
			return nil, &domain.UpstreamError{
				Message: fmt.Sprintf("malformed upstream payload: trip %d has a negative cost or duration", i),
				Status:  resp.StatusCode,
				Headers: flatten(resp.Header),
				Body:    body,
			}
		}
	}

	return trips, nil
}

func flatten(h http.Header) map[string]string {
	if len(h) == 0 {
		return nil
	}
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
