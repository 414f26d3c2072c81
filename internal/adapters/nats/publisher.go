package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/iratxeld/tripfinder/internal/core/domain"
)

const (
	subjectTripSaved   = "trips.saved.created"
	subjectTripDeleted = "trips.saved.deleted"
)

// Publisher implements ports.EventPublisher over NATS JetStream, emitting
// saved-trip lifecycle events.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream, and ensures the
// saved-trips stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "SAVED_TRIPS",
		Subjects:  []string{"trips.saved.>"},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

type tripEvent struct {
	Event string            `json:"event"`
	ID    string            `json:"id"`
	Trip  *domain.SavedTrip `json:"trip,omitempty"`
}

func (p *Publisher) PublishTripSaved(ctx context.Context, trip *domain.SavedTrip) error {
	data, err := json.Marshal(tripEvent{Event: "created", ID: trip.ID, Trip: trip})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subjectTripSaved, data)
	return err
}

func (p *Publisher) PublishTripDeleted(ctx context.Context, id string) error {
	data, err := json.Marshal(tripEvent{Event: "deleted", ID: id})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(subjectTripDeleted, data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (the WebSocket
// relay uses one).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
