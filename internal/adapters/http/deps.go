package http

import (
	natsio "github.com/nats-io/nats.go"

	"github.com/iratxeld/tripfinder/internal/adapters/mongodb"
	"github.com/iratxeld/tripfinder/internal/adapters/valkey"
	"github.com/iratxeld/tripfinder/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers. NATS, DB and
// Cache are nil when the corresponding subsystem is not configured.
type Dependencies struct {
	Search     *usecases.SearchService
	SavedTrips *usecases.SavedTripService
	NATS       *natsio.Conn
	DB         *mongodb.DB
	Cache      *valkey.Cache
}
