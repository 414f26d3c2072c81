package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iratxeld/tripfinder/internal/core/domain"
)

const savedTripsCollection = "saved_trips"

// SavedTripRepo implements ports.SavedTripRepository on a Mongo collection.
type SavedTripRepo struct {
	coll *mongo.Collection
}

func NewSavedTripRepo(db *DB) *SavedTripRepo {
	return &SavedTripRepo{coll: db.Database.Collection(savedTripsCollection)}
}

type savedTripDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Origin      string             `bson:"origin"`
	Destination string             `bson:"destination"`
	Cost        float64            `bson:"cost"`
	Duration    float64            `bson:"duration"`
	Type        string             `bson:"type"`
	DisplayName string             `bson:"display_name"`
}

// toDomain converts a stored document; the creation timestamp comes from the
// ObjectID, so the store alone owns both identity and time.
func (d savedTripDoc) toDomain() domain.SavedTrip {
	return domain.SavedTrip{
		ID:          d.ID.Hex(),
		Origin:      d.Origin,
		Destination: d.Destination,
		Cost:        d.Cost,
		Duration:    d.Duration,
		Type:        d.Type,
		DisplayName: d.DisplayName,
		CreatedAt:   d.ID.Timestamp(),
	}
}

func (r *SavedTripRepo) Create(ctx context.Context, trip domain.Trip) (*domain.SavedTrip, error) {
	doc := savedTripDoc{
		Origin:      trip.Origin,
		Destination: trip.Destination,
		Cost:        trip.Cost,
		Duration:    trip.Duration,
		Type:        trip.Type,
		DisplayName: trip.DisplayName,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	saved := doc.toDomain()
	return &saved, nil
}

func (r *SavedTripRepo) List(ctx context.Context) ([]domain.SavedTrip, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var trips []domain.SavedTrip
	for cur.Next(ctx) {
		var doc savedTripDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		trips = append(trips, doc.toDomain())
	}
	return trips, cur.Err()
}

// Delete removes the trip with the given id. An id that is not a valid
// ObjectID is a store failure; an id that matches nothing is (false, nil).
func (r *SavedTripRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid trip id %q: %w", id, err)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
