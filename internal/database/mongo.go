package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the repositories.
const (
	ReservationsCollection = "reservations"
	ConfigCollection       = "config"
)

// Connect opens a MongoDB client for the given URI and verifies the
// connection with a short ping before returning the database handle.
func Connect(uri, name string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client.Database(name), nil
}

// EnsureIndexes creates the indexes the application relies on.  The unique
// compound index on (serviceDate, timeSlot, park) is the authoritative
// guard against double-booking a slot: the service layer's existence check
// is only a fast path, and two racing inserts are resolved here by the
// storage engine.  The config collection gets a unique index on the
// singleton marker so lazy creation can never produce two documents.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ReservationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "serviceDate", Value: 1},
			{Key: "timeSlot", Value: 1},
			{Key: "park", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_slot"),
	})
	if err != nil {
		return err
	}
	_, err = db.Collection(ConfigCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "isSingleton", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_singleton"),
	})
	return err
}
