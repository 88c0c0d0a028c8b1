package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/brincapark/reservations-api/internal/database"
	"github.com/brincapark/reservations-api/internal/model"
)

// ReservationRepo provides CRUD operations over the reservations
// collection.  Reservations are keyed by a generated UUID string rather
// than an ObjectID so identifiers are stable across serialization
// boundaries and trivial to fabricate in tests.  All timestamps are stored
// in UTC.
type ReservationRepo struct {
	col *mongo.Collection
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *mongo.Database) *ReservationRepo {
	return &ReservationRepo{col: db.Collection(database.ReservationsCollection)}
}

// Create inserts a new reservation.  It assigns the id and creation
// timestamp and defaults the status to pending when unset.  A duplicate
// key error from the unique slot index is mapped to ErrSlotTaken so a
// racing insert that slipped past the service's existence check still
// surfaces as a conflict.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.Status == "" {
		res.Status = model.StatusPending
	}
	res.CreatedAt = time.Now().UTC()

	_, err := r.col.InsertOne(ctx, res)
	if mongo.IsDuplicateKeyError(err) {
		return ErrSlotTaken
	}
	return err
}

// FindAll returns every reservation ordered by creation time descending
// (newest first).  When the collection is empty an empty slice is
// returned, never nil.
func (r *ReservationRepo) FindAll(ctx context.Context) ([]model.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]model.Reservation, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID returns the reservation with the given id, or ErrNotFound.
func (r *ReservationRepo) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FindBySlot returns the reservation occupying the given (date, slot, park)
// combination, or ErrNotFound when the slot is free.  Status is not part of
// the filter: a cancelled reservation still blocks its slot.
func (r *ReservationRepo) FindBySlot(ctx context.Context, date, slot, park string) (*model.Reservation, error) {
	filter := bson.M{
		"serviceDate": date,
		"timeSlot":    slot,
		"park":        park,
	}
	var res model.Reservation
	err := r.col.FindOne(ctx, filter).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FindSlots returns the time slots already booked for a date and park.
// This feeds the booking form so taken slots can be disabled.
func (r *ReservationRepo) FindSlots(ctx context.Context, date, park string) ([]string, error) {
	filter := bson.M{"serviceDate": date, "park": park}
	opts := options.Find().SetProjection(bson.M{"timeSlot": 1})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	slots := make([]string, 0, len(model.TimeSlots))
	for cur.Next(ctx) {
		var doc struct {
			TimeSlot string `bson:"timeSlot"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		slots = append(slots, doc.TimeSlot)
	}
	return slots, cur.Err()
}

// Update applies the editable fields to a reservation and returns the
// updated document.  Status and createdAt are never part of the $set.  A
// duplicate key error means the new slot collided with another
// reservation and is reported as ErrSlotTaken.
func (r *ReservationRepo) Update(ctx context.Context, id string, upd model.ReservationUpdate) (*model.Reservation, error) {
	set := bson.M{
		"customerName":   upd.CustomerName,
		"email":          upd.Email,
		"phone":          upd.Phone,
		"package":        upd.Package,
		"serviceDate":    upd.ServiceDate,
		"timeSlot":       upd.TimeSlot,
		"park":           upd.Park,
		"locationRegion": upd.LocationRegion,
		"eventType":      upd.EventType,
	}
	return r.findOneAndUpdate(ctx, id, set)
}

// UpdateStatus sets the status field of a reservation and returns the
// updated document.  No transition rules apply; any status may replace any
// other.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id, status string) (*model.Reservation, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"status": status})
}

func (r *ReservationRepo) findOneAndUpdate(ctx context.Context, id string, set bson.M) (*model.Reservation, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var res model.Reservation
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete removes a reservation and returns the removed document, or
// ErrNotFound when no reservation with the id exists.
func (r *ReservationRepo) Delete(ctx context.Context, id string) (*model.Reservation, error) {
	var res model.Reservation
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}
