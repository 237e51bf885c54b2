package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicore/database"
	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	apptColl *mongo.Collection
	lockColl *mongo.Collection
}

// NewMongoLedgerRepo constructs a new instance of MongoLedgerRepo.
func NewMongoLedgerRepo() *MongoLedgerRepo {
	return &MongoLedgerRepo{
		apptColl: database.Collection("appointments"),
		lockColl: database.Collection("slot_locks"),
	}
}

func activeStatusFilter() bson.M {
	return bson.M{"$in": models.ActiveStatuses}
}

func (r *MongoLedgerRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	if _, err := r.apptColl.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("error inserting appointment: %w", err)
	}
	return nil
}

func (r *MongoLedgerRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.apptColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoLedgerRepo) ListForDay(ctx context.Context, clinicID, doctorID, date string) ([]models.Appointment, error) {
	filter := bson.M{"clinicId": clinicID, "doctorId": doctorID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "slotStart", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := r.apptColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (r *MongoLedgerRepo) ListQueue(ctx context.Context, clinicID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"clinicId":    clinicID,
		"date":        date,
		"tokenNumber": bson.M{"$gt": 0},
	}
	opts := options.Find().SetSort(bson.D{{Key: "tokenNumber", Value: 1}})
	cursor, err := r.apptColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing day queue: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding day queue: %w", err)
	}
	return appts, nil
}

func (r *MongoLedgerRepo) CountActiveForSlot(ctx context.Context, key SlotKey) (int, error) {
	filter := bson.M{
		"clinicId":  key.ClinicID,
		"doctorId":  key.DoctorID,
		"date":      key.Date,
		"slotStart": key.SlotStart,
		"slotEnd":   key.SlotEnd,
		"status":    activeStatusFilter(),
	}
	n, err := r.apptColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting slot occupancy: %w", err)
	}
	return int(n), nil
}

// ActiveSlotCounts groups non-terminal appointments by exact slot range
// using an aggregation pipeline.
func (r *MongoLedgerRepo) ActiveSlotCounts(ctx context.Context, clinicID, doctorID, date string) (map[SlotRange]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"clinicId": clinicID,
			"doctorId": doctorID,
			"date":     date,
			"status":   activeStatusFilter(),
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"start": "$slotStart", "end": "$slotEnd"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.apptColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating slot counts: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID struct {
			Start int `bson:"start"`
			End   int `bson:"end"`
		} `bson:"_id"`
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding slot counts: %w", err)
	}

	counts := make(map[SlotRange]int, len(results))
	for _, res := range results {
		counts[SlotRange{Start: res.ID.Start, End: res.ID.End}] = res.Count
	}
	return counts, nil
}

func (r *MongoLedgerRepo) MaxTokenNumber(ctx context.Context, clinicID, date string) (int, error) {
	filter := bson.M{
		"clinicId":    clinicID,
		"date":        date,
		"tokenNumber": bson.M{"$gt": 0},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "tokenNumber", Value: -1}})

	var top models.Appointment
	err := r.apptColl.FindOne(ctx, filter, opts).Decode(&top)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("error reading max token: %w", err)
	}
	return top.TokenNumber, nil
}

func (r *MongoLedgerRepo) UpdateStatus(ctx context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus, reason string) (*models.Appointment, error) {
	set := bson.M{"status": to, "updatedAt": time.Now()}
	if reason != "" {
		set["cancelReason"] = reason
	}
	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Appointment
	err := r.apptColl.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// No match means either an unknown id or a concurrent status
			// change; a second lookup tells them apart.
			if err := r.apptColl.FindOne(ctx, bson.M{"id": id}).Err(); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					return nil, ErrNotFound
				}
				return nil, fmt.Errorf("error re-reading appointment %s: %w", id, err)
			}
			return nil, ErrStatusChanged
		}
		return nil, fmt.Errorf("error updating appointment status: %w", err)
	}
	return &updated, nil
}

func (r *MongoLedgerRepo) ListStaleScheduled(ctx context.Context, before string) ([]models.Appointment, error) {
	filter := bson.M{
		"status": models.StatusScheduled,
		"date":   bson.M{"$lt": before},
	}
	cursor, err := r.apptColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing stale appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding stale appointments: %w", err)
	}
	return appts, nil
}
