package scheduleRepo

import (
	"context"
	"fmt"

	"clinicore/database"
	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() *MongoScheduleRepo {
	return &MongoScheduleRepo{coll: database.Collection("schedule_windows")}
}

// EnsureIndexes creates the indexes backing per-doctor date resolution.
func (r *MongoScheduleRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "clinicId", Value: 1},
			{Key: "doctorId", Value: 1},
			{Key: "dayOfWeek", Value: 1},
		}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) Create(ctx context.Context, w *models.ScheduleWindow) error {
	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("error creating schedule window: %w", err)
	}
	return nil
}

func (r *MongoScheduleRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("error deactivating schedule window %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoScheduleRepo) ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.ScheduleWindow, error) {
	filter := bson.M{"clinicId": clinicID, "doctorId": doctorID}
	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing schedule windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.ScheduleWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding schedule windows: %w", err)
	}
	return windows, nil
}

// ActiveWindowsForDate filters on weekday and effective range. Dates are
// "YYYY-MM-DD" strings so range comparisons are plain string comparisons.
func (r *MongoScheduleRepo) ActiveWindowsForDate(ctx context.Context, clinicID, doctorID, date string, dayOfWeek int) ([]models.ScheduleWindow, error) {
	filter := bson.M{
		"clinicId":      clinicID,
		"doctorId":      doctorID,
		"dayOfWeek":     dayOfWeek,
		"active":        true,
		"effectiveFrom": bson.M{"$lte": date},
		"$or": bson.A{
			bson.M{"effectiveTo": bson.M{"$exists": false}},
			bson.M{"effectiveTo": ""},
			bson.M{"effectiveTo": bson.M{"$gte": date}},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error resolving active windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.ScheduleWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding active windows: %w", err)
	}
	return windows, nil
}
