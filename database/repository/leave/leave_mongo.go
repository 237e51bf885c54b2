package leaveRepo

import (
	"context"
	"fmt"

	"clinicore/database"
	"clinicore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoLeaveRepo implements LeaveRepository using MongoDB.
type MongoLeaveRepo struct {
	coll *mongo.Collection
}

// NewMongoLeaveRepo constructs a new instance of MongoLeaveRepo.
func NewMongoLeaveRepo() *MongoLeaveRepo {
	return &MongoLeaveRepo{coll: database.Collection("leave_exceptions")}
}

// EnsureIndexes creates the per-doctor date lookup index.
func (r *MongoLeaveRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "clinicId", Value: 1},
			{Key: "doctorId", Value: 1},
			{Key: "leaveDate", Value: 1},
		}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create leave indexes: %w", err)
	}
	return nil
}

func (r *MongoLeaveRepo) Create(ctx context.Context, l *models.LeaveException) error {
	if _, err := r.coll.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("error creating leave exception: %w", err)
	}
	return nil
}

func (r *MongoLeaveRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting leave exception %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoLeaveRepo) ListForDate(ctx context.Context, clinicID, doctorID, date string) ([]models.LeaveException, error) {
	filter := bson.M{"clinicId": clinicID, "doctorId": doctorID, "leaveDate": date}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching leave exceptions: %w", err)
	}
	defer cursor.Close(ctx)

	var leaves []models.LeaveException
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("error decoding leave exceptions: %w", err)
	}
	return leaves, nil
}

func (r *MongoLeaveRepo) ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.LeaveException, error) {
	filter := bson.M{"clinicId": clinicID, "doctorId": doctorID}
	opts := options.Find().SetSort(bson.D{{Key: "leaveDate", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing leave exceptions: %w", err)
	}
	defer cursor.Close(ctx)

	var leaves []models.LeaveException
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("error decoding leave exceptions: %w", err)
	}
	return leaves, nil
}
