package appointmentRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the ledger indexes. The partial unique index on
// (clinicId, date, tokenNumber) is the backstop for token allocation: if two
// transactions ever commit the same token for one clinic-day, the second
// insert fails with a duplicate key instead of corrupting the queue.
// tokenNumber is omitempty, so online bookings without a token carry no
// tokenNumber field and the partial filter skips them.
func (r *MongoLedgerRepo) EnsureIndexes(ctx context.Context) error {
	apptModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "clinicId", Value: 1},
			{Key: "doctorId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "status", Value: 1},
		}},
		{
			Keys: bson.D{
				{Key: "clinicId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "tokenNumber", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"tokenNumber": bson.M{"$gt": 0}}),
		},
	}
	if _, err := r.apptColl.Indexes().CreateMany(ctx, apptModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	lockModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "clinicId", Value: 1},
				{Key: "doctorId", Value: 1},
				{Key: "date", Value: 1},
				{Key: "slotStart", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.lockColl.Indexes().CreateMany(ctx, lockModels); err != nil {
		return fmt.Errorf("failed to create slot lock indexes: %w", err)
	}
	return nil
}
