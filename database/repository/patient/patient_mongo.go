package patientRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicore/database"
	"clinicore/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs a new instance of MongoPatientRepo.
func NewMongoPatientRepo() *MongoPatientRepo {
	return &MongoPatientRepo{coll: database.Collection("patients")}
}

// EnsureIndexes creates the unique phone index that backs find-or-create.
func (r *MongoPatientRepo) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create patient indexes: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) GetByID(ctx context.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.coll.FindOne(ctx, bson.M{"id": patientID}).Decode(&patient); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching patient %s: %w", patientID, err)
	}
	return &patient, nil
}

func (r *MongoPatientRepo) FindOrCreateByPhone(ctx context.Context, name, phone string) (*models.Patient, error) {
	var patient models.Patient
	err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&patient)
	if err == nil {
		return &patient, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error looking up patient by phone: %w", err)
	}

	patient = models.Patient{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		// Lost a creation race on the unique phone index; the other
		// writer's record is the one to use.
		if mongo.IsDuplicateKeyError(err) {
			var existing models.Patient
			if err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&existing); err != nil {
				return nil, fmt.Errorf("error re-fetching patient after race: %w", err)
			}
			return &existing, nil
		}
		return nil, fmt.Errorf("error creating patient: %w", err)
	}
	return &patient, nil
}
