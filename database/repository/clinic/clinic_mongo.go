package clinicRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinicore/database"
	"clinicore/models"
	"clinicore/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	clinicKeyPrefix = "clinic:"
	doctorKeyPrefix = "doctor:"
	// Reference records change rarely; a short TTL keeps affiliation checks
	// cheap without risking stale availability (slots are never cached).
	referenceCacheTTL = 5 * time.Minute
)

// MongoClinicRepo implements ClinicRepository with a redis read-through cache
// for clinic and doctor reference records.
type MongoClinicRepo struct {
	clinicColl *mongo.Collection
	doctorColl *mongo.Collection
	cache      *redis.Client
}

// NewMongoClinicRepo constructs a new instance of MongoClinicRepo.
func NewMongoClinicRepo() *MongoClinicRepo {
	return &MongoClinicRepo{
		clinicColl: database.Collection("clinics"),
		doctorColl: database.Collection("doctors"),
		cache:      utils.GetCacheClient(),
	}
}

func (r *MongoClinicRepo) GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error) {
	key := clinicKeyPrefix + clinicID
	if cached, err := r.cache.Get(ctx, key).Result(); err == nil {
		var clinic models.Clinic
		if err := json.Unmarshal([]byte(cached), &clinic); err == nil {
			return &clinic, nil
		}
	}

	var clinic models.Clinic
	if err := r.clinicColl.FindOne(ctx, bson.M{"id": clinicID}).Decode(&clinic); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching clinic %s: %w", clinicID, err)
	}

	if data, err := json.Marshal(clinic); err == nil {
		r.cache.Set(ctx, key, data, referenceCacheTTL)
	}
	return &clinic, nil
}

func (r *MongoClinicRepo) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	key := doctorKeyPrefix + doctorID
	if cached, err := r.cache.Get(ctx, key).Result(); err == nil {
		var doctor models.Doctor
		if err := json.Unmarshal([]byte(cached), &doctor); err == nil {
			return &doctor, nil
		}
	}

	var doctor models.Doctor
	if err := r.doctorColl.FindOne(ctx, bson.M{"id": doctorID}).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching doctor %s: %w", doctorID, err)
	}

	if data, err := json.Marshal(doctor); err == nil {
		r.cache.Set(ctx, key, data, referenceCacheTTL)
	}
	return &doctor, nil
}
