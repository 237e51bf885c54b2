package clinicRepo

import (
	"context"
	"errors"

	"clinicore/models"
)

// ErrNotFound signals an unknown clinic or doctor id.
var ErrNotFound = errors.New("record not found")

// ClinicRepository provides read access to the clinic and doctor directory.
// Record management is owned by the external clinic-operations module.
type ClinicRepository interface {
	GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error)
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)
}
