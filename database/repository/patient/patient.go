package patientRepo

import (
	"context"
	"errors"

	"clinicore/models"
)

// ErrNotFound signals an unknown patient id or phone.
var ErrNotFound = errors.New("patient not found")

// PatientRepository is the narrow slice of the patient directory the engine
// needs: lookups by id, and find-or-create by phone for walk-ins.
type PatientRepository interface {
	GetByID(ctx context.Context, patientID string) (*models.Patient, error)
	// FindOrCreateByPhone resolves a patient by phone, creating a minimal
	// record when none exists. Phone numbers are unique; a concurrent
	// creation race resolves to the winning record.
	FindOrCreateByPhone(ctx context.Context, name, phone string) (*models.Patient, error)
}
