package leaveRepo

import (
	"context"

	"clinicore/models"
)

// LeaveRepository is the read/write store for one-off availability
// exceptions. Like schedules, the engine only reads; the clinic-operations
// service writes.
type LeaveRepository interface {
	Create(ctx context.Context, l *models.LeaveException) error
	Delete(ctx context.Context, id string) error
	// ListForDate returns every exception for a doctor on a date. All of
	// them apply: a slot is blocked if any exception covers it.
	ListForDate(ctx context.Context, clinicID, doctorID, date string) ([]models.LeaveException, error)
	ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.LeaveException, error)
}
