package scheduleRepo

import (
	"context"

	"clinicore/models"
)

// ScheduleRepository is the read/write store for recurring weekly
// availability windows. The booking engine only reads; writes come from the
// clinic-operations service.
type ScheduleRepository interface {
	// Create persists a new window.
	Create(ctx context.Context, w *models.ScheduleWindow) error
	// Deactivate supersedes a window without deleting its history.
	Deactivate(ctx context.Context, id string) error
	// ListByDoctor returns every window (active or not) for a doctor at a clinic.
	ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.ScheduleWindow, error)
	// ActiveWindowsForDate resolves the windows in effect for a doctor on a
	// concrete date, ordered by start time.
	ActiveWindowsForDate(ctx context.Context, clinicID, doctorID, date string, dayOfWeek int) ([]models.ScheduleWindow, error)
}
