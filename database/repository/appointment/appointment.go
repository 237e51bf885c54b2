package appointmentRepo

import (
	"context"
	"errors"

	"clinicore/models"
)

// ErrNotFound signals an unknown appointment id.
var ErrNotFound = errors.New("appointment not found")

// ErrStatusChanged signals that a conditional status update matched the
// appointment id but not the expected current status: another writer moved
// the appointment first.
var ErrStatusChanged = errors.New("appointment status changed concurrently")

// ErrTxnConflict signals that the transaction was aborted by the isolation
// mechanism (write conflict on the slot lock, or a duplicate token at
// commit). Callers retry a bounded number of times.
var ErrTxnConflict = errors.New("booking transaction conflict")

// SlotKey identifies the contention domain for one bookable slot. Writers
// targeting the same key serialize against each other; writers on different
// keys proceed concurrently.
type SlotKey struct {
	ClinicID  string
	DoctorID  string
	Date      string // "YYYY-MM-DD"
	SlotStart int
	SlotEnd   int
}

// SlotRange keys per-slot booking counts within one doctor-day.
type SlotRange struct {
	Start int
	End   int
}

// LedgerRepository is the durable store of confirmed appointments, the
// source of truth for what is already booked. All mutations that consume
// capacity or tokens run inside WithSlotLock so the count/max reads and the
// insert commit as one atomic unit.
type LedgerRepository interface {
	Insert(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListForDay(ctx context.Context, clinicID, doctorID, date string) ([]models.Appointment, error)
	// ListQueue returns the day's token-holding appointments ordered by token.
	ListQueue(ctx context.Context, clinicID, date string) ([]models.Appointment, error)
	// CountActiveForSlot counts non-terminal appointments for the exact slot.
	CountActiveForSlot(ctx context.Context, key SlotKey) (int, error)
	// ActiveSlotCounts aggregates non-terminal appointment counts per exact
	// slot range for one doctor-day.
	ActiveSlotCounts(ctx context.Context, clinicID, doctorID, date string) (map[SlotRange]int, error)
	// MaxTokenNumber returns the highest token issued for (clinic, date), or
	// zero when none exist. The token value is always derived from the
	// ledger, never from a separate counter.
	MaxTokenNumber(ctx context.Context, clinicID, date string) (int, error)
	// UpdateStatus writes the new status only if the appointment's current
	// status is one of from, so a stale in-memory check can never clobber a
	// concurrent transition. A live document in an unexpected status yields
	// ErrStatusChanged.
	UpdateStatus(ctx context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus, reason string) (*models.Appointment, error)
	// ListStaleScheduled returns SCHEDULED appointments dated strictly
	// before the given date (for the no-show sweep).
	ListStaleScheduled(ctx context.Context, before string) ([]models.Appointment, error)
	// WithSlotLock runs fn inside a transaction serialized on the slot key.
	// Reads and writes issued through the ctx passed to fn commit
	// all-or-nothing; a conflicting concurrent writer surfaces as
	// ErrTxnConflict.
	WithSlotLock(ctx context.Context, key SlotKey, fn func(ctx context.Context) error) error
}
