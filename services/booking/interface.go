package booking

import (
	"context"
	"time"

	"clinicore/models"

	appointmentRepo "clinicore/database/repository/appointment"
	clinicRepo "clinicore/database/repository/clinic"
	leaveRepo "clinicore/database/repository/leave"
	patientRepo "clinicore/database/repository/patient"
	scheduleRepo "clinicore/database/repository/schedule"
)

// BookSlotRequest is the input for an online booking.
type BookSlotRequest struct {
	ClinicID       string `json:"clinicId"`
	DoctorID       string `json:"doctorId"`
	PatientID      string `json:"patientId"`
	Date           string `json:"date"` // "YYYY-MM-DD"
	SlotStart      int    `json:"slotStart"`
	ChiefComplaint string `json:"chiefComplaint,omitempty"`
}

// WalkInRequest registers a same-day walk-in. The patient is either an
// existing id or a name+phone pair to find-or-create.
type WalkInRequest struct {
	ClinicID       string            `json:"clinicId"`
	DoctorID       string            `json:"doctorId"`
	Patient        models.PatientRef `json:"patient"`
	ChiefComplaint string            `json:"chiefComplaint,omitempty"`
}

// BookingService is the appointment engine's full surface: availability
// reads, booking and walk-in writes, and lifecycle transitions.
type BookingService interface {
	GetAvailableSlots(ctx context.Context, clinicID, doctorID, date string) (*models.DayAvailability, error)
	BookSlot(ctx context.Context, req BookSlotRequest) (*models.Appointment, error)
	RegisterWalkIn(ctx context.Context, req WalkInRequest) (*models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, clinicID, doctorID, date string) ([]models.Appointment, error)
	GetQueue(ctx context.Context, clinicID, date string) ([]models.Appointment, error)
	TransitionStatus(ctx context.Context, id string, next models.AppointmentStatus) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, id, reason string) (*models.Appointment, error)
	SweepNoShows(ctx context.Context) (int, error)
}

// DefaultBookingService implements BookingService. The ledger is the only
// source of truth for occupancy and tokens; availability is recomputed from
// schedules, leaves and the ledger on every read.
type DefaultBookingService struct {
	Schedules scheduleRepo.ScheduleRepository
	Leaves    leaveRepo.LeaveRepository
	Ledger    appointmentRepo.LedgerRepository
	Clinics   clinicRepo.ClinicRepository
	Patients  patientRepo.PatientRepository

	// Now is the clock, injectable for lead-time tests.
	Now func() time.Time

	LeadTimeMin   int // minimum minutes between now and a bookable slot today
	WalkInSlotMin int // width of the synthetic walk-in slot
	MaxRetries    int // bounded retries on transaction conflicts
}

// NewDefaultBookingService wires the engine with its repositories and the
// configured booking policy knobs.
func NewDefaultBookingService(
	schedules scheduleRepo.ScheduleRepository,
	leaves leaveRepo.LeaveRepository,
	ledger appointmentRepo.LedgerRepository,
	clinics clinicRepo.ClinicRepository,
	patients patientRepo.PatientRepository,
	leadTimeMin, walkInSlotMin, maxRetries int,
) *DefaultBookingService {
	return &DefaultBookingService{
		Schedules:     schedules,
		Leaves:        leaves,
		Ledger:        ledger,
		Clinics:       clinics,
		Patients:      patients,
		Now:           time.Now,
		LeadTimeMin:   leadTimeMin,
		WalkInSlotMin: walkInSlotMin,
		MaxRetries:    maxRetries,
	}
}
