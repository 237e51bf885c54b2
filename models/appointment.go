package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled  AppointmentStatus = "SCHEDULED"
	StatusCheckedIn  AppointmentStatus = "CHECKED_IN"
	StatusInProgress AppointmentStatus = "IN_PROGRESS"
	StatusCompleted  AppointmentStatus = "COMPLETED"
	StatusCancelled  AppointmentStatus = "CANCELLED"
)

// ActiveStatuses are the states that occupy slot capacity. Terminal
// appointments (completed or cancelled) free their slot but keep their token.
var ActiveStatuses = []AppointmentStatus{StatusScheduled, StatusCheckedIn, StatusInProgress}

// Terminal reports whether no further transitions are allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active reports whether the appointment still occupies slot capacity.
func (s AppointmentStatus) Active() bool {
	switch s {
	case StatusScheduled, StatusCheckedIn, StatusInProgress:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only state machine:
// SCHEDULED → CHECKED_IN → IN_PROGRESS → COMPLETED, with CANCELLED reachable
// from any non-terminal state. No transition skips a state.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	switch s {
	case StatusScheduled:
		return next == StatusCheckedIn
	case StatusCheckedIn:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

// AppointmentSource records how the appointment entered the system.
type AppointmentSource string

const (
	SourceOnline AppointmentSource = "ONLINE"
	SourceWalkIn AppointmentSource = "WALK_IN"
)

// Appointment is the booking ledger's unit of record.
type Appointment struct {
	ID        string `bson:"id" json:"id"`
	ClinicID  string `bson:"clinicId" json:"clinicId"`
	DoctorID  string `bson:"doctorId" json:"doctorId"`
	PatientID string `bson:"patientId" json:"patientId"`
	Date      string `bson:"date" json:"date"`           // "YYYY-MM-DD"
	SlotStart int    `bson:"slotStart" json:"slotStart"` // minutes from midnight
	SlotEnd   int    `bson:"slotEnd" json:"slotEnd"`

	Status AppointmentStatus `bson:"status" json:"status"`
	Source AppointmentSource `bson:"source" json:"source"`

	// TokenNumber is the same-day queue position for walk-ins: unique per
	// (clinic, date) and contiguous in commit order. Zero means none; the
	// field is omitted from storage so the partial unique index only sees
	// appointments that actually hold a token.
	TokenNumber int `bson:"tokenNumber,omitempty" json:"tokenNumber,omitempty"`

	ChiefComplaint string    `bson:"chiefComplaint,omitempty" json:"chiefComplaint,omitempty"`
	CancelReason   string    `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
