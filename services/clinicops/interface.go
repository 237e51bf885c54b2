package clinicops

import (
	"context"

	"clinicore/models"

	clinicRepo "clinicore/database/repository/clinic"
	leaveRepo "clinicore/database/repository/leave"
	scheduleRepo "clinicore/database/repository/schedule"
)

// CreateWindowRequest is the input for a new recurring schedule window.
type CreateWindowRequest struct {
	ClinicID           string `json:"clinicId"`
	DoctorID           string `json:"doctorId"`
	DayOfWeek          int    `json:"dayOfWeek"`
	Start              int    `json:"start"`
	End                int    `json:"end"`
	SlotDurationMin    int    `json:"slotDurationMin"`
	MaxPatientsPerSlot int    `json:"maxPatientsPerSlot"`
	EffectiveFrom      string `json:"effectiveFrom"`
	EffectiveTo        string `json:"effectiveTo,omitempty"`
}

// CreateLeaveRequest is the input for a one-off leave exception. WholeDay
// true ignores Start/End; otherwise both are required.
type CreateLeaveRequest struct {
	ClinicID  string `json:"clinicId"`
	DoctorID  string `json:"doctorId"`
	LeaveDate string `json:"leaveDate"`
	WholeDay  bool   `json:"wholeDay"`
	Start     int    `json:"start,omitempty"`
	End       int    `json:"end,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// ClinicOpsService manages the schedule and leave data the booking engine
// reads. Writes validate the invariants availability computation relies on,
// so bad windows never reach the slot generator.
type ClinicOpsService interface {
	CreateScheduleWindow(ctx context.Context, req CreateWindowRequest) (*models.ScheduleWindow, error)
	DeactivateScheduleWindow(ctx context.Context, id string) error
	ListScheduleWindows(ctx context.Context, clinicID, doctorID string) ([]models.ScheduleWindow, error)
	CreateLeave(ctx context.Context, req CreateLeaveRequest) (*models.LeaveException, error)
	DeleteLeave(ctx context.Context, id string) error
	ListLeaves(ctx context.Context, clinicID, doctorID string) ([]models.LeaveException, error)
}

// DefaultClinicOpsService implements ClinicOpsService.
type DefaultClinicOpsService struct {
	Schedules scheduleRepo.ScheduleRepository
	Leaves    leaveRepo.LeaveRepository
	Clinics   clinicRepo.ClinicRepository
}

// NewDefaultClinicOpsService wires the service with its repositories.
func NewDefaultClinicOpsService(
	schedules scheduleRepo.ScheduleRepository,
	leaves leaveRepo.LeaveRepository,
	clinics clinicRepo.ClinicRepository,
) *DefaultClinicOpsService {
	return &DefaultClinicOpsService{
		Schedules: schedules,
		Leaves:    leaves,
		Clinics:   clinics,
	}
}
