package clinicops

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"clinicore/models"
	"clinicore/services/booking"
	"clinicore/utils"

	clinicRepo "clinicore/database/repository/clinic"
)

const (
	minSlotDuration = 5 // minutes
	dateLayout      = "2006-01-02"
)

// CreateScheduleWindow validates and persists a new recurring window.
// Existing windows are never mutated; a schedule change deactivates the old
// window and creates a replacement.
func (s *DefaultClinicOpsService) CreateScheduleWindow(ctx context.Context, req CreateWindowRequest) (*models.ScheduleWindow, error) {
	if err := s.checkAffiliation(ctx, req.ClinicID, req.DoctorID); err != nil {
		return nil, err
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, booking.NewValidationError("dayOfWeek must be between 0 (Sunday) and 6 (Saturday)")
	}
	if req.Start < 0 || req.End > 24*60 || req.Start >= req.End {
		return nil, booking.NewValidationError("window start must precede end within a single day")
	}
	if req.SlotDurationMin < minSlotDuration {
		return nil, booking.NewValidationError(fmt.Sprintf("slotDurationMin must be at least %d", minSlotDuration))
	}
	if req.MaxPatientsPerSlot < 1 {
		return nil, booking.NewValidationError("maxPatientsPerSlot must be at least 1")
	}
	if !validDate(req.EffectiveFrom) {
		return nil, booking.NewValidationError(fmt.Sprintf("invalid effectiveFrom %q, expected YYYY-MM-DD", req.EffectiveFrom))
	}
	if req.EffectiveTo != "" {
		if !validDate(req.EffectiveTo) {
			return nil, booking.NewValidationError(fmt.Sprintf("invalid effectiveTo %q, expected YYYY-MM-DD", req.EffectiveTo))
		}
		if req.EffectiveTo < req.EffectiveFrom {
			return nil, booking.NewValidationError("effectiveTo must not precede effectiveFrom")
		}
	}

	w := &models.ScheduleWindow{
		ID:                 uuid.New().String(),
		ClinicID:           req.ClinicID,
		DoctorID:           req.DoctorID,
		DayOfWeek:          req.DayOfWeek,
		Start:              req.Start,
		End:                req.End,
		SlotDurationMin:    req.SlotDurationMin,
		MaxPatientsPerSlot: req.MaxPatientsPerSlot,
		EffectiveFrom:      req.EffectiveFrom,
		EffectiveTo:        req.EffectiveTo,
		Active:             true,
	}
	if err := s.Schedules.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create schedule window: %w", err)
	}
	utils.GetLogger().Info("schedule window created",
		zap.String("windowId", w.ID),
		zap.String("clinicId", w.ClinicID),
		zap.String("doctorId", w.DoctorID),
		zap.Int("dayOfWeek", w.DayOfWeek),
	)
	return w, nil
}

// DeactivateScheduleWindow supersedes a window. Already-booked appointments
// keep their slots; the window just stops producing new availability.
func (s *DefaultClinicOpsService) DeactivateScheduleWindow(ctx context.Context, id string) error {
	if err := s.Schedules.Deactivate(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return booking.NewNotFoundError(fmt.Sprintf("schedule window %s not found", id))
		}
		return fmt.Errorf("failed to deactivate schedule window %s: %w", id, err)
	}
	return nil
}

func (s *DefaultClinicOpsService) ListScheduleWindows(ctx context.Context, clinicID, doctorID string) ([]models.ScheduleWindow, error) {
	if clinicID == "" || doctorID == "" {
		return nil, booking.NewValidationError("clinicId and doctorId are required")
	}
	return s.Schedules.ListByDoctor(ctx, clinicID, doctorID)
}

// checkAffiliation verifies the clinic and doctor exist, are active, and are
// affiliated.
func (s *DefaultClinicOpsService) checkAffiliation(ctx context.Context, clinicID, doctorID string) error {
	if clinicID == "" || doctorID == "" {
		return booking.NewValidationError("clinicId and doctorId are required")
	}
	clinic, err := s.Clinics.GetClinic(ctx, clinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			return booking.NewNotFoundError(fmt.Sprintf("clinic %s not found", clinicID))
		}
		return fmt.Errorf("failed to load clinic %s: %w", clinicID, err)
	}
	if !clinic.Active {
		return booking.NewNotFoundError(fmt.Sprintf("clinic %s not found", clinicID))
	}
	doctor, err := s.Clinics.GetDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			return booking.NewNotFoundError(fmt.Sprintf("doctor %s not found", doctorID))
		}
		return fmt.Errorf("failed to load doctor %s: %w", doctorID, err)
	}
	if !doctor.Active {
		return booking.NewNotFoundError(fmt.Sprintf("doctor %s not found", doctorID))
	}
	if !doctor.AffiliatedWith(clinicID) {
		return booking.NewInvalidAffiliationError(fmt.Sprintf("doctor %s is not affiliated with clinic %s", doctorID, clinicID))
	}
	return nil
}

func validDate(date string) bool {
	t, err := time.Parse(dateLayout, date)
	return err == nil && t.Format(dateLayout) == date
}
