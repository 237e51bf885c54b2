package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinicore/models"
	"clinicore/utils"

	appointmentRepo "clinicore/database/repository/appointment"
	patientRepo "clinicore/database/repository/patient"
)

// BookSlot books one online appointment. The availability view is recomputed
// here as a cheap pre-check, but the authoritative capacity decision happens
// inside the slot-locked transaction in commitAppointment: a stale view can
// only produce a retry or a SLOT_FULL, never an overbooked slot.
func (s *DefaultBookingService) BookSlot(ctx context.Context, req BookSlotRequest) (*models.Appointment, error) {
	if req.ClinicID == "" || req.DoctorID == "" || req.PatientID == "" {
		return nil, NewValidationError("clinicId, doctorId and patientId are required")
	}
	if _, ok := parseDate(req.Date); !ok {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date))
	}

	if _, _, err := s.resolveAffiliation(ctx, req.ClinicID, req.DoctorID); err != nil {
		return nil, err
	}
	if _, err := s.Patients.GetByID(ctx, req.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("patient %s not found", req.PatientID))
		}
		return nil, fmt.Errorf("failed to load patient %s: %w", req.PatientID, err)
	}

	view, err := s.GetAvailableSlots(ctx, req.ClinicID, req.DoctorID, req.Date)
	if err != nil {
		return nil, err
	}
	if !view.ScheduleFound {
		return nil, NewNotFoundError(fmt.Sprintf("doctor %s has no schedule on %s", req.DoctorID, req.Date))
	}
	slot := findSlot(view.Slots, req.SlotStart)
	if slot == nil {
		return nil, NewValidationError(fmt.Sprintf("no slot starts at %s on %s", models.FormatMinutes(req.SlotStart), req.Date))
	}
	if !slot.Available {
		switch slot.Reason {
		case models.SlotReasonLeave:
			return nil, NewValidationError("slot is blocked by a leave exception")
		case models.SlotReasonLeadTime:
			return nil, NewValidationError("slot is too close to the current time")
		default:
			return nil, NewSlotFullError("slot is fully booked")
		}
	}

	now := s.Now()
	appt := &models.Appointment{
		ID:             uuid.New().String(),
		ClinicID:       req.ClinicID,
		DoctorID:       req.DoctorID,
		PatientID:      req.PatientID,
		Date:           req.Date,
		SlotStart:      slot.Start,
		SlotEnd:        slot.End,
		Status:         models.StatusScheduled,
		Source:         models.SourceOnline,
		ChiefComplaint: req.ChiefComplaint,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.commitAppointment(ctx, appt, slot.Capacity, false); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("clinicId", appt.ClinicID),
		zap.String("doctorId", appt.DoctorID),
		zap.String("date", appt.Date),
		zap.Int("slotStart", appt.SlotStart),
	)
	return appt, nil
}

// commitAppointment inserts the appointment inside a transaction serialized
// on its slot key. capacity > 0 enforces the occupancy cap; withToken
// allocates the next queue token from the ledger's current maximum. Both
// reads and the insert commit atomically, so concurrent writers either
// conflict (and retry against fresh state) or observe each other's commits.
func (s *DefaultBookingService) commitAppointment(ctx context.Context, appt *models.Appointment, capacity int, withToken bool) error {
	key := appointmentRepo.SlotKey{
		ClinicID:  appt.ClinicID,
		DoctorID:  appt.DoctorID,
		Date:      appt.Date,
		SlotStart: appt.SlotStart,
		SlotEnd:   appt.SlotEnd,
	}
	retries := s.MaxRetries
	if retries < 1 {
		retries = 1
	}
	for attempt := 0; attempt < retries; attempt++ {
		appt.TokenNumber = 0
		err := s.Ledger.WithSlotLock(ctx, key, func(txCtx context.Context) error {
			if capacity > 0 {
				count, err := s.Ledger.CountActiveForSlot(txCtx, key)
				if err != nil {
					return err
				}
				if count >= capacity {
					return NewSlotFullError("slot is fully booked")
				}
			}
			if withToken {
				max, err := s.Ledger.MaxTokenNumber(txCtx, appt.ClinicID, appt.Date)
				if err != nil {
					return err
				}
				appt.TokenNumber = max + 1
			}
			return s.Ledger.Insert(txCtx, appt)
		})
		if err == nil {
			return nil
		}
		var ee *EngineError
		if errors.As(err, &ee) {
			return err
		}
		if errors.Is(err, appointmentRepo.ErrTxnConflict) {
			utils.GetLogger().Debug("booking transaction conflict, retrying",
				zap.String("appointmentId", appt.ID),
				zap.Int("attempt", attempt+1),
			)
			time.Sleep(time.Duration(attempt+1) * 5 * time.Millisecond)
			continue
		}
		return fmt.Errorf("failed to commit appointment: %w", err)
	}
	return NewConflictError("could not complete booking due to concurrent activity, please retry")
}

func findSlot(slots []models.TimeSlot, start int) *models.TimeSlot {
	for i := range slots {
		if slots[i].Start == start {
			return &slots[i]
		}
	}
	return nil
}
