package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"clinicore/models"
	"clinicore/utils"

	patientRepo "clinicore/database/repository/patient"
)

// RegisterWalkIn admits a same-day walk-in: a synthetic slot anchored at the
// current time, a gap-free queue token allocated from the ledger, and an
// appointment that starts life CHECKED_IN because the patient is already at
// the desk. The clinic's WalkInSlotCapacity caps concurrent walk-ins per
// synthetic slot when positive; at zero only the token allocation is
// serialized.
func (s *DefaultBookingService) RegisterWalkIn(ctx context.Context, req WalkInRequest) (*models.Appointment, error) {
	if req.ClinicID == "" || req.DoctorID == "" {
		return nil, NewValidationError("clinicId and doctorId are required")
	}
	clinic, _, err := s.resolveAffiliation(ctx, req.ClinicID, req.DoctorID)
	if err != nil {
		return nil, err
	}
	patient, err := s.resolvePatient(ctx, req.Patient)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	start := minutesOfDay(now)
	end := start + s.WalkInSlotMin
	if end > 24*60 {
		end = 24 * 60
	}

	appt := &models.Appointment{
		ID:             uuid.New().String(),
		ClinicID:       req.ClinicID,
		DoctorID:       req.DoctorID,
		PatientID:      patient.ID,
		Date:           formatDate(now),
		SlotStart:      start,
		SlotEnd:        end,
		Status:         models.StatusCheckedIn,
		Source:         models.SourceWalkIn,
		ChiefComplaint: req.ChiefComplaint,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.commitAppointment(ctx, appt, clinic.WalkInSlotCapacity, true); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("walk-in registered",
		zap.String("appointmentId", appt.ID),
		zap.String("clinicId", appt.ClinicID),
		zap.String("doctorId", appt.DoctorID),
		zap.Int("tokenNumber", appt.TokenNumber),
	)
	return appt, nil
}

// resolvePatient accepts either an existing patient id or a name+phone pair
// to find-or-create in the directory.
func (s *DefaultBookingService) resolvePatient(ctx context.Context, ref models.PatientRef) (*models.Patient, error) {
	if ref.PatientID != "" {
		patient, err := s.Patients.GetByID(ctx, ref.PatientID)
		if err != nil {
			if errors.Is(err, patientRepo.ErrNotFound) {
				return nil, NewNotFoundError(fmt.Sprintf("patient %s not found", ref.PatientID))
			}
			return nil, fmt.Errorf("failed to load patient %s: %w", ref.PatientID, err)
		}
		return patient, nil
	}
	if ref.Name == "" || ref.Phone == "" {
		return nil, NewValidationError("patient requires either patientId or name and phone")
	}
	patient, err := s.Patients.FindOrCreateByPhone(ctx, ref.Name, ref.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve patient by phone: %w", err)
	}
	return patient, nil
}
