package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicore/models"

	appointmentRepo "clinicore/database/repository/appointment"
	clinicRepo "clinicore/database/repository/clinic"
)

// GetAvailableSlots computes the bookable view for one doctor and date. The
// result is derived fresh on every call; reading it changes nothing, so two
// back-to-back calls with no intervening writes return the same answer.
func (s *DefaultBookingService) GetAvailableSlots(ctx context.Context, clinicID, doctorID, date string) (*models.DayAvailability, error) {
	if clinicID == "" || doctorID == "" {
		return nil, NewValidationError("clinicId and doctorId are required")
	}
	day, ok := parseDate(date)
	if !ok {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	today := formatDate(s.Now())
	if date < today {
		return nil, NewInvalidDateError(fmt.Sprintf("date %s is in the past", date))
	}
	if _, _, err := s.resolveAffiliation(ctx, clinicID, doctorID); err != nil {
		return nil, err
	}
	return s.computeDay(ctx, clinicID, doctorID, date, day)
}

// resolveAffiliation loads the clinic and doctor and verifies the doctor
// practices there. Inactive records are treated as absent.
func (s *DefaultBookingService) resolveAffiliation(ctx context.Context, clinicID, doctorID string) (*models.Clinic, *models.Doctor, error) {
	clinic, err := s.Clinics.GetClinic(ctx, clinicID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			return nil, nil, NewNotFoundError(fmt.Sprintf("clinic %s not found", clinicID))
		}
		return nil, nil, fmt.Errorf("failed to load clinic %s: %w", clinicID, err)
	}
	if !clinic.Active {
		return nil, nil, NewNotFoundError(fmt.Sprintf("clinic %s not found", clinicID))
	}
	doctor, err := s.Clinics.GetDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, clinicRepo.ErrNotFound) {
			return nil, nil, NewNotFoundError(fmt.Sprintf("doctor %s not found", doctorID))
		}
		return nil, nil, fmt.Errorf("failed to load doctor %s: %w", doctorID, err)
	}
	if !doctor.Active {
		return nil, nil, NewNotFoundError(fmt.Sprintf("doctor %s not found", doctorID))
	}
	if !doctor.AffiliatedWith(clinicID) {
		return nil, nil, NewInvalidAffiliationError(fmt.Sprintf("doctor %s is not affiliated with clinic %s", doctorID, clinicID))
	}
	return clinic, doctor, nil
}

// computeDay builds the derived slot view: windows sliced into slots, then
// each slot marked against leaves, booked counts and the same-day lead time.
func (s *DefaultBookingService) computeDay(ctx context.Context, clinicID, doctorID, date string, day time.Time) (*models.DayAvailability, error) {
	windows, err := s.Schedules.ActiveWindowsForDate(ctx, clinicID, doctorID, date, int(day.Weekday()))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schedule windows: %w", err)
	}
	result := &models.DayAvailability{
		Date:          date,
		ScheduleFound: len(windows) > 0,
		Slots:         []models.TimeSlot{},
	}
	if len(windows) == 0 {
		return result, nil
	}

	for _, w := range windows {
		result.Slots = append(result.Slots, GenerateSlots(w)...)
	}

	leaves, err := s.Leaves.ListForDate(ctx, clinicID, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load leave exceptions: %w", err)
	}
	counts, err := s.Ledger.ActiveSlotCounts(ctx, clinicID, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked counts: %w", err)
	}

	now := s.Now()
	sameDay := date == formatDate(now)
	cutoff := minutesOfDay(now) + s.LeadTimeMin

	for i := range result.Slots {
		slot := &result.Slots[i]
		slot.BookedCount = counts[appointmentRepo.SlotRange{Start: slot.Start, End: slot.End}]

		if blocked(leaves, slot.Start, slot.End) {
			slot.Available = false
			slot.Reason = models.SlotReasonLeave
			continue
		}
		if slot.BookedCount >= slot.Capacity {
			slot.Available = false
			slot.Reason = models.SlotReasonFull
			continue
		}
		if sameDay && slot.Start < cutoff {
			slot.Available = false
			slot.Reason = models.SlotReasonLeadTime
		}
	}
	return result, nil
}

func blocked(leaves []models.LeaveException, slotStart, slotEnd int) bool {
	for _, l := range leaves {
		if l.Scope.Blocks(slotStart, slotEnd) {
			return true
		}
	}
	return false
}
