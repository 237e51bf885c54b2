package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"clinicore/models"
	"clinicore/utils"

	appointmentRepo "clinicore/database/repository/appointment"
)

// GetAppointment fetches one appointment by id.
func (s *DefaultBookingService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Ledger.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, NewNotFoundError(fmt.Sprintf("appointment %s not found", id))
		}
		return nil, fmt.Errorf("failed to load appointment %s: %w", id, err)
	}
	return appt, nil
}

// ListAppointments returns a doctor's full day, all statuses, ordered by
// slot start.
func (s *DefaultBookingService) ListAppointments(ctx context.Context, clinicID, doctorID, date string) ([]models.Appointment, error) {
	if clinicID == "" || doctorID == "" {
		return nil, NewValidationError("clinicId and doctorId are required")
	}
	if _, ok := parseDate(date); !ok {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	return s.Ledger.ListForDay(ctx, clinicID, doctorID, date)
}

// GetQueue returns the clinic's token-holding appointments for a date in
// token order: the walk-in queue as the front desk sees it.
func (s *DefaultBookingService) GetQueue(ctx context.Context, clinicID, date string) ([]models.Appointment, error) {
	if clinicID == "" {
		return nil, NewValidationError("clinicId is required")
	}
	if _, ok := parseDate(date); !ok {
		return nil, NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}
	return s.Ledger.ListQueue(ctx, clinicID, date)
}

// TransitionStatus advances an appointment through the forward-only state
// machine. Cancellation goes through CancelAppointment so a reason is
// recorded.
func (s *DefaultBookingService) TransitionStatus(ctx context.Context, id string, next models.AppointmentStatus) (*models.Appointment, error) {
	if next == models.StatusCancelled {
		return nil, NewValidationError("use the cancel operation to cancel an appointment")
	}
	appt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.CanTransitionTo(next) {
		return nil, NewValidationError(fmt.Sprintf("cannot transition appointment from %s to %s", appt.Status, next))
	}
	from := []models.AppointmentStatus{appt.Status}
	updated, err := s.Ledger.UpdateStatus(ctx, id, from, next, "")
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			return nil, NewConflictError(fmt.Sprintf("appointment %s changed concurrently, re-read and retry", id))
		}
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	utils.GetLogger().Info("appointment status updated",
		zap.String("appointmentId", id),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(next)),
	)
	return updated, nil
}

// CancelAppointment cancels any non-terminal appointment. The record stays
// in the ledger with its token; only its capacity claim is released, since
// occupancy counts consider active statuses only.
func (s *DefaultBookingService) CancelAppointment(ctx context.Context, id, reason string) (*models.Appointment, error) {
	appt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, NewValidationError(fmt.Sprintf("appointment is already %s", appt.Status))
	}
	updated, err := s.Ledger.UpdateStatus(ctx, id, models.ActiveStatuses, models.StatusCancelled, reason)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			current, gerr := s.GetAppointment(ctx, id)
			if gerr != nil {
				return nil, gerr
			}
			return nil, NewValidationError(fmt.Sprintf("appointment is already %s", current.Status))
		}
		return nil, fmt.Errorf("failed to cancel appointment %s: %w", id, err)
	}
	utils.GetLogger().Info("appointment cancelled",
		zap.String("appointmentId", id),
		zap.String("reason", reason),
	)
	return updated, nil
}

// SweepNoShows cancels SCHEDULED appointments whose date has passed. Run
// nightly; returns the number of appointments swept.
func (s *DefaultBookingService) SweepNoShows(ctx context.Context) (int, error) {
	today := formatDate(s.Now())
	stale, err := s.Ledger.ListStaleScheduled(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale appointments: %w", err)
	}
	swept := 0
	scheduledOnly := []models.AppointmentStatus{models.StatusScheduled}
	for _, appt := range stale {
		if _, err := s.Ledger.UpdateStatus(ctx, appt.ID, scheduledOnly, models.StatusCancelled, "no-show"); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusChanged) {
				continue
			}
			utils.GetLogger().Warn("failed to sweep no-show",
				zap.String("appointmentId", appt.ID),
				zap.Error(err),
			)
			continue
		}
		swept++
	}
	if swept > 0 {
		utils.GetLogger().Info("no-show sweep complete", zap.Int("swept", swept))
	}
	return swept, nil
}
