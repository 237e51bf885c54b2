package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicore/models"
)

func bookTestAppointment(t *testing.T, svc *DefaultBookingService) *models.Appointment {
	t.Helper()
	appt, err := svc.BookSlot(context.Background(), BookSlotRequest{
		ClinicID: "cl1", DoctorID: "doc1", PatientID: "pat1",
		Date: nextMonday, SlotStart: 600,
	})
	require.NoError(t, err)
	return appt
}

func TestTransitionStatusForwardPath(t *testing.T) {
	svc, _, _ := newTestService()
	appt := bookTestAppointment(t, svc)

	for _, next := range []models.AppointmentStatus{
		models.StatusCheckedIn, models.StatusInProgress, models.StatusCompleted,
	} {
		updated, err := svc.TransitionStatus(context.Background(), appt.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}
}

func TestTransitionStatusCannotSkipStates(t *testing.T) {
	svc, _, _ := newTestService()
	appt := bookTestAppointment(t, svc)

	_, err := svc.TransitionStatus(context.Background(), appt.ID, models.StatusInProgress)
	assert.Equal(t, CodeValidation, CodeOf(err))

	_, err = svc.TransitionStatus(context.Background(), appt.ID, models.StatusCompleted)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestTransitionStatusRejectsCancelShortcut(t *testing.T) {
	svc, _, _ := newTestService()
	appt := bookTestAppointment(t, svc)

	_, err := svc.TransitionStatus(context.Background(), appt.ID, models.StatusCancelled)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestTransitionStatusUnknownAppointment(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.TransitionStatus(context.Background(), "ghost", models.StatusCheckedIn)
	assert.Equal(t, CodeNotFound, CodeOf(err))
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	svc, _, _ := newTestService()

	for _, advance := range [][]models.AppointmentStatus{
		nil,
		{models.StatusCheckedIn},
		{models.StatusCheckedIn, models.StatusInProgress},
	} {
		appt := bookTestAppointment(t, svc)
		for _, next := range advance {
			_, err := svc.TransitionStatus(context.Background(), appt.ID, next)
			require.NoError(t, err)
		}

		cancelled, err := svc.CancelAppointment(context.Background(), appt.ID, "schedule change")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, cancelled.Status)
		assert.Equal(t, "schedule change", cancelled.CancelReason)

		// The slot seat frees up for the next iteration's booking.
	}
}

func TestCancelTerminalAppointmentRejected(t *testing.T) {
	svc, _, _ := newTestService()
	appt := bookTestAppointment(t, svc)

	_, err := svc.CancelAppointment(context.Background(), appt.ID, "first")
	require.NoError(t, err)

	_, err = svc.CancelAppointment(context.Background(), appt.ID, "second")
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestTransitionAfterTerminalRejected(t *testing.T) {
	svc, _, _ := newTestService()
	appt := bookTestAppointment(t, svc)

	_, err := svc.CancelAppointment(context.Background(), appt.ID, "done")
	require.NoError(t, err)

	_, err = svc.TransitionStatus(context.Background(), appt.ID, models.StatusCheckedIn)
	assert.Equal(t, CodeValidation, CodeOf(err))
}

func TestCancelAfterConcurrentCompletionRejected(t *testing.T) {
	svc, ledger, _ := newTestService()
	appt := bookTestAppointment(t, svc)

	// The whole visit completes between the cancel's read and its write.
	ledger.beforeStatusWrite = func() {
		for _, next := range []models.AppointmentStatus{
			models.StatusCheckedIn, models.StatusInProgress, models.StatusCompleted,
		} {
			_, err := svc.TransitionStatus(context.Background(), appt.ID, next)
			require.NoError(t, err)
		}
	}

	_, err := svc.CancelAppointment(context.Background(), appt.ID, "patient request")
	assert.Equal(t, CodeValidation, CodeOf(err))

	final, err := ledger.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, final.Status)
}

func TestTransitionAfterConcurrentCancelRejected(t *testing.T) {
	svc, ledger, _ := newTestService()
	appt := bookTestAppointment(t, svc)

	// A cancel lands between the check-in's read and its write. The stale
	// check-in must not resurrect the cancelled appointment.
	ledger.beforeStatusWrite = func() {
		_, err := svc.CancelAppointment(context.Background(), appt.ID, "patient request")
		require.NoError(t, err)
	}

	_, err := svc.TransitionStatus(context.Background(), appt.ID, models.StatusCheckedIn)
	assert.Equal(t, CodeConcurrencyConflict, CodeOf(err))

	final, err := ledger.GetByID(context.Background(), appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, final.Status)
}

func TestSweepNoShows(t *testing.T) {
	svc, ledger, _ := newTestService()
	ledger.appts = append(ledger.appts,
		models.Appointment{ID: "old1", ClinicID: "cl1", DoctorID: "doc1", Date: "2025-03-03", SlotStart: 600, SlotEnd: 630, Status: models.StatusScheduled},
		models.Appointment{ID: "old2", ClinicID: "cl1", DoctorID: "doc1", Date: "2025-03-03", SlotStart: 630, SlotEnd: 660, Status: models.StatusCompleted},
		models.Appointment{ID: "cur1", ClinicID: "cl1", DoctorID: "doc1", Date: today, SlotStart: 600, SlotEnd: 630, Status: models.StatusScheduled},
	)

	swept, err := svc.SweepNoShows(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, swept)

	old1, err := ledger.GetByID(context.Background(), "old1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, old1.Status)
	assert.Equal(t, "no-show", old1.CancelReason)

	cur1, err := ledger.GetByID(context.Background(), "cur1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, cur1.Status)
}
