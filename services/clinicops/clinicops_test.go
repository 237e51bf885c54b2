package clinicops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"clinicore/models"
	"clinicore/services/booking"

	clinicRepo "clinicore/database/repository/clinic"
)

type memScheduleRepo struct {
	windows []models.ScheduleWindow
}

func (m *memScheduleRepo) Create(ctx context.Context, w *models.ScheduleWindow) error {
	m.windows = append(m.windows, *w)
	return nil
}

func (m *memScheduleRepo) Deactivate(ctx context.Context, id string) error {
	for i := range m.windows {
		if m.windows[i].ID == id {
			m.windows[i].Active = false
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memScheduleRepo) ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.ScheduleWindow, error) {
	return m.windows, nil
}

func (m *memScheduleRepo) ActiveWindowsForDate(ctx context.Context, clinicID, doctorID, date string, dayOfWeek int) ([]models.ScheduleWindow, error) {
	return nil, nil
}

type memLeaveRepo struct {
	leaves []models.LeaveException
}

func (m *memLeaveRepo) Create(ctx context.Context, l *models.LeaveException) error {
	m.leaves = append(m.leaves, *l)
	return nil
}

func (m *memLeaveRepo) Delete(ctx context.Context, id string) error {
	for i := range m.leaves {
		if m.leaves[i].ID == id {
			m.leaves = append(m.leaves[:i], m.leaves[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memLeaveRepo) ListForDate(ctx context.Context, clinicID, doctorID, date string) ([]models.LeaveException, error) {
	return nil, nil
}

func (m *memLeaveRepo) ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.LeaveException, error) {
	return m.leaves, nil
}

type memClinicRepo struct {
	clinics map[string]models.Clinic
	doctors map[string]models.Doctor
}

func (m *memClinicRepo) GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error) {
	c, ok := m.clinics[clinicID]
	if !ok {
		return nil, clinicRepo.ErrNotFound
	}
	return &c, nil
}

func (m *memClinicRepo) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	d, ok := m.doctors[doctorID]
	if !ok {
		return nil, clinicRepo.ErrNotFound
	}
	return &d, nil
}

func newTestOpsService() (*DefaultClinicOpsService, *memScheduleRepo, *memLeaveRepo) {
	schedules := &memScheduleRepo{}
	leaves := &memLeaveRepo{}
	clinics := &memClinicRepo{
		clinics: map[string]models.Clinic{"cl1": {ID: "cl1", Active: true}},
		doctors: map[string]models.Doctor{"doc1": {ID: "doc1", ClinicIDs: []string{"cl1"}, Active: true}},
	}
	return NewDefaultClinicOpsService(schedules, leaves, clinics), schedules, leaves
}

func validWindowRequest() CreateWindowRequest {
	return CreateWindowRequest{
		ClinicID: "cl1", DoctorID: "doc1", DayOfWeek: 1,
		Start: 540, End: 720, SlotDurationMin: 30, MaxPatientsPerSlot: 2,
		EffectiveFrom: "2025-01-01",
	}
}

func TestCreateScheduleWindow(t *testing.T) {
	svc, schedules, _ := newTestOpsService()

	w, err := svc.CreateScheduleWindow(context.Background(), validWindowRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	assert.True(t, w.Active)
	require.Len(t, schedules.windows, 1)
}

func TestCreateScheduleWindowValidation(t *testing.T) {
	svc, _, _ := newTestOpsService()

	cases := map[string]func(*CreateWindowRequest){
		"day of week out of range": func(r *CreateWindowRequest) { r.DayOfWeek = 7 },
		"negative day of week":     func(r *CreateWindowRequest) { r.DayOfWeek = -1 },
		"start after end":          func(r *CreateWindowRequest) { r.Start, r.End = 720, 540 },
		"start equals end":         func(r *CreateWindowRequest) { r.End = r.Start },
		"end past midnight":        func(r *CreateWindowRequest) { r.End = 1441 },
		"slot duration too small":  func(r *CreateWindowRequest) { r.SlotDurationMin = 4 },
		"zero capacity":            func(r *CreateWindowRequest) { r.MaxPatientsPerSlot = 0 },
		"effectiveTo before from":  func(r *CreateWindowRequest) { r.EffectiveTo = "2024-12-31" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validWindowRequest()
			mutate(&req)
			_, err := svc.CreateScheduleWindow(context.Background(), req)
			assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
		})
	}
}

func TestCreateScheduleWindowBadDates(t *testing.T) {
	svc, _, _ := newTestOpsService()

	req := validWindowRequest()
	req.EffectiveFrom = "01-01-2025"
	_, err := svc.CreateScheduleWindow(context.Background(), req)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))

	req = validWindowRequest()
	req.EffectiveTo = "2025/06/01"
	_, err = svc.CreateScheduleWindow(context.Background(), req)
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}

func TestCreateScheduleWindowAffiliation(t *testing.T) {
	svc, _, _ := newTestOpsService()

	req := validWindowRequest()
	req.ClinicID = "ghost"
	_, err := svc.CreateScheduleWindow(context.Background(), req)
	assert.Equal(t, booking.CodeNotFound, booking.CodeOf(err))

	svc.Clinics.(*memClinicRepo).clinics["cl2"] = models.Clinic{ID: "cl2", Active: true}
	req = validWindowRequest()
	req.ClinicID = "cl2"
	_, err = svc.CreateScheduleWindow(context.Background(), req)
	assert.Equal(t, booking.CodeInvalidAffiliation, booking.CodeOf(err))
}

func TestDeactivateScheduleWindow(t *testing.T) {
	svc, schedules, _ := newTestOpsService()
	w, err := svc.CreateScheduleWindow(context.Background(), validWindowRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateScheduleWindow(context.Background(), w.ID))
	assert.False(t, schedules.windows[0].Active)

	err = svc.DeactivateScheduleWindow(context.Background(), "ghost")
	assert.Equal(t, booking.CodeNotFound, booking.CodeOf(err))
}

func TestCreateFullDayLeave(t *testing.T) {
	svc, _, leaves := newTestOpsService()

	l, err := svc.CreateLeave(context.Background(), CreateLeaveRequest{
		ClinicID: "cl1", DoctorID: "doc1", LeaveDate: "2025-06-01", WholeDay: true, Reason: "conference",
	})

	require.NoError(t, err)
	assert.True(t, l.Scope.WholeDay)
	require.Len(t, leaves.leaves, 1)
}

func TestCreatePartialDayLeave(t *testing.T) {
	svc, _, _ := newTestOpsService()

	l, err := svc.CreateLeave(context.Background(), CreateLeaveRequest{
		ClinicID: "cl1", DoctorID: "doc1", LeaveDate: "2025-06-01", Start: 600, End: 660,
	})

	require.NoError(t, err)
	assert.False(t, l.Scope.WholeDay)
	assert.Equal(t, 600, l.Scope.Start)
	assert.Equal(t, 660, l.Scope.End)
}

func TestCreatePartialDayLeaveValidation(t *testing.T) {
	svc, _, _ := newTestOpsService()

	_, err := svc.CreateLeave(context.Background(), CreateLeaveRequest{
		ClinicID: "cl1", DoctorID: "doc1", LeaveDate: "2025-06-01", Start: 660, End: 600,
	})
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))

	_, err = svc.CreateLeave(context.Background(), CreateLeaveRequest{
		ClinicID: "cl1", DoctorID: "doc1", LeaveDate: "2025-06-01", Start: 600, End: 600,
	})
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))

	_, err = svc.CreateLeave(context.Background(), CreateLeaveRequest{
		ClinicID: "cl1", DoctorID: "doc1", LeaveDate: "bad-date", WholeDay: true,
	})
	assert.Equal(t, booking.CodeValidation, booking.CodeOf(err))
}

func TestDeleteLeave(t *testing.T) {
	svc, _, leaves := newTestOpsService()
	l, err := svc.CreateLeave(context.Background(), CreateLeaveRequest{
		ClinicID: "cl1", DoctorID: "doc1", LeaveDate: "2025-06-01", WholeDay: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLeave(context.Background(), l.ID))
	assert.Empty(t, leaves.leaves)

	err = svc.DeleteLeave(context.Background(), "ghost")
	assert.Equal(t, booking.CodeNotFound, booking.CodeOf(err))
}
