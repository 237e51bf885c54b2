package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"clinicore/models"

	appointmentRepo "clinicore/database/repository/appointment"
	clinicRepo "clinicore/database/repository/clinic"
	patientRepo "clinicore/database/repository/patient"
)

type fakeScheduleRepo struct {
	windows []models.ScheduleWindow
}

func (f *fakeScheduleRepo) Create(ctx context.Context, w *models.ScheduleWindow) error {
	f.windows = append(f.windows, *w)
	return nil
}

func (f *fakeScheduleRepo) Deactivate(ctx context.Context, id string) error {
	for i := range f.windows {
		if f.windows[i].ID == id {
			f.windows[i].Active = false
			return nil
		}
	}
	return fmt.Errorf("window %s not found", id)
}

func (f *fakeScheduleRepo) ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.ScheduleWindow, error) {
	var out []models.ScheduleWindow
	for _, w := range f.windows {
		if w.ClinicID == clinicID && w.DoctorID == doctorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ActiveWindowsForDate(ctx context.Context, clinicID, doctorID, date string, dayOfWeek int) ([]models.ScheduleWindow, error) {
	var out []models.ScheduleWindow
	for _, w := range f.windows {
		if w.ClinicID == clinicID && w.DoctorID == doctorID && w.Active && w.DayOfWeek == dayOfWeek && w.CoversDate(date) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}

type fakeLeaveRepo struct {
	leaves []models.LeaveException
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l *models.LeaveException) error {
	f.leaves = append(f.leaves, *l)
	return nil
}

func (f *fakeLeaveRepo) Delete(ctx context.Context, id string) error {
	for i := range f.leaves {
		if f.leaves[i].ID == id {
			f.leaves = append(f.leaves[:i], f.leaves[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("leave %s not found", id)
}

func (f *fakeLeaveRepo) ListForDate(ctx context.Context, clinicID, doctorID, date string) ([]models.LeaveException, error) {
	var out []models.LeaveException
	for _, l := range f.leaves {
		if l.ClinicID == clinicID && l.DoctorID == doctorID && l.LeaveDate == date {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByDoctor(ctx context.Context, clinicID, doctorID string) ([]models.LeaveException, error) {
	var out []models.LeaveException
	for _, l := range f.leaves {
		if l.ClinicID == clinicID && l.DoctorID == doctorID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeClinicRepo struct {
	clinics map[string]models.Clinic
	doctors map[string]models.Doctor
}

func (f *fakeClinicRepo) GetClinic(ctx context.Context, clinicID string) (*models.Clinic, error) {
	c, ok := f.clinics[clinicID]
	if !ok {
		return nil, clinicRepo.ErrNotFound
	}
	return &c, nil
}

func (f *fakeClinicRepo) GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error) {
	d, ok := f.doctors[doctorID]
	if !ok {
		return nil, clinicRepo.ErrNotFound
	}
	return &d, nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[string]models.Patient
}

func newFakePatientRepo(patients ...models.Patient) *fakePatientRepo {
	f := &fakePatientRepo{patients: make(map[string]models.Patient)}
	for _, p := range patients {
		f.patients[p.ID] = p
	}
	return f
}

func (f *fakePatientRepo) GetByID(ctx context.Context, patientID string) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.patients[patientID]
	if !ok {
		return nil, patientRepo.ErrNotFound
	}
	return &p, nil
}

func (f *fakePatientRepo) FindOrCreateByPhone(ctx context.Context, name, phone string) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.patients {
		if p.Phone == phone {
			return &p, nil
		}
	}
	p := models.Patient{ID: uuid.New().String(), Name: name, Phone: phone, CreatedAt: time.Now()}
	f.patients[p.ID] = p
	return &p, nil
}

// fakeLedger is an in-memory stand-in for the Mongo ledger. WithSlotLock
// serializes transactions with a mutex, so the read-check-insert sequence
// inside fn is atomic with respect to other transactions, matching the real
// repository's isolation. conflictsToInject forces the first N transactions
// to fail with ErrTxnConflict for retry tests.
type fakeLedger struct {
	txmu  sync.Mutex
	mu    sync.Mutex
	appts []models.Appointment

	conflictsToInject int

	// beforeStatusWrite, when set, runs once before the next UpdateStatus
	// applies, outside the data lock. Tests use it to interleave a competing
	// lifecycle change between a caller's read and its write.
	beforeStatusWrite func()
}

func (f *fakeLedger) Insert(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if appt.TokenNumber > 0 {
		for _, a := range f.appts {
			if a.ClinicID == appt.ClinicID && a.Date == appt.Date && a.TokenNumber == appt.TokenNumber {
				return fmt.Errorf("duplicate token %d", appt.TokenNumber)
			}
		}
	}
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeLedger) ListForDay(ctx context.Context, clinicID, doctorID, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ClinicID == clinicID && a.DoctorID == doctorID && a.Date == date {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlotStart < out[j].SlotStart })
	return out, nil
}

func (f *fakeLedger) ListQueue(ctx context.Context, clinicID, date string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ClinicID == clinicID && a.Date == date && a.TokenNumber > 0 {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TokenNumber < out[j].TokenNumber })
	return out, nil
}

func (f *fakeLedger) CountActiveForSlot(ctx context.Context, key appointmentRepo.SlotKey) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, a := range f.appts {
		if a.ClinicID == key.ClinicID && a.DoctorID == key.DoctorID && a.Date == key.Date &&
			a.SlotStart == key.SlotStart && a.SlotEnd == key.SlotEnd && a.Status.Active() {
			count++
		}
	}
	return count, nil
}

func (f *fakeLedger) ActiveSlotCounts(ctx context.Context, clinicID, doctorID, date string) (map[appointmentRepo.SlotRange]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[appointmentRepo.SlotRange]int)
	for _, a := range f.appts {
		if a.ClinicID == clinicID && a.DoctorID == doctorID && a.Date == date && a.Status.Active() {
			counts[appointmentRepo.SlotRange{Start: a.SlotStart, End: a.SlotEnd}]++
		}
	}
	return counts, nil
}

func (f *fakeLedger) MaxTokenNumber(ctx context.Context, clinicID, date string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, a := range f.appts {
		if a.ClinicID == clinicID && a.Date == date && a.TokenNumber > max {
			max = a.TokenNumber
		}
	}
	return max, nil
}

func (f *fakeLedger) UpdateStatus(ctx context.Context, id string, from []models.AppointmentStatus, to models.AppointmentStatus, reason string) (*models.Appointment, error) {
	if hook := f.beforeStatusWrite; hook != nil {
		f.beforeStatusWrite = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appts {
		if f.appts[i].ID != id {
			continue
		}
		matched := false
		for _, s := range from {
			if f.appts[i].Status == s {
				matched = true
				break
			}
		}
		if !matched {
			return nil, appointmentRepo.ErrStatusChanged
		}
		f.appts[i].Status = to
		if reason != "" {
			f.appts[i].CancelReason = reason
		}
		f.appts[i].UpdatedAt = time.Now()
		out := f.appts[i]
		return &out, nil
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeLedger) ListStaleScheduled(ctx context.Context, before string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Status == models.StatusScheduled && a.Date < before {
			out = append(out, a)
		}
	}
	return out, nil
}

func slotKeyFor(clinicID, doctorID, date string, start, end int) appointmentRepo.SlotKey {
	return appointmentRepo.SlotKey{ClinicID: clinicID, DoctorID: doctorID, Date: date, SlotStart: start, SlotEnd: end}
}

func (f *fakeLedger) WithSlotLock(ctx context.Context, key appointmentRepo.SlotKey, fn func(ctx context.Context) error) error {
	f.txmu.Lock()
	defer f.txmu.Unlock()
	if f.conflictsToInject > 0 {
		f.conflictsToInject--
		return fmt.Errorf("%w: injected", appointmentRepo.ErrTxnConflict)
	}
	return fn(ctx)
}
