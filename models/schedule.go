package models

// ScheduleWindow is one recurring weekly availability block for a doctor at a
// clinic. A doctor may have several windows on the same weekday (e.g. a
// morning and an evening block). Windows are superseded, not mutated: a
// schedule change deactivates the old window and creates a new one.
type ScheduleWindow struct {
	ID        string `bson:"id" json:"id"`
	ClinicID  string `bson:"clinicId" json:"clinicId"`
	DoctorID  string `bson:"doctorId" json:"doctorId"`
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	Start     int    `bson:"start" json:"start"`         // minutes from midnight (e.g., 540 for 9:00 AM)
	End       int    `bson:"end" json:"end"`             // minutes from midnight
	// SlotDurationMin divides the window into discrete slots; trailing
	// minutes that don't fit a whole slot are dropped.
	SlotDurationMin    int    `bson:"slotDurationMin" json:"slotDurationMin"`
	MaxPatientsPerSlot int    `bson:"maxPatientsPerSlot" json:"maxPatientsPerSlot"`
	EffectiveFrom      string `bson:"effectiveFrom" json:"effectiveFrom"`                 // "YYYY-MM-DD"
	EffectiveTo        string `bson:"effectiveTo,omitempty" json:"effectiveTo,omitempty"` // empty = open-ended
	Active             bool   `bson:"active" json:"active"`
}

// CoversDate reports whether the window's effective range includes date.
// Dates are "YYYY-MM-DD" so lexicographic comparison is chronological.
func (w ScheduleWindow) CoversDate(date string) bool {
	if w.EffectiveFrom > date {
		return false
	}
	return w.EffectiveTo == "" || w.EffectiveTo >= date
}
