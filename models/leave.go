package models

// LeaveScope distinguishes a full-day exception from a partial-day range.
// Modeling this as a variant instead of two nullable time fields keeps the
// "both-or-neither" rule out of runtime convention: construct scopes through
// FullDay() or PartialDay() and the invariant holds.
type LeaveScope struct {
	WholeDay bool `bson:"wholeDay" json:"wholeDay"`
	Start    int  `bson:"start,omitempty" json:"start,omitempty"` // minutes from midnight; meaningful only when !WholeDay
	End      int  `bson:"end,omitempty" json:"end,omitempty"`
}

// FullDay returns a scope blocking the entire day.
func FullDay() LeaveScope {
	return LeaveScope{WholeDay: true}
}

// PartialDay returns a scope blocking only the [start, end) range.
func PartialDay(start, end int) LeaveScope {
	return LeaveScope{Start: start, End: end}
}

// Blocks reports whether the slot [slotStart, slotEnd) falls under this
// scope. Intervals are half-open: touching boundaries do not overlap, so a
// 10:00-10:30 leave leaves a 10:30-11:00 slot bookable.
func (s LeaveScope) Blocks(slotStart, slotEnd int) bool {
	if s.WholeDay {
		return true
	}
	return slotStart < s.End && slotEnd > s.Start
}

// LeaveException is a one-off exception to a doctor's recurring schedule.
// Multiple exceptions may exist for the same doctor and date; a slot is
// blocked if any of them covers it.
type LeaveException struct {
	ID        string     `bson:"id" json:"id"`
	ClinicID  string     `bson:"clinicId" json:"clinicId"`
	DoctorID  string     `bson:"doctorId" json:"doctorId"`
	LeaveDate string     `bson:"leaveDate" json:"leaveDate"` // "YYYY-MM-DD"
	Scope     LeaveScope `bson:"scope" json:"scope"`
	Reason    string     `bson:"reason,omitempty" json:"reason,omitempty"`
}
