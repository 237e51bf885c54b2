package models

import "fmt"

// Unavailability reasons attached to computed slots so callers can render
// "fully booked" or "on leave" instead of hiding the slot.
const (
	SlotReasonLeave    = "leave"
	SlotReasonFull     = "full"
	SlotReasonLeadTime = "lead_time"
)

// TimeSlot is the derived per-date availability view for one bookable slot.
// It is computed on every query and never persisted or cached: leaves and
// bookings can change between any two reads.
type TimeSlot struct {
	Start       int    `json:"start"` // minutes from midnight
	End         int    `json:"end"`
	Label       string `json:"label"` // e.g. "09:00 - 09:15"
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	Available   bool   `json:"available"`
	Reason      string `json:"reason,omitempty"` // set when unavailable
}

// DayAvailability is the full availability answer for one doctor and date.
// ScheduleFound distinguishes "no windows configured for this weekday" (a
// valid empty result) from an actual error.
type DayAvailability struct {
	Date          string     `json:"date"`
	ScheduleFound bool       `json:"scheduleFound"`
	Slots         []TimeSlot `json:"slots"`
}

// FormatMinutes renders minutes-from-midnight as "HH:MM" for presentation.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SlotLabel renders a slot range as "HH:MM - HH:MM".
func SlotLabel(start, end int) string {
	return FormatMinutes(start) + " - " + FormatMinutes(end)
}
