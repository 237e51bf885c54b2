package booking

import "clinicore/models"

// GenerateSlots divides a window into consecutive fixed-width slots. Only
// whole slots are produced: a 09:00-10:10 window with 30-minute slots yields
// 09:00 and 09:30, and the trailing 10 minutes are dropped. An invalid
// duration or an empty window yields no slots.
func GenerateSlots(w models.ScheduleWindow) []models.TimeSlot {
	if w.SlotDurationMin <= 0 || w.Start >= w.End {
		return nil
	}
	var slots []models.TimeSlot
	for start := w.Start; start+w.SlotDurationMin <= w.End; start += w.SlotDurationMin {
		end := start + w.SlotDurationMin
		slots = append(slots, models.TimeSlot{
			Start:     start,
			End:       end,
			Label:     models.SlotLabel(start, end),
			Capacity:  w.MaxPatientsPerSlot,
			Available: true,
		})
	}
	return slots
}
