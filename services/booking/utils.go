package booking

import "time"

const dateLayout = "2006-01-02"

// parseDate validates the canonical "YYYY-MM-DD" form.
func parseDate(date string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, date)
	if err != nil || t.Format(dateLayout) != date {
		return time.Time{}, false
	}
	return t, true
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// minutesOfDay converts a wall-clock instant to minutes from midnight.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
