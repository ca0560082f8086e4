// Package derive holds the pure field computations shared by the event card
// and full event aggregates. Everything here is deterministic and
// timezone-naive: dates are calendar days, times are wall-clock strings.
package derive

import "time"

const dateLayout = "2006-01-02"

// AvailableSeats returns total minus booked, clamped at zero.
func AvailableSeats(totalSeats, validatedBookings int) int {
	available := totalSeats - validatedBookings
	if available < 0 {
		return 0
	}
	return available
}

// SpansWeekend reports whether the inclusive day range [start, end] contains
// a Saturday or Sunday. Dates are yyyy-mm-dd strings; a missing or malformed
// bound yields false. The scan is day-by-day on calendar dates, never on
// timestamps.
func SpansWeekend(startDate, endDate *string) bool {
	if startDate == nil || endDate == nil {
		return false
	}
	start, err := time.Parse(dateLayout, trimToDate(*startDate))
	if err != nil {
		return false
	}
	end, err := time.Parse(dateLayout, trimToDate(*endDate))
	if err != nil {
		return false
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			return true
		}
	}
	return false
}

// WholeDay reports whether the event covers the full day: a start of
// midnight (or unset) through an end of 23:59:59 (or unset).
func WholeDay(startTime, endTime *string) bool {
	startEmpty := startTime == nil || *startTime == "" || *startTime == "00:00:00"
	endEmpty := endTime == nil || *endTime == "" || *endTime == "23:59:59"
	return startEmpty && endEmpty
}

// FormatHHMM truncates an HH:MM:SS wall-clock string to HH:MM. Nil passes
// through so unset times stay null in responses.
func FormatHHMM(t *string) *string {
	if t == nil || *t == "" {
		return nil
	}
	s := *t
	if len(s) > 5 {
		s = s[:5]
	}
	return &s
}

// trimToDate keeps only the leading yyyy-mm-dd of a date or datetime string.
func trimToDate(s string) string {
	if len(s) > len(dateLayout) {
		return s[:len(dateLayout)]
	}
	return s
}
