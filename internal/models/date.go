package models

import "time"

// DateLayout is the calendar-date format used for persisted dates and for
// dates on the wire.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
// All entity dates are compared at day granularity.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a Day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
