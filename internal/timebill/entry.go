package timebill

import "time"

// DateLayout is the ISO calendar date used for keys and output tables.
const DateLayout = "2006-01-02"

// Entry is one parsed log line.
type Entry struct {
	Date     time.Time // UTC midnight
	Category string
	Minutes  int64
	Line     int
}

// Day truncates t to UTC midnight of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses an ISO date, zero padding optional.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(inputDateLayout, s)
}

// FormatDay renders the ISO key of a date.
func FormatDay(t time.Time) string {
	return t.Format(DateLayout)
}
