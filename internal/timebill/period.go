package timebill

import (
	"fmt"
	"time"
)

// WeekStart is the weekday periods open on: 0=Monday through 6=Sunday.
type WeekStart int

// DefaultWeekStart opens periods on Thursday.
const DefaultWeekStart WeekStart = 3

func (w WeekStart) Valid() bool { return w >= 0 && w <= 6 }

// Weekday converts to the time package's Sunday-based numbering.
func (w WeekStart) Weekday() time.Weekday { return time.Weekday((int(w) + 1) % 7) }

func (w WeekStart) String() string { return w.Weekday().String() }

// WeekStartOf converts a time.Weekday to a WeekStart.
func WeekStartOf(wd time.Weekday) WeekStart { return WeekStart((int(wd) + 6) % 7) }

// AggregatePeriods sums daily rows into periods of the given number of weeks.
//
// Period boundaries sit on the week-start weekday. Days before the first
// boundary form a shorter leading period; after that every period spans
// 7*weeks days. A new period opens at the first day on or after the end of
// the open one; if a gap in the daily rows skips that boundary the grid
// still advances from the nominal end and empty slots become zero periods.
// The last period ends the day after the last row.
func AggregatePeriods(daily Series, weeks int, start WeekStart) (Series, error) {
	out := Series{Categories: daily.Categories}
	if weeks < 1 {
		return out, fmt.Errorf("%w: weeks must be at least 1, got %d", ErrInvalidPeriod, weeks)
	}
	if !start.Valid() {
		return out, fmt.Errorf("%w: week start must be 0-6, got %d", ErrInvalidPeriod, int(start))
	}
	if len(daily.Rows) == 0 {
		return out, nil
	}

	span := 7 * weeks
	first := Day(daily.Rows[0].Date)
	cur := newAggregate(daily.Categories, first, firstBoundary(first, start, span))
	prev := first.AddDate(0, 0, -1)

	for _, row := range daily.Rows {
		d := Day(row.Date)
		if !d.After(prev) {
			return Series{Categories: daily.Categories}, fmt.Errorf("%w: daily rows out of order at %s", ErrInvalidPeriod, FormatDay(d))
		}
		prev = d

		for !d.Before(cur.End) {
			out.Rows = append(out.Rows, cur)
			cur = newAggregate(daily.Categories, cur.End, cur.End.AddDate(0, 0, span))
		}
		cur.merge(row)
	}

	if limit := prev.AddDate(0, 0, 1); cur.End.After(limit) {
		cur.End = limit
	}
	out.Rows = append(out.Rows, cur)
	return out, nil
}

// firstBoundary is the end of the period opened at first.
func firstBoundary(first time.Time, start WeekStart, span int) time.Time {
	ahead := (int(start.Weekday()) - int(first.Weekday()) + 7) % 7
	if ahead == 0 {
		return first.AddDate(0, 0, span)
	}
	return first.AddDate(0, 0, ahead)
}
