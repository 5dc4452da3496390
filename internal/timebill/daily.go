package timebill

import (
	"sort"
	"time"
)

// AggregateDaily buckets entries by calendar day. Every day between the
// earliest and latest entry is present; days without entries are zero.
func AggregateDaily(entries []Entry, cats Categories) (Series, error) {
	s := Series{Categories: cats}
	if len(entries) == 0 {
		return s, nil
	}

	byDay := make(map[time.Time]*Aggregate)
	first, last := Day(entries[0].Date), Day(entries[0].Date)
	for _, e := range entries {
		d := Day(e.Date)
		agg, ok := byDay[d]
		if !ok {
			a := newAggregate(cats, d, d.AddDate(0, 0, 1))
			agg = &a
			byDay[d] = agg
		}
		if err := agg.add(e.Category, e.Minutes); err != nil {
			return Series{Categories: cats}, &RecordError{Line: e.Line, Column: ColumnCategory, Value: e.Category, Err: ErrMissingCategory}
		}
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if _, ok := byDay[d]; !ok {
			a := newAggregate(cats, d, d.AddDate(0, 0, 1))
			byDay[d] = &a
		}
	}

	s.Rows = make([]Aggregate, 0, len(byDay))
	for _, a := range byDay {
		s.Rows = append(s.Rows, *a)
	}
	sort.Slice(s.Rows, func(i, j int) bool { return s.Rows[i].Date.Before(s.Rows[j].Date) })
	return s, nil
}
