package timebill

import (
	"fmt"
	"time"
)

// Aggregate is the time spent over [Date, End), per category and in total.
// Only the aggregators build aggregates, so every category is present and
// Total always equals the sum of the categories.
type Aggregate struct {
	Date  time.Time
	End   time.Time
	Total int64

	cats    Categories
	minutes []int64
}

func newAggregate(cats Categories, date, end time.Time) Aggregate {
	return Aggregate{
		Date:    date,
		End:     end,
		cats:    cats,
		minutes: make([]int64, cats.Len()),
	}
}

// Key is the ISO date of the aggregate's first day.
func (a Aggregate) Key() string { return FormatDay(a.Date) }

// Days is the number of calendar days the aggregate spans.
func (a Aggregate) Days() int { return int(a.End.Sub(a.Date).Hours() / 24) }

// Minutes returns the minutes recorded for category, zero for unknown labels.
func (a Aggregate) Minutes(category string) int64 {
	i, ok := a.cats.position(category)
	if !ok {
		return 0
	}
	return a.minutes[i]
}

// ByCategory returns a fresh map holding every category.
func (a Aggregate) ByCategory() map[string]int64 {
	out := make(map[string]int64, len(a.minutes))
	for i, name := range a.cats.names {
		out[name] = a.minutes[i]
	}
	return out
}

// Each calls fn for every category in configured order.
func (a Aggregate) Each(fn func(category string, minutes int64)) {
	for i, name := range a.cats.names {
		fn(name, a.minutes[i])
	}
}

func (a *Aggregate) add(category string, minutes int64) error {
	i, ok := a.cats.position(category)
	if !ok {
		return fmt.Errorf("%w: %q", ErrMissingCategory, category)
	}
	a.minutes[i] += minutes
	a.Total += minutes
	return nil
}

func (a *Aggregate) merge(o Aggregate) {
	for i, m := range o.minutes {
		a.minutes[i] += m
	}
	a.Total += o.Total
}

// Series is an ascending run of aggregates over one category set.
type Series struct {
	Categories Categories
	Rows       []Aggregate
}

func (s Series) Len() int { return len(s.Rows) }

// Keys returns the ISO dates of the rows in order.
func (s Series) Keys() []string {
	keys := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		keys[i] = r.Key()
	}
	return keys
}

// Get looks up the row whose first day is the ISO date key.
func (s Series) Get(key string) (Aggregate, bool) {
	d, err := time.Parse(DateLayout, key)
	if err != nil {
		return Aggregate{}, false
	}
	lo, hi := 0, len(s.Rows)
	for lo < hi {
		mid := (lo + hi) / 2
		if s.Rows[mid].Date.Before(d) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.Rows) && s.Rows[lo].Date.Equal(d) {
		return s.Rows[lo], true
	}
	return Aggregate{}, false
}

// Total sums the totals of all rows.
func (s Series) Total() int64 {
	var t int64
	for _, r := range s.Rows {
		t += r.Total
	}
	return t
}
