package timebill

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table is the tabular form handed to exporters and chart renderers:
// one row per day or period, one column per category plus a total.
type Table struct {
	Categories []string
	Rows       []Row
}

// Row holds one day or period. Values is aligned with Table.Categories.
type Row struct {
	Date   time.Time
	Total  decimal.Decimal
	Values []decimal.Decimal
}

// Column returns the index of category in Values, or -1.
func (t Table) Column(category string) int {
	for i, c := range t.Categories {
		if c == category {
			return i
		}
	}
	return -1
}

// Between returns the rows with from <= date < to.
func (t Table) Between(from, to time.Time) Table {
	out := Table{Categories: t.Categories}
	for _, r := range t.Rows {
		if !r.Date.Before(from) && r.Date.Before(to) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Last returns the final n rows.
func (t Table) Last(n int) Table {
	if n <= 0 || n >= len(t.Rows) {
		return t
	}
	return Table{Categories: t.Categories, Rows: t.Rows[len(t.Rows)-n:]}
}

func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Table renders the series in minutes.
func (s Series) Table() Table {
	t := Table{
		Categories: s.Categories.Names(),
		Rows:       make([]Row, 0, len(s.Rows)),
	}
	for _, a := range s.Rows {
		row := Row{
			Date:   a.Date,
			Total:  decimal.NewFromInt(a.Total),
			Values: make([]decimal.Decimal, 0, len(a.minutes)),
		}
		for _, m := range a.minutes {
			row.Values = append(row.Values, decimal.NewFromInt(m))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
