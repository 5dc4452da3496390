package timebill

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultMinutesPerUnit converts minutes to hours.
const DefaultMinutesPerUnit = 60

// unitPlaces is the number of decimal places kept after conversion.
const unitPlaces = 2

// Convert divides every total and category of s by minutesPerUnit,
// rounding half away from zero to two decimal places.
func Convert(s Series, minutesPerUnit int64) (Table, error) {
	if minutesPerUnit <= 0 {
		return Table{}, fmt.Errorf("%w: minutes per unit must be positive, got %d", ErrInvalidDivisor, minutesPerUnit)
	}
	div := decimal.NewFromInt(minutesPerUnit)
	scale := func(m int64) decimal.Decimal {
		return decimal.NewFromInt(m).Div(div).Round(unitPlaces)
	}

	t := Table{
		Categories: s.Categories.Names(),
		Rows:       make([]Row, 0, len(s.Rows)),
	}
	for _, a := range s.Rows {
		row := Row{
			Date:   a.Date,
			Total:  scale(a.Total),
			Values: make([]decimal.Decimal, 0, len(a.minutes)),
		}
		for _, m := range a.minutes {
			row.Values = append(row.Values, scale(m))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
