// Package lifeclock computes calendar positions inside a human lifetime:
// the life-in-weeks grid and the seven-year circle.
package lifeclock

import (
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/timebill/internal/timebill"
)

const (
	DefaultYears        = 90
	DefaultWeeksPerYear = 52
)

var (
	ErrInvalidGrid = errors.New("invalid life grid")
	ErrBeforeBirth = errors.New("date is before birthday")
)

// Cell is the state of one week in the grid.
type Cell int

const (
	CellLived   Cell = iota // a year already completed
	CellPast                // earlier week of the running year
	CellCurrent             // this week
	CellFuture              // later week of the running year
	CellAhead               // a year not yet started
)

func (c Cell) String() string {
	switch c {
	case CellLived:
		return "lived"
	case CellPast:
		return "past"
	case CellCurrent:
		return "current"
	case CellFuture:
		return "future"
	case CellAhead:
		return "ahead"
	}
	return fmt.Sprintf("Cell(%d)", int(c))
}

// Grid is a years x weeksPerYear life calendar as seen on Today.
type Grid struct {
	Birthday     time.Time
	Today        time.Time
	Years        int
	WeeksPerYear int

	WeeksPassed int
	YearsPassed int
	CurrentWeek int
}

// NewGrid places today inside a life of the given length.
func NewGrid(birthday, today time.Time, years, weeksPerYear int) (Grid, error) {
	if years < 1 || weeksPerYear < 1 {
		return Grid{}, fmt.Errorf("%w: %d years of %d weeks", ErrInvalidGrid, years, weeksPerYear)
	}
	birthday, today = timebill.Day(birthday), timebill.Day(today)
	if today.Before(birthday) {
		return Grid{}, fmt.Errorf("%w: %s < %s", ErrBeforeBirth, timebill.FormatDay(today), timebill.FormatDay(birthday))
	}

	weeks := daysBetween(birthday, today) / 7
	return Grid{
		Birthday:     birthday,
		Today:        today,
		Years:        years,
		WeeksPerYear: weeksPerYear,
		WeeksPassed:  weeks,
		YearsPassed:  weeks / weeksPerYear,
		CurrentWeek:  SundayWeek(today),
	}, nil
}

// State classifies the cell at (age, week).
func (g Grid) State(age, week int) Cell {
	switch {
	case age <= g.YearsPassed:
		return CellLived
	case age == g.YearsPassed+1:
		switch {
		case week < g.CurrentWeek:
			return CellPast
		case week == g.CurrentWeek:
			return CellCurrent
		default:
			return CellFuture
		}
	default:
		return CellAhead
	}
}

// Each visits every cell row by row.
func (g Grid) Each(fn func(age, week int, c Cell)) {
	for age := 0; age < g.Years; age++ {
		for week := 0; week < g.WeeksPerYear; week++ {
			fn(age, week, g.State(age, week))
		}
	}
}

// Count returns how many cells are in state c.
func (g Grid) Count(c Cell) int {
	n := 0
	g.Each(func(_, _ int, s Cell) {
		if s == c {
			n++
		}
	})
	return n
}

// SundayWeek is the week of the year with Sunday as the first day of the
// week. Days before the year's first Sunday are in week 0.
func SundayWeek(t time.Time) int {
	return (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
