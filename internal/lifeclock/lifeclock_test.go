package lifeclock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSundayWeek(t *testing.T) {
	// 2023-01-01 is a Sunday.
	assert.Equal(t, 1, SundayWeek(date(2023, 1, 1)))
	assert.Equal(t, 1, SundayWeek(date(2023, 1, 7)))
	assert.Equal(t, 2, SundayWeek(date(2023, 1, 8)))
	// 2022-01-01 is a Saturday, before the first Sunday.
	assert.Equal(t, 0, SundayWeek(date(2022, 1, 1)))
	assert.Equal(t, 1, SundayWeek(date(2022, 1, 2)))
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(date(2000, 1, 1), date(2023, 1, 10), DefaultYears, DefaultWeeksPerYear)
	require.NoError(t, err)

	assert.Equal(t, 8410/7, g.WeeksPassed)
	assert.Equal(t, g.WeeksPassed/52, g.YearsPassed)
	assert.Equal(t, 2, g.CurrentWeek)
}

func TestGridStates(t *testing.T) {
	g := Grid{Years: 10, WeeksPerYear: 4, YearsPassed: 2, CurrentWeek: 1}

	assert.Equal(t, CellLived, g.State(0, 3))
	assert.Equal(t, CellLived, g.State(2, 0))
	assert.Equal(t, CellPast, g.State(3, 0))
	assert.Equal(t, CellCurrent, g.State(3, 1))
	assert.Equal(t, CellFuture, g.State(3, 2))
	assert.Equal(t, CellAhead, g.State(4, 0))

	assert.Equal(t, 12, g.Count(CellLived))
	assert.Equal(t, 1, g.Count(CellCurrent))
	assert.Equal(t, 24, g.Count(CellAhead))

	cells := 0
	g.Each(func(_, _ int, _ Cell) { cells++ })
	assert.Equal(t, 40, cells)
}

func TestNewGridErrors(t *testing.T) {
	_, err := NewGrid(date(2000, 1, 1), date(2020, 1, 1), 0, 52)
	assert.True(t, errors.Is(err, ErrInvalidGrid))

	_, err = NewGrid(date(2000, 1, 1), date(1999, 12, 31), 90, 52)
	assert.True(t, errors.Is(err, ErrBeforeBirth))
}

func TestSevenYearCircle(t *testing.T) {
	c, err := SevenYearCircle(date(1990, 6, 15), date(2005, 6, 14))
	require.NoError(t, err)

	assert.Equal(t, 14, c.Age)
	assert.Equal(t, 3, c.Number)
	assert.Equal(t, date(2004, 6, 15), c.Start)
	assert.Equal(t, date(2011, 6, 15), c.End)
	assert.Equal(t, 364, c.Passed)
	assert.Equal(t, c.Passed+c.Remaining, int(c.End.Sub(c.Start).Hours()/24))
	assert.Equal(t, 1+c.DaysLived/7, c.WeeksLived())
}

func TestSevenYearCircleOnBoundary(t *testing.T) {
	c, err := SevenYearCircle(date(1990, 6, 15), date(1997, 6, 15))
	require.NoError(t, err)

	assert.Equal(t, 7, c.Age)
	assert.Equal(t, 2, c.Number)
	assert.Equal(t, 0, c.Passed)
	assert.Zero(t, c.Fraction())
}

func TestSevenYearCircleLeapBirthday(t *testing.T) {
	c, err := SevenYearCircle(date(2000, 2, 29), date(2008, 1, 1))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Number)
	// 2007 has no Feb 29.
	assert.Equal(t, date(2007, 3, 1), c.Start)
	assert.Equal(t, 7, c.Age)
}

func TestSevenYearCircleBeforeBirth(t *testing.T) {
	_, err := SevenYearCircle(date(2000, 1, 1), date(1999, 1, 1))
	assert.ErrorIs(t, err, ErrBeforeBirth)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████▁▁▁▁▁50.0%", ProgressBar(50, 10))
	assert.Equal(t, "▁▁▁▁0.0%", ProgressBar(0, 4))
	assert.Equal(t, "████100.0%", ProgressBar(100, 4))
	assert.Equal(t, "████120.0%", ProgressBar(120, 4))
}

func TestCircleString(t *testing.T) {
	c, err := SevenYearCircle(date(1990, 6, 15), date(2005, 6, 14))
	require.NoError(t, err)

	s := c.String()
	assert.Contains(t, s, "life number 3")
	assert.Contains(t, s, "2004-06-15")
	assert.Contains(t, s, "%")
}
