package lifeclock

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/timebill/internal/timebill"
)

// CircleYears is the length of one circle.
const CircleYears = 7

// Circle describes the seven-year period that contains Today.
type Circle struct {
	Today     time.Time
	Birthday  time.Time
	Age       int
	DaysLived int
	Number    int
	Start     time.Time
	End       time.Time
	Passed    int
	Remaining int
}

// SevenYearCircle finds the circle containing today. Circle n starts on the
// birthday anniversary 7*(n-1) years after birth.
func SevenYearCircle(birthday, today time.Time) (Circle, error) {
	birthday, today = timebill.Day(birthday), timebill.Day(today)
	if today.Before(birthday) {
		return Circle{}, fmt.Errorf("%w: %s < %s", ErrBeforeBirth, timebill.FormatDay(today), timebill.FormatDay(birthday))
	}

	age := completedYears(birthday, today)
	n := age/CircleYears + 1
	start := anniversary(birthday, CircleYears*(n-1))
	end := anniversary(birthday, CircleYears*n)

	return Circle{
		Today:     today,
		Birthday:  birthday,
		Age:       age,
		DaysLived: daysBetween(birthday, today),
		Number:    n,
		Start:     start,
		End:       end,
		Passed:    daysBetween(start, today),
		Remaining: daysBetween(today, end),
	}, nil
}

// WeeksLived counts the running week as lived.
func (c Circle) WeeksLived() int { return 1 + c.DaysLived/7 }

// Fraction is the part of the circle already passed, in [0, 1).
func (c Circle) Fraction() float64 {
	total := daysBetween(c.Start, c.End)
	if total == 0 {
		return 0
	}
	return float64(c.Passed) / float64(total)
}

// Bar renders the circle progress as a fixed-width bar followed by the
// percentage.
func (c Circle) Bar(width int) string {
	return ProgressBar(c.Fraction()*100, width)
}

func (c Circle) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s. Born on %s, I am %d years old.\n",
		timebill.FormatDay(c.Today), timebill.FormatDay(c.Birthday), c.Age)
	fmt.Fprintf(&b, "I have lived %d days, that is %d weeks.\n", c.DaysLived, c.WeeksLived())
	fmt.Fprintf(&b, "If seven years make one life, this is life number %d. It began on %s, %d days have passed and %d remain.\n",
		c.Number, timebill.FormatDay(c.Start), c.Passed, c.Remaining)
	b.WriteString(c.Bar(30))
	return b.String()
}

// ProgressBar draws percent (0-100) as width cells.
func ProgressBar(percent float64, width int) string {
	if width < 0 {
		width = 0
	}
	filled := int(float64(width) * percent / 100)
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("▁", width-filled) + fmt.Sprintf("%.1f%%", percent)
}

// anniversary adds whole years; Feb 29 rolls over to Mar 1 in non-leap years.
func anniversary(birthday time.Time, years int) time.Time {
	return time.Date(birthday.Year()+years, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
}

func completedYears(birthday, today time.Time) int {
	years := today.Year() - birthday.Year()
	if anniversary(birthday, years).After(today) {
		years--
	}
	return years
}
