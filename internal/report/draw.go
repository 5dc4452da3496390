package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/timebill/internal/atomicfile"
	"github.com/sadopc/timebill/internal/chart"
	"github.com/sadopc/timebill/internal/logger"
	"github.com/sadopc/timebill/internal/timebill"
)

var ErrMissingTable = errors.New("missing table")

// Drawer renders chart windows of the derived tables into ImageDir.
type Drawer struct {
	Renderer  chart.Renderer
	ImageDir  string
	Overwrite bool
	Now       func() time.Time
}

// DrawResult lists what a drawing pass did with each planned image.
type DrawResult struct {
	Written []string
	Skipped []string // already present, overwrite disabled
	Empty   []string // no rows in the window
}

func (r *DrawResult) merge(o DrawResult) {
	r.Written = append(r.Written, o.Written...)
	r.Skipped = append(r.Skipped, o.Skipped...)
	r.Empty = append(r.Empty, o.Empty...)
}

func (d *Drawer) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// WindowPath is the image of the days-long window starting at start.
func (d *Drawer) WindowPath(kind Kind, days int, start time.Time) string {
	return filepath.Join(d.ImageDir,
		fmt.Sprintf("%s_%d", kind, days),
		fmt.Sprintf("TimeBill_%dDays_%s_%s.png", days, timebill.FormatDay(start), kind))
}

// YearPath is the image of the year [start, end).
func (d *Drawer) YearPath(kind Kind, start, end time.Time) string {
	return filepath.Join(d.ImageDir,
		fmt.Sprintf("%s_YEAR", kind),
		fmt.Sprintf("TimeBill_%s_%s_%s.png", timebill.FormatDay(start), timebill.FormatDay(end), kind))
}

// Title labels a chart covering first..last inclusive.
func Title(kind Kind, first, last time.Time, days int) string {
	return fmt.Sprintf("%s - %s %d Days TimeBill (%s)", timebill.FormatDay(first), timebill.FormatDay(last), days, kind)
}

// ByWeeks draws consecutive windows of 7*weeks days from start while the
// window start is before both end and now.
func (d *Drawer) ByWeeks(t timebill.Table, kind Kind, start, end time.Time, weeks int) (DrawResult, error) {
	var res DrawResult
	if weeks < 1 {
		return res, fmt.Errorf("%w: %d weeks", timebill.ErrInvalidPeriod, weeks)
	}
	days := 7 * weeks
	now := d.now()

	for from := start; from.Before(now) && from.Before(end); from = from.AddDate(0, 0, days) {
		to := from.AddDate(0, 0, days)
		path := d.WindowPath(kind, days, from)
		title := Title(kind, from, to.AddDate(0, 0, -1), days)
		if err := d.draw(&res, t.Between(from, to), title, path); err != nil {
			return res, err
		}
	}
	return res, nil
}

// ByYear draws the single chart of [start, end), unless start is in the
// future.
func (d *Drawer) ByYear(t timebill.Table, kind Kind, start, end time.Time) (DrawResult, error) {
	var res DrawResult
	if start.After(d.now()) {
		return res, nil
	}
	days := int(end.Sub(start).Hours() / 24)
	path := d.YearPath(kind, start, end)
	err := d.draw(&res, t.Between(start, end), Title(kind, start, end, days), path)
	return res, err
}

func (d *Drawer) draw(res *DrawResult, t timebill.Table, title, path string) error {
	if !d.Overwrite && atomicfile.Exists(path) {
		logger.Debug("chart exists, skipping", "path", path)
		res.Skipped = append(res.Skipped, path)
		return nil
	}
	if t.Empty() {
		res.Empty = append(res.Empty, path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := d.Renderer.RenderArea(t, title, path); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	logger.Info("chart written", "path", path, "rows", len(t.Rows))
	res.Written = append(res.Written, path)
	return nil
}

// Anchor is the month and day each chart year starts on, from StartYear on.
type Anchor struct {
	StartYear int
	Month     time.Month
	Day       int
}

// DefaultAnchor starts chart years on July 20, 2017.
var DefaultAnchor = Anchor{StartYear: 2017, Month: time.July, Day: 20}

// Years returns the [start, end) bounds of every chart year from the anchor
// up to and including the year of now.
func (a Anchor) Years(now time.Time) [][2]time.Time {
	var out [][2]time.Time
	for y := a.StartYear; y <= now.Year(); y++ {
		start := time.Date(y, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
		end := time.Date(y+1, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
		out = append(out, [2]time.Time{start, end})
	}
	return out
}

// Update draws, for every anchored year, four- and twelve-week windows of
// daily hours, twelve-week windows of weekly hours, and whole-year charts of
// the daily, weekly and four-weekly hours.
func (d *Drawer) Update(tables Tables, anchor Anchor) (DrawResult, error) {
	var res DrawResult
	for _, k := range []Kind{KindDayH, KindWeekH, KindWeek4H} {
		if _, ok := tables[k]; !ok {
			return res, fmt.Errorf("%w: %s", ErrMissingTable, k)
		}
	}

	for _, y := range anchor.Years(d.now()) {
		start, end := y[0], y[1]
		windows := []struct {
			kind  Kind
			weeks int
		}{
			{KindDayH, 4},
			{KindDayH, 12},
			{KindWeekH, 12},
		}
		for _, w := range windows {
			r, err := d.ByWeeks(tables[w.kind], w.kind, start, end, w.weeks)
			res.merge(r)
			if err != nil {
				return res, err
			}
		}
		for _, k := range []Kind{KindDayH, KindWeekH, KindWeek4H} {
			r, err := d.ByYear(tables[k], k, start, end)
			res.merge(r)
			if err != nil {
				return res, err
			}
		}
	}
	logger.Info("charts updated", "written", len(res.Written), "skipped", len(res.Skipped), "empty", len(res.Empty))
	return res, nil
}
