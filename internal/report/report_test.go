package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/timebill/internal/export"
	"github.com/sadopc/timebill/internal/store"
	"github.com/sadopc/timebill/internal/timebill"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCats = timebill.MustCategories("work", "rest")

const sampleLog = "DATE\tTYPE\tMINS\n" +
	"2023-01-01\twork\t60\n" +
	"2023-01-03\trest\t30\n" +
	"2023-01-05\twork\t90\n" +
	"2023-01-12\twork\t45\n"

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alldata.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testCounter() Counter {
	return Counter{
		Categories:     testCats,
		WeekStart:      timebill.DefaultWeekStart,
		MinutesPerUnit: timebill.DefaultMinutesPerUnit,
	}
}

func date(s string) time.Time {
	d, err := timebill.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ============================================================
// Kinds and paths
// ============================================================

func TestTablePath(t *testing.T) {
	assert.Equal(t, "/data/alldata_count_day.txt", TablePath("/data/alldata.txt", KindDay))
	assert.Equal(t, "/data/alldata_count_4weeks_hour.txt", TablePath("/data/alldata.txt", KindWeek4H))
	assert.Equal(t, "log_count_week.tsv", TablePath("log.tsv", KindWeek))
	assert.Equal(t, "log_count_week.txt", TablePath("log", KindWeek))
	assert.Equal(t, "/data/alldata_count_day_hour.json", JSONPath("/data/alldata.txt", KindDayH))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("weekh")
	require.NoError(t, err)
	assert.Equal(t, KindWeekH, k)

	_, err = ParseKind("month")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestKindWeeks(t *testing.T) {
	assert.Equal(t, 0, KindDayH.Weeks())
	assert.Equal(t, 1, KindWeek.Weeks())
	assert.Equal(t, 4, KindWeek4H.Weeks())
	assert.True(t, KindWeek4H.Converted())
	assert.False(t, KindWeek4.Converted())
}

// ============================================================
// Counting
// ============================================================

func TestCompute(t *testing.T) {
	entries, err := timebill.ReadEntriesFile(writeLog(t, sampleLog), testCats)
	require.NoError(t, err)

	tables, err := testCounter().Compute(entries)
	require.NoError(t, err)
	require.Len(t, tables, 6)

	assert.Len(t, tables[KindDay].Rows, 12)
	assert.Len(t, tables[KindDayH].Rows, 12)

	// Thursday weeks: 01-01 (partial), 01-05, 01-12.
	week := tables[KindWeek]
	require.Len(t, week.Rows, 3)
	assert.Equal(t, date("2023-01-05"), week.Rows[1].Date)
	assert.Equal(t, "90", week.Rows[1].Total.String())
	assert.Equal(t, "1.5", tables[KindWeekH].Rows[1].Total.String())

	var sum decimal.Decimal
	for _, r := range tables[KindWeek4].Rows {
		sum = sum.Add(r.Total)
	}
	assert.Equal(t, "225", sum.String())
}

func TestComputeEmpty(t *testing.T) {
	tables, err := testCounter().Compute(nil)
	require.NoError(t, err)
	for _, k := range Kinds {
		assert.True(t, tables[k].Empty(), k)
		assert.Equal(t, []string{"work", "rest"}, tables[k].Categories, k)
	}
}

func TestCountWritesTables(t *testing.T) {
	input := writeLog(t, sampleLog)

	res, err := Count(CountOptions{Counter: testCounter(), Input: input, JSON: true})
	require.NoError(t, err)
	assert.NotEmpty(t, res.RunID)
	assert.Len(t, res.Entries, 4)
	assert.Len(t, res.Files, 12)

	for _, k := range Kinds {
		assert.FileExists(t, TablePath(input, k))
		assert.FileExists(t, JSONPath(input, k))
	}

	loaded, err := LoadTables(input, KindDayH, KindWeekH)
	require.NoError(t, err)
	assert.Len(t, loaded[KindDayH].Rows, 12)
	assert.True(t, loaded[KindWeekH].Rows[1].Total.Equal(res.Tables[KindWeekH].Rows[1].Total))
}

func TestCountIsDeterministic(t *testing.T) {
	input := writeLog(t, sampleLog)

	_, err := Count(CountOptions{Counter: testCounter(), Input: input})
	require.NoError(t, err)
	first, err := os.ReadFile(TablePath(input, KindWeek4H))
	require.NoError(t, err)

	_, err = Count(CountOptions{Counter: testCounter(), Input: input})
	require.NoError(t, err)
	second, err := os.ReadFile(TablePath(input, KindWeek4H))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCountBadRecord(t *testing.T) {
	input := writeLog(t, "DATE\tTYPE\tMINS\n2023-01-01\tsleep\t60\n")

	_, err := Count(CountOptions{Counter: testCounter(), Input: input})
	assert.ErrorIs(t, err, timebill.ErrMissingCategory)
	assert.NoFileExists(t, TablePath(input, KindDay))
}

func TestCountArchives(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	defer s.Close()

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	input := writeLog(t, sampleLog)
	res, err := Count(CountOptions{
		Counter: testCounter(),
		Input:   input,
		Store:   s,
		Now:     func() time.Time { return at },
	})
	require.NoError(t, err)

	runs, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.RunID, runs[0].ID)
	assert.Equal(t, 4, runs[0].EntryCount)
	assert.Equal(t, "2023-01-01", runs[0].FirstDay)
	assert.Equal(t, "2023-01-12", runs[0].LastDay)
	assert.Equal(t, int64(225), runs[0].TotalMinutes)
	assert.True(t, runs[0].StartedAt.Equal(at))

	week, err := s.LoadTable(string(KindWeek))
	require.NoError(t, err)
	assert.Len(t, week.Rows, 3)

	entries, err := s.ListEntries(store.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

// ============================================================
// Drawing
// ============================================================

type call struct {
	title string
	path  string
	rows  int
}

type fakeRenderer struct {
	calls []call
}

func (f *fakeRenderer) RenderArea(t timebill.Table, title, path string) error {
	f.calls = append(f.calls, call{title: title, path: path, rows: len(t.Rows)})
	return os.WriteFile(path, []byte("png"), 0o644)
}

func dailyTable(from string, days int) timebill.Table {
	t := timebill.Table{Categories: []string{"work"}}
	start := date(from)
	for i := 0; i < days; i++ {
		v := decimal.NewFromInt(1)
		t.Rows = append(t.Rows, timebill.Row{Date: start.AddDate(0, 0, i), Total: v, Values: []decimal.Decimal{v}})
	}
	return t
}

func newDrawer(t *testing.T, now string) (*Drawer, *fakeRenderer) {
	r := &fakeRenderer{}
	return &Drawer{
		Renderer:  r,
		ImageDir:  t.TempDir(),
		Overwrite: true,
		Now:       func() time.Time { return date(now) },
	}, r
}

func TestByWeeks(t *testing.T) {
	d, r := newDrawer(t, "2030-01-01")
	tbl := dailyTable("2023-01-01", 59)

	res, err := d.ByWeeks(tbl, KindDayH, date("2023-01-01"), date("2023-03-01"), 4)
	require.NoError(t, err)

	// Windows start 01-01, 01-29, 02-26; the last one holds 3 days of data.
	require.Len(t, r.calls, 3)
	assert.Equal(t, "2023-01-01 - 2023-01-28 28 Days TimeBill (DayH)", r.calls[0].title)
	assert.Equal(t, filepath.Join(d.ImageDir, "DayH_28", "TimeBill_28Days_2023-01-01_DayH.png"), r.calls[0].path)
	assert.Equal(t, 28, r.calls[0].rows)
	assert.Equal(t, 3, r.calls[2].rows)
	assert.Len(t, res.Written, 3)
}

func TestByWeeksStopsAtNow(t *testing.T) {
	d, r := newDrawer(t, "2023-01-20")
	_, err := d.ByWeeks(dailyTable("2023-01-01", 60), KindDayH, date("2023-01-01"), date("2024-01-01"), 1)
	require.NoError(t, err)
	// 01-01, 01-08, 01-15 start before now.
	assert.Len(t, r.calls, 3)
}

func TestByWeeksInvalid(t *testing.T) {
	d, _ := newDrawer(t, "2030-01-01")
	_, err := d.ByWeeks(timebill.Table{}, KindDayH, date("2023-01-01"), date("2024-01-01"), 0)
	assert.ErrorIs(t, err, timebill.ErrInvalidPeriod)
}

func TestByWeeksEmptyWindows(t *testing.T) {
	d, r := newDrawer(t, "2030-01-01")
	res, err := d.ByWeeks(dailyTable("2023-01-01", 7), KindDayH, date("2023-01-01"), date("2023-01-22"), 1)
	require.NoError(t, err)
	assert.Len(t, r.calls, 1)
	assert.Len(t, res.Empty, 2)
}

func TestByYear(t *testing.T) {
	d, r := newDrawer(t, "2030-01-01")
	res, err := d.ByYear(dailyTable("2022-12-01", 700), KindWeekH, date("2023-07-20"), date("2024-07-20"))
	require.NoError(t, err)
	require.Len(t, r.calls, 1)
	assert.Equal(t, "2023-07-20 - 2024-07-20 366 Days TimeBill (WeekH)", r.calls[0].title)
	assert.Equal(t, filepath.Join(d.ImageDir, "WeekH_YEAR", "TimeBill_2023-07-20_2024-07-20_WeekH.png"), res.Written[0])
	assert.Equal(t, 366, r.calls[0].rows)
}

func TestByYearFuture(t *testing.T) {
	d, r := newDrawer(t, "2023-01-01")
	res, err := d.ByYear(dailyTable("2023-01-01", 10), KindDayH, date("2023-07-20"), date("2024-07-20"))
	require.NoError(t, err)
	assert.Empty(t, r.calls)
	assert.Empty(t, res.Written)
}

func TestOverwriteDisabledSkipsExisting(t *testing.T) {
	d, r := newDrawer(t, "2030-01-01")
	tbl := dailyTable("2023-01-01", 14)

	_, err := d.ByWeeks(tbl, KindDayH, date("2023-01-01"), date("2023-01-15"), 1)
	require.NoError(t, err)
	require.Len(t, r.calls, 2)

	d.Overwrite = false
	res, err := d.ByWeeks(tbl, KindDayH, date("2023-01-01"), date("2023-01-15"), 1)
	require.NoError(t, err)
	assert.Len(t, r.calls, 2)
	assert.Len(t, res.Skipped, 2)

	d.Overwrite = true
	_, err = d.ByWeeks(tbl, KindDayH, date("2023-01-01"), date("2023-01-15"), 1)
	require.NoError(t, err)
	assert.Len(t, r.calls, 4)
}

func TestAnchorYears(t *testing.T) {
	years := Anchor{StartYear: 2021, Month: time.September, Day: 10}.Years(date("2023-03-01"))
	require.Len(t, years, 3)
	assert.Equal(t, date("2021-09-10"), years[0][0])
	assert.Equal(t, date("2022-09-10"), years[0][1])
	assert.Equal(t, date("2023-09-10"), years[2][0])
}

func TestUpdate(t *testing.T) {
	d, r := newDrawer(t, "2023-12-31")
	day := dailyTable("2023-01-01", 365)
	tables := Tables{KindDayH: day, KindWeekH: day, KindWeek4H: day}

	res, err := d.Update(tables, Anchor{StartYear: 2023, Month: time.January, Day: 1})
	require.NoError(t, err)

	// 13 four-week + 5 twelve-week DayH windows, 5 twelve-week WeekH
	// windows, 3 year charts.
	assert.Len(t, r.calls, 13+5+5+3)
	assert.Len(t, res.Written, len(r.calls))

	assert.FileExists(t, filepath.Join(d.ImageDir, "DayH_84", "TimeBill_84Days_2023-01-01_DayH.png"))
	assert.FileExists(t, filepath.Join(d.ImageDir, "Week4H_YEAR", "TimeBill_2023-01-01_2024-01-01_Week4H.png"))
}

func TestUpdateMissingTable(t *testing.T) {
	d, _ := newDrawer(t, "2023-12-31")
	_, err := d.Update(Tables{KindDayH: {}}, DefaultAnchor)
	assert.ErrorIs(t, err, ErrMissingTable)
}

func TestDrawFromExportedTable(t *testing.T) {
	input := writeLog(t, sampleLog)
	_, err := Count(CountOptions{Counter: testCounter(), Input: input})
	require.NoError(t, err)

	tbl, err := export.ReadTSV(TablePath(input, KindDayH))
	require.NoError(t, err)

	d, r := newDrawer(t, "2030-01-01")
	_, err = d.ByWeeks(tbl, KindDayH, date("2023-01-01"), date("2023-02-01"), 4)
	require.NoError(t, err)
	require.NotEmpty(t, r.calls)
	assert.Equal(t, 12, r.calls[0].rows)
}
