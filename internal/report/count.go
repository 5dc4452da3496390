package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/timebill/internal/export"
	"github.com/sadopc/timebill/internal/logger"
	"github.com/sadopc/timebill/internal/store"
	"github.com/sadopc/timebill/internal/timebill"
)

// Tables holds the derived tables of one run by kind.
type Tables map[Kind]timebill.Table

// Counter turns raw entries into the six derived tables.
type Counter struct {
	Categories     timebill.Categories
	WeekStart      timebill.WeekStart
	MinutesPerUnit int64
}

// Compute aggregates entries by day, week and four weeks, each in minutes
// and converted units.
func (c Counter) Compute(entries []timebill.Entry) (Tables, error) {
	daily, err := timebill.AggregateDaily(entries, c.Categories)
	if err != nil {
		return nil, fmt.Errorf("aggregate days: %w", err)
	}

	out := make(Tables, len(Kinds))
	add := func(minutes, units Kind, s timebill.Series) error {
		out[minutes] = s.Table()
		t, err := timebill.Convert(s, c.MinutesPerUnit)
		if err != nil {
			return fmt.Errorf("convert %s: %w", units, err)
		}
		out[units] = t
		return nil
	}

	if err := add(KindDay, KindDayH, daily); err != nil {
		return nil, err
	}
	for _, k := range []Kind{KindWeek, KindWeek4} {
		s, err := timebill.AggregatePeriods(daily, k.Weeks(), c.WeekStart)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", k, err)
		}
		units := KindWeekH
		if k == KindWeek4 {
			units = KindWeek4H
		}
		if err := add(k, units, s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CountOptions configures a counting run.
type CountOptions struct {
	Counter
	Input string
	JSON  bool
	// Store, when set, archives the entries, tables and the run record.
	Store *store.Store
	Now   func() time.Time
}

// CountResult summarizes a counting run.
type CountResult struct {
	RunID   string
	Entries []timebill.Entry
	Tables  Tables
	Files   []string
}

// Count reads the input log, writes every derived table next to it and
// optionally archives the run.
func Count(opts CountOptions) (CountResult, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	started := now()
	runID := uuid.NewString()
	logger.Info("count started", "run", runID, "input", opts.Input)

	entries, err := timebill.ReadEntriesFile(opts.Input, opts.Categories)
	if err != nil {
		return CountResult{}, err
	}
	tables, err := opts.Compute(entries)
	if err != nil {
		return CountResult{}, err
	}

	res := CountResult{RunID: runID, Entries: entries, Tables: tables}
	for _, k := range Kinds {
		path := TablePath(opts.Input, k)
		if err := export.ToTSV(tables[k], path); err != nil {
			return res, fmt.Errorf("write %s table: %w", k, err)
		}
		res.Files = append(res.Files, path)
		logger.Debug("table written", "kind", k, "rows", len(tables[k].Rows), "path", path)

		if opts.JSON {
			jp := JSONPath(opts.Input, k)
			if err := export.ToJSON(tables[k], string(k), jp); err != nil {
				return res, fmt.Errorf("write %s json: %w", k, err)
			}
			res.Files = append(res.Files, jp)
		}
	}

	if opts.Store != nil {
		if err := archive(opts.Store, runID, started, opts.Input, entries, tables); err != nil {
			return res, fmt.Errorf("archive run: %w", err)
		}
	}

	logger.Info("count finished", "run", runID, "entries", len(entries), "files", len(res.Files))
	return res, nil
}

func archive(s *store.Store, runID string, started time.Time, input string, entries []timebill.Entry, tables Tables) error {
	if err := s.ReplaceEntries(entries); err != nil {
		return err
	}
	for _, k := range Kinds {
		if err := s.SaveTable(runID, string(k), tables[k]); err != nil {
			return err
		}
	}

	run := store.Run{
		ID:         runID,
		StartedAt:  started,
		Input:      input,
		EntryCount: len(entries),
	}
	if day := tables[KindDay]; !day.Empty() {
		run.FirstDay = timebill.FormatDay(day.Rows[0].Date)
		run.LastDay = timebill.FormatDay(day.Rows[len(day.Rows)-1].Date)
		for _, r := range day.Rows {
			run.TotalMinutes += r.Total.IntPart()
		}
	}
	return s.RecordRun(run)
}

// LoadTables reads previously written tables of the given kinds back from
// disk.
func LoadTables(input string, kinds ...Kind) (Tables, error) {
	out := make(Tables, len(kinds))
	for _, k := range kinds {
		t, err := export.ReadTSV(TablePath(input, k))
		if err != nil {
			return nil, fmt.Errorf("load %s table: %w", k, err)
		}
		out[k] = t
	}
	return out, nil
}
