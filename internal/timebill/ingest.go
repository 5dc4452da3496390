package timebill

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Input column names.
const (
	ColumnDate     = "DATE"
	ColumnCategory = "TYPE"
	ColumnMinutes  = "MINS"
)

// accepts 2023-1-5 as well as 2023-01-05
const inputDateLayout = "2006-1-2"

// ReadEntriesFile parses the tab-delimited log at path.
func ReadEntriesFile(path string, cats Categories) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	entries, err := ParseEntries(f, cats)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseEntries reads a header row naming DATE, TYPE and MINS followed by
// one record per line. The first bad record aborts the parse.
func ParseEntries(r io.Reader, cats Categories) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		line, _ := cr.FieldPos(0)
		e, err := parseRecord(rec, cols, line, cats)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

type columns struct {
	date, category, minutes int
	width                   int
}

func locateColumns(header []string) (columns, error) {
	c := columns{date: -1, category: -1, minutes: -1}
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnDate:
			c.date = i
		case ColumnCategory:
			c.category = i
		case ColumnMinutes:
			c.minutes = i
		}
	}
	required := []struct {
		name string
		idx  int
	}{{ColumnDate, c.date}, {ColumnCategory, c.category}, {ColumnMinutes, c.minutes}}
	for _, r := range required {
		if r.idx < 0 {
			return c, &RecordError{Line: 1, Err: fmt.Errorf("%w: header has no %s column", ErrMalformedRecord, r.name)}
		}
	}
	c.width = max(c.date, c.category, c.minutes) + 1
	return c, nil
}

func parseRecord(rec []string, cols columns, line int, cats Categories) (Entry, error) {
	if len(rec) < cols.width {
		return Entry{}, &RecordError{Line: line, Err: fmt.Errorf("%w: expected at least %d fields, got %d", ErrMalformedRecord, cols.width, len(rec))}
	}

	rawDate := strings.TrimSpace(rec[cols.date])
	date, err := ParseDay(rawDate)
	if err != nil {
		return Entry{}, &RecordError{Line: line, Column: ColumnDate, Value: rawDate, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
	}

	category := strings.TrimSpace(rec[cols.category])
	if !cats.Contains(category) {
		return Entry{}, &RecordError{Line: line, Column: ColumnCategory, Value: category, Err: ErrMissingCategory}
	}

	rawMins := strings.TrimSpace(rec[cols.minutes])
	mins, err := strconv.ParseInt(rawMins, 10, 64)
	if err != nil {
		return Entry{}, &RecordError{Line: line, Column: ColumnMinutes, Value: rawMins, Err: fmt.Errorf("%w: not an integer", ErrMalformedRecord)}
	}
	if mins < 0 {
		return Entry{}, &RecordError{Line: line, Column: ColumnMinutes, Value: rawMins, Err: fmt.Errorf("%w: negative duration", ErrMalformedRecord)}
	}

	return Entry{Date: date, Category: category, Minutes: mins, Line: line}, nil
}
