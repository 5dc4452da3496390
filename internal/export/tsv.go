package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sadopc/timebill/internal/atomicfile"
	"github.com/sadopc/timebill/internal/timebill"
	"github.com/shopspring/decimal"
)

// Leading columns of every output table; categories follow.
const (
	ColumnDate  = "date"
	ColumnTotal = "total"
)

// ErrBadTable is returned when a table file cannot be read back.
var ErrBadTable = errors.New("bad table file")

// ToTSV writes t as a tab-separated table to path, replacing it atomically.
func ToTSV(t timebill.Table, path string) error {
	err := atomicfile.Write(path, func(w io.Writer) error {
		return WriteTSV(w, t)
	})
	if err != nil {
		return fmt.Errorf("write tsv file: %w", err)
	}
	return nil
}

// WriteTSV writes the header and one row per day or period.
func WriteTSV(w io.Writer, t timebill.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	// Header
	header := append([]string{ColumnDate, ColumnTotal}, t.Categories...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range t.Rows {
		row := make([]string, 0, len(header))
		row = append(row, timebill.FormatDay(r.Date), formatValue(r.Total))
		for _, v := range r.Values {
			row = append(row, formatValue(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadTSV loads a table written by ToTSV.
func ReadTSV(path string) (timebill.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return timebill.Table{}, fmt.Errorf("open tsv file: %w", err)
	}
	defer f.Close()

	t, err := ParseTSV(f)
	if err != nil {
		return timebill.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTSV reads a table from r.
func ParseTSV(r io.Reader) (timebill.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	header, err := cr.Read()
	if err != nil {
		return timebill.Table{}, fmt.Errorf("%w: read header: %v", ErrBadTable, err)
	}
	if len(header) < 2 || header[0] != ColumnDate || header[1] != ColumnTotal {
		return timebill.Table{}, fmt.Errorf("%w: header must start with %s, %s", ErrBadTable, ColumnDate, ColumnTotal)
	}

	t := timebill.Table{Categories: append([]string(nil), header[2:]...)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return timebill.Table{}, fmt.Errorf("%w: %v", ErrBadTable, err)
		}
		line, _ := cr.FieldPos(0)

		date, err := timebill.ParseDay(rec[0])
		if err != nil {
			return timebill.Table{}, fmt.Errorf("%w: line %d: %v", ErrBadTable, line, err)
		}
		row := timebill.Row{Date: date, Values: make([]decimal.Decimal, 0, len(t.Categories))}
		for i, cell := range rec[1:] {
			v, err := decimal.NewFromString(strings.TrimSpace(cell))
			if err != nil {
				return timebill.Table{}, fmt.Errorf("%w: line %d column %s: %v", ErrBadTable, line, header[i+1], err)
			}
			if i == 0 {
				row.Total = v
			} else {
				row.Values = append(row.Values, v)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func formatValue(d decimal.Decimal) string {
	return d.String()
}
