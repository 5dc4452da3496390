package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sadopc/timebill/internal/timebill"
	"github.com/shopspring/decimal"
)

// Category labels and row values are stored tab-joined; labels come from a
// tab-delimited input so they cannot contain tabs themselves.
const sep = "\t"

// SaveTable replaces the archived table of the given kind.
func (s *Store) SaveTable(runID, kind string, t timebill.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM table_rows WHERE kind = ?`, kind); err != nil {
		return fmt.Errorf("clear table %s: %w", kind, err)
	}
	_, err = tx.Exec(
		`INSERT INTO tables (kind, categories, run_id, updated_at) VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ','now'))
		 ON CONFLICT(kind) DO UPDATE SET categories = excluded.categories, run_id = excluded.run_id, updated_at = excluded.updated_at`,
		kind, strings.Join(t.Categories, sep), runID,
	)
	if err != nil {
		return fmt.Errorf("save table %s: %w", kind, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO table_rows (kind, day, total, vals) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range t.Rows {
		vals := make([]string, len(r.Values))
		for i, v := range r.Values {
			vals[i] = v.String()
		}
		if _, err := stmt.Exec(kind, timebill.FormatDay(r.Date), r.Total.String(), strings.Join(vals, sep)); err != nil {
			return fmt.Errorf("insert row %s: %w", timebill.FormatDay(r.Date), err)
		}
	}
	return tx.Commit()
}

// LoadTable returns the archived table of the given kind.
func (s *Store) LoadTable(kind string) (timebill.Table, error) {
	var cats string
	err := s.db.QueryRow(`SELECT categories FROM tables WHERE kind = ?`, kind).Scan(&cats)
	if errors.Is(err, sql.ErrNoRows) {
		return timebill.Table{}, fmt.Errorf("table %s: %w", kind, ErrNotFound)
	}
	if err != nil {
		return timebill.Table{}, fmt.Errorf("get table %s: %w", kind, err)
	}

	t := timebill.Table{}
	if cats != "" {
		t.Categories = strings.Split(cats, sep)
	}

	rows, err := s.db.Query(`SELECT day, total, vals FROM table_rows WHERE kind = ? ORDER BY day`, kind)
	if err != nil {
		return timebill.Table{}, fmt.Errorf("list rows %s: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		var day, total, vals string
		if err := rows.Scan(&day, &total, &vals); err != nil {
			return timebill.Table{}, err
		}
		r, err := decodeRow(day, total, vals)
		if err != nil {
			return timebill.Table{}, fmt.Errorf("table %s: %w", kind, err)
		}
		t.Rows = append(t.Rows, r)
	}
	return t, rows.Err()
}

func decodeRow(day, total, vals string) (timebill.Row, error) {
	var r timebill.Row
	var err error
	if r.Date, err = timebill.ParseDay(day); err != nil {
		return r, fmt.Errorf("row day %q: %w", day, err)
	}
	if r.Total, err = decimal.NewFromString(total); err != nil {
		return r, fmt.Errorf("row %s total: %w", day, err)
	}
	if vals == "" {
		return r, nil
	}
	for _, v := range strings.Split(vals, sep) {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return r, fmt.Errorf("row %s value: %w", day, err)
		}
		r.Values = append(r.Values, d)
	}
	return r, nil
}
