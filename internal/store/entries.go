package store

import (
	"fmt"

	"github.com/sadopc/timebill/internal/timebill"
)

// ReplaceEntries swaps the archived entries for entries in one transaction.
func (s *Store) ReplaceEntries(entries []timebill.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (line, day, category, minutes) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Line, timebill.FormatDay(e.Date), e.Category, e.Minutes); err != nil {
			return fmt.Errorf("insert entry (line %d): %w", e.Line, err)
		}
	}
	return tx.Commit()
}

func (s *Store) ListEntries(f EntryFilter) ([]timebill.Entry, error) {
	query := `SELECT line, day, category, minutes FROM entries WHERE 1=1`
	var args []any

	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.From != nil {
		query += ` AND day >= ?`
		args = append(args, timebill.FormatDay(*f.From))
	}
	if f.To != nil {
		query += ` AND day < ?`
		args = append(args, timebill.FormatDay(*f.To))
	}
	query += ` ORDER BY day, line`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []timebill.Entry
	for rows.Next() {
		var e timebill.Entry
		var day string
		if err := rows.Scan(&e.Line, &day, &e.Category, &e.Minutes); err != nil {
			return nil, err
		}
		e.Date, err = timebill.ParseDay(day)
		if err != nil {
			return nil, fmt.Errorf("entry day %q: %w", day, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
