package store

import (
	"fmt"
	"time"
)

func (s *Store) RecordRun(r Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, started_at, input, entry_count, first_day, last_day, total_minutes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Input, r.EntryCount, r.FirstDay, r.LastDay, r.TotalMinutes,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, started_at, input, entry_count, first_day, last_day, total_minutes FROM runs ORDER BY started_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Input, &r.EntryCount, &r.FirstDay, &r.LastDay, &r.TotalMinutes); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
