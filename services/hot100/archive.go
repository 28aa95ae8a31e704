package hot100

import (
	"context"
	"errors"

	"hot100-backend/lib/scrapers/wikichart"
)

var ErrNoArchive = errors.New("no archive database configured")

// archive upserts combined records into the sqlite archive. The unique
// index on (issue_date, song, artist) plus INSERT OR IGNORE keeps the
// first-wins dedup policy intact across re-runs.
func (s Service) archive(ctx context.Context, records []wikichart.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO chart_records
			(issue_date, song, artist, year, week, source, row_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx, r.IssueDate, r.Song, r.Artist, r.Year, r.Week, r.Source, r.RowIndex)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecordsForYear reads archived records for one year, ordered the same
// way as the combined dataset.
func (s Service) RecordsForYear(ctx context.Context, year int) ([]wikichart.Record, error) {
	if s.db == nil {
		return nil, ErrNoArchive
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT issue_date, song, artist, year, week, source, row_index
		FROM chart_records
		WHERE year = ?
		ORDER BY issue_date ASC, song ASC
	`, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []wikichart.Record
	for rows.Next() {
		var r wikichart.Record
		err := rows.Scan(&r.IssueDate, &r.Song, &r.Artist, &r.Year, &r.Week, &r.Source, &r.RowIndex)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
