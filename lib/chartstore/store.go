// Package chartstore persists chart datasets as JSON and CSV artifacts.
// Every write goes through a temp file and a rename so a cancelled or
// crashed run never leaves a half-written artifact behind.
package chartstore

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"hot100-backend/lib/scrapers/wikichart"
)

const (
	combinedFile = "all.json"
	csvFile      = "billboard_hot100_weekly.csv"
)

var csvHeader = []string{"year", "issue_date", "week", "song", "artist", "source", "row_index"}

type Store struct {
	dir string
}

func NewStore(dir string) (Store, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return Store{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	return Store{dir: dir}, nil
}

func (s Store) yearPath(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.json", year))
}

// WriteYear writes the per-year artifact. A nil record list is written
// as an empty array so downstream tooling can tell an attempted year
// from an absent one.
func (s Store) WriteYear(year int, records []wikichart.Record) error {
	return s.writeJSON(s.yearPath(year), records)
}

// ReadYear loads a per-year artifact. A missing file returns
// os.ErrNotExist, callers decide whether that is a problem.
func (s Store) ReadYear(year int) ([]wikichart.Record, error) {
	data, err := os.ReadFile(s.yearPath(year))
	if err != nil {
		return nil, err
	}
	var records []wikichart.Record
	err = json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.yearPath(year), err)
	}
	return records, nil
}

func (s Store) WriteCombined(records []wikichart.Record) error {
	return s.writeJSON(filepath.Join(s.dir, combinedFile), records)
}

func (s Store) WriteCSV(records []wikichart.Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Year),
			r.IssueDate,
			r.Week,
			r.Song,
			r.Artist,
			r.Source,
			strconv.Itoa(r.RowIndex),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(s.dir, csvFile), buf.Bytes())
}

func (s Store) writeJSON(path string, records []wikichart.Record) error {
	if records == nil {
		records = []wikichart.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	err := os.WriteFile(tmp, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	err = os.Rename(tmp, path)
	if err != nil {
		return fmt.Errorf("failed to move %s into place: %w", tmp, err)
	}
	return nil
}
