package chartstore

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"hot100-backend/lib/scrapers/wikichart"
)

var testRecords = []wikichart.Record{
	{
		Year:      2018,
		IssueDate: "2018-01-06",
		Week:      "2018-01-06",
		Song:      "Havana",
		Artist:    "Camila Cabello",
		Source:    "https://en.wikipedia.org/wiki/test",
		RowIndex:  1,
	},
	{
		Year:      2018,
		IssueDate: "2018-01-13",
		Week:      "2018-01-13",
		Song:      "Perfect",
		Artist:    "Ed Sheeran",
		Source:    "https://en.wikipedia.org/wiki/test",
		RowIndex:  2,
	},
}

func TestWriteReadYear(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	err = store.WriteYear(2018, testRecords)
	require.NoError(t, err)

	got, err := store.ReadYear(2018)
	require.NoError(t, err)
	if diff := cmp.Diff(testRecords, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = store.ReadYear(1999)
	require.True(t, os.IsNotExist(err))
}

func TestWriteYearEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	// a failed year still produces an artifact, as an empty array
	err = store.WriteYear(1962, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "1962.json"))
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	got, err := store.ReadYear(1962)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	err = store.WriteCSV(testRecords)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "billboard_hot100_weekly.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, []string{
		"2018", "2018-01-06", "2018-01-06", "Havana", "Camila Cabello",
		"https://en.wikipedia.org/wiki/test", "1",
	}, rows[1])
}

func TestWritesAreDeterministicAndAtomic(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.WriteCombined(testRecords))
	first, err := os.ReadFile(filepath.Join(dir, "all.json"))
	require.NoError(t, err)

	require.NoError(t, store.WriteCombined(testRecords))
	second, err := os.ReadFile(filepath.Join(dir, "all.json"))
	require.NoError(t, err)
	require.Equal(t, first, second)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file: %s", e.Name())
	}
}
