package hot100

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "embed"

	"hot100-backend/lib/testutil"
	"hot100-backend/services/hot100/db"
)

//go:embed testdata/2018.html
var yearPage2018 string

func newFixtureServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "List_of_Billboard_Hot_100_number_ones_of_2018") {
			w.Header().Set("content-type", "text/html")
			w.Write([]byte(yearPage2018))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestServiceRun(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/hot100",
		DbSchema: db.Schema,
	})
	defer cleanup()

	server := newFixtureServer(t)
	dir := t.TempDir()

	service, err := NewService(Config{
		StartYear:   2018,
		EndYear:     2019,
		OutDir:      dir,
		BaseUrl:     server.URL,
		Concurrency: 2,
	}, setup.DB)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	summary, err := service.Run(ctx)
	require.NoError(t, err)

	// 2019 has no fixture page, it fails in isolation
	require.Equal(t, 1, summary.FailedYears)
	require.Equal(t, 3, summary.CombinedRows)
	require.Len(t, summary.Years, 2)
	require.Equal(t, 3, summary.Years[0].Rows)
	require.True(t, summary.Years[1].Failed)

	// the failed year still has an artifact, as an empty array
	data, err := os.ReadFile(filepath.Join(dir, "2019.json"))
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	records, err := service.store.ReadYear(2018)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, "2018-01-06", records[0].IssueDate)
	require.Equal(t, "Havana", records[0].Song)
	require.Equal(t, "Camila Cabello featuring Young Thug", records[0].Artist)
	require.Equal(t, "Perfect", records[1].Song)

	archived, err := service.RecordsForYear(ctx, 2018)
	require.NoError(t, err)
	require.Len(t, archived, 3)
}

func TestServiceRunIdempotent(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/hot100:idempotent",
		DbSchema: db.Schema,
	})
	defer cleanup()

	server := newFixtureServer(t)
	dir := t.TempDir()

	service, err := NewService(Config{
		StartYear:   2018,
		EndYear:     2018,
		OutDir:      dir,
		BaseUrl:     server.URL,
		Concurrency: 1,
	}, setup.DB)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err = service.Run(ctx)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, "all.json"))
	require.NoError(t, err)

	_, err = service.Run(ctx)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "all.json"))
	require.NoError(t, err)
	require.Equal(t, first, second)

	// re-running must not duplicate archive rows
	archived, err := service.RecordsForYear(ctx, 2018)
	require.NoError(t, err)
	require.Len(t, archived, 3)
}

func TestServiceCombine(t *testing.T) {
	_, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name: "services/hot100:combine",
	})
	defer cleanup()

	server := newFixtureServer(t)
	dir := t.TempDir()

	service, err := NewService(Config{
		StartYear:   2018,
		EndYear:     2019,
		OutDir:      dir,
		BaseUrl:     server.URL,
		Concurrency: 1,
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, err = service.Run(ctx)
	require.NoError(t, err)

	// combined artifacts rebuild from disk without re-fetching
	require.NoError(t, os.Remove(filepath.Join(dir, "all.json")))
	rows, err := service.Combine(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, rows)

	_, err = os.Stat(filepath.Join(dir, "all.json"))
	require.NoError(t, err)
}

func TestNewServiceRejectsInvalidRange(t *testing.T) {
	_, err := NewService(Config{
		StartYear: 2020,
		EndYear:   2010,
		OutDir:    t.TempDir(),
	}, nil)
	require.Error(t, err)
}
