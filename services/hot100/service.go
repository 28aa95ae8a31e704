// Package hot100 runs the multi-year Billboard Hot 100 scrape pipeline:
// fan out over year pages, extract and normalize records, then merge
// everything into the combined artifacts and the sqlite archive.
package hot100

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"hot100-backend/lib/chartstore"
	"hot100-backend/lib/scrapers/wikichart"
)

var tracer = otel.Tracer("services/hot100")

// FirstChartYear is the Hot 100's debut year, the lower bound of any
// scrape range.
const FirstChartYear = 1958

type Config struct {
	// StartYear defaults to FirstChartYear.
	StartYear int
	// EndYear defaults to the current calendar year.
	EndYear int
	OutDir  string
	// BaseUrl overrides the wikipedia origin, used by tests.
	BaseUrl         string
	RequestTimeout  time.Duration
	PolitenessDelay time.Duration
	MaxRetries      int
	// Concurrency caps simultaneous in-flight year fetches, defaults
	// to 4.
	Concurrency int
}

type YearSummary struct {
	Year    int
	Rows    int
	Skipped int
	Failed  bool
}

type RunSummary struct {
	Years        []YearSummary
	CombinedRows int
	FailedYears  int
}

type Service struct {
	cfg    Config
	client wikichart.Client
	store  chartstore.Store
	db     *sql.DB
}

// NewService validates the configured year range and prepares the
// output directory. `database` may be nil to skip the sqlite archive.
func NewService(cfg Config, database *sql.DB) (Service, error) {
	if cfg.StartYear == 0 {
		cfg.StartYear = FirstChartYear
	}
	if cfg.EndYear == 0 {
		cfg.EndYear = time.Now().UTC().Year()
	}
	if cfg.EndYear < cfg.StartYear {
		return Service{}, fmt.Errorf("invalid year range: %d..%d", cfg.StartYear, cfg.EndYear)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	store, err := chartstore.NewStore(cfg.OutDir)
	if err != nil {
		return Service{}, err
	}

	client := wikichart.NewClient(wikichart.ClientOptions{
		BaseUrl:         cfg.BaseUrl,
		Timeout:         cfg.RequestTimeout,
		RetryCount:      cfg.MaxRetries,
		PolitenessDelay: cfg.PolitenessDelay,
	})

	return Service{
		cfg:    cfg,
		client: client,
		store:  store,
		db:     database,
	}, nil
}

type yearResult struct {
	records []wikichart.Record
	skips   []wikichart.Skip
	err     error
}

// Run scrapes every year in the configured range and writes all
// artifacts. A failed year becomes an empty dataset and the run goes
// on; only persistence failures abort it.
func (s Service) Run(ctx context.Context) (RunSummary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("start_year", s.cfg.StartYear),
		attribute.Int("end_year", s.cfg.EndYear),
	)

	count := s.cfg.EndYear - s.cfg.StartYear + 1
	results := make([]yearResult, count)

	jobs := make(chan int)
	wg := sync.WaitGroup{}
	for w := 0; w < s.cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for offset := range jobs {
				// a cancelled run stops issuing fetches but still
				// records the remaining years as failed
				if ctx.Err() != nil {
					results[offset] = yearResult{err: ctx.Err()}
					continue
				}
				year := s.cfg.StartYear + offset
				records, skips, err := s.client.ScrapeYear(ctx, year)
				results[offset] = yearResult{records: records, skips: skips, err: err}
			}
		}()
	}
	for offset := 0; offset < count; offset++ {
		jobs <- offset
	}
	close(jobs)
	wg.Wait()

	summary := RunSummary{}
	perYear := make([][]wikichart.Record, count)
	for offset, res := range results {
		year := s.cfg.StartYear + offset

		// empty artifact on failure, so the combined output still
		// reflects that the year was attempted
		err := s.store.WriteYear(year, res.records)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to write year artifact")
			return RunSummary{}, err
		}

		if res.err != nil {
			slog.ErrorContext(ctx, "year failed", "year", year, "err", res.err)
			summary.FailedYears++
			summary.Years = append(summary.Years, YearSummary{Year: year, Failed: true})
			continue
		}

		slog.InfoContext(ctx, "year scraped", "year", year, "rows", len(res.records), "skipped", len(res.skips))
		perYear[offset] = res.records
		summary.Years = append(summary.Years, YearSummary{
			Year:    year,
			Rows:    len(res.records),
			Skipped: len(res.skips),
		})
	}

	combined := wikichart.MergeYears(perYear, s.cfg.StartYear, s.cfg.EndYear)
	summary.CombinedRows = len(combined)

	err := s.store.WriteCombined(combined)
	if err != nil {
		return RunSummary{}, err
	}
	err = s.store.WriteCSV(combined)
	if err != nil {
		return RunSummary{}, err
	}

	if s.db != nil {
		err = s.archive(ctx, combined)
		if err != nil {
			return RunSummary{}, err
		}
	}

	slog.InfoContext(ctx, "run complete",
		"combined_rows", summary.CombinedRows,
		"failed_years", summary.FailedYears,
	)
	return summary, nil
}

// Combine rebuilds the combined artifacts from per-year files already
// on disk, without re-fetching anything. Missing years are skipped,
// unreadable ones are logged and skipped.
func (s Service) Combine(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "Combine")
	defer span.End()

	var perYear [][]wikichart.Record
	for year := s.cfg.StartYear; year <= s.cfg.EndYear; year++ {
		records, err := s.store.ReadYear(year)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			slog.WarnContext(ctx, "could not read year artifact", "year", year, "err", err)
			continue
		}
		perYear = append(perYear, records)
	}

	combined := wikichart.MergeYears(perYear, s.cfg.StartYear, s.cfg.EndYear)
	err := s.store.WriteCombined(combined)
	if err != nil {
		return 0, err
	}
	err = s.store.WriteCSV(combined)
	if err != nil {
		return 0, err
	}
	return len(combined), nil
}
