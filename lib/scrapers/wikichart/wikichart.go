// Package wikichart scrapes weekly Billboard Hot 100 number-one records
// out of Wikipedia's per-year list pages. The pages are hand-edited and
// inconsistently laid out across decades, so table and column discovery
// is heuristic: a table qualifies when its header row names a date and a
// song column, everything else is best-effort extraction with per-row
// skips instead of errors.
package wikichart

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/scrapers/wikichart")

// Record is one normalized number-one week.
type Record struct {
	Year      int    `json:"year"`
	IssueDate string `json:"issue_date"`
	// Week mirrors IssueDate, kept for backward compatibility with the
	// historical CSV schema.
	Week     string `json:"week"`
	Song     string `json:"song"`
	Artist   string `json:"artist"`
	Source   string `json:"source"`
	RowIndex int    `json:"row_index"`
}

// Key is the identity under which records are deduplicated.
func (r Record) Key() string {
	return r.IssueDate + "\x00" + strings.ToLower(r.Song) + "\x00" + strings.ToLower(r.Artist)
}

// Skip records a row that was dropped during extraction, so a run can
// report what it passed over instead of swallowing it.
type Skip struct {
	RowIndex int
	Reason   string
}

// ScrapeYear fetches a year page and extracts its number-one records.
// Rows that cannot be parsed are returned as skips, only the fetch
// itself can fail.
func (c Client) ScrapeYear(ctx context.Context, year int) ([]Record, []Skip, error) {
	ctx, span := tracer.Start(ctx, "ScrapeYear")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year))

	url := c.YearURL(year)
	doc, err := c.fetchPage(ctx, url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch year page")
		return nil, nil, err
	}

	var records []Record
	var skips []Skip
	for _, table := range SelectTables(doc) {
		recs, sk := ExtractRows(table, year, url)
		records = append(records, recs...)
		skips = append(skips, sk...)
	}

	records = Dedupe(records)
	slog.DebugContext(ctx, "scraped year page",
		"year", year,
		"rows", len(records),
		"skipped", len(skips),
	)
	return records, skips, nil
}
