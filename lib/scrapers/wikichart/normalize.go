package wikichart

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"hot100-backend/lib/textutil"
)

var months = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "sept": "September", "oct": "October",
	"nov": "November", "dec": "December",
	"january": "January", "february": "February", "march": "March",
	"april": "April", "june": "June", "july": "July", "august": "August",
	"september": "September", "october": "October", "november": "November",
	"december": "December",
}

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	embeddedYear  = regexp.MustCompile(`\b(\d{4})\b`)
	monthDayRegex = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})\b`)
)

// ParseIssueDate turns the free-text date of a chart row into a strict
// ISO date. Wikipedia writes these in many shapes ("January 7",
// "Jan. 7, 2018", "Week of January 7", sometimes already ISO); year-less
// forms are completed with yearHint, the nominal year of the page. A
// false return means the text carries no recognizable date and the row
// should be dropped.
func ParseIssueDate(text string, yearHint int) (string, int, bool) {
	t := textutil.CleanCell(text)
	if t == "" {
		return "", 0, false
	}

	if m := isoDateRegex.FindString(t); m != "" {
		if d, err := time.Parse("2006-01-02", m); err == nil {
			return formatDate(d)
		}
	}

	// "Jan. 7, 2018" -> "jan 7 2018" -> "January 7 2018"
	cleaned := strings.NewReplacer(".", "", ",", "", "(", " ", ")", " ").Replace(t)
	parts := strings.Fields(cleaned)
	for i, p := range parts {
		if full, ok := months[strings.ToLower(p)]; ok {
			parts[i] = full
		}
	}

	if len(parts) == 3 {
		if d, err := time.Parse("January 2 2006", strings.Join(parts, " ")); err == nil {
			return formatDate(d)
		}
	}
	if len(parts) == 2 {
		if d, err := time.Parse("January 2 2006", parts[0]+" "+parts[1]+" "+strconv.Itoa(yearHint)); err == nil {
			return formatDate(d)
		}
	}

	// prefixed or suffixed text, e.g. "Week of January 7" or
	// "January 7 (chart of 1998)"
	if m := monthDayRegex.FindStringSubmatch(cleaned); m != nil {
		month := months[strings.ToLower(m[1])]
		year := strconv.Itoa(yearHint)
		if y := embeddedYear.FindString(cleaned); y != "" {
			year = y
		}
		if d, err := time.Parse("January 2 2006", month+" "+m[2]+" "+year); err == nil {
			return formatDate(d)
		}
	}

	return "", 0, false
}

func formatDate(d time.Time) (string, int, bool) {
	return d.Format("2006-01-02"), d.Year(), true
}

// Dedupe drops later duplicates under the record identity key,
// preserving insertion order so the first-encountered record wins.
func Dedupe(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := r.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

// MergeYears combines per-year record lists into one deduplicated
// dataset sorted by issue date (song, then artist, break ties). Records
// whose parsed year falls outside [startYear, endYear] are dropped,
// they bleed in from adjacent-year tables at page boundaries.
func MergeYears(perYear [][]Record, startYear, endYear int) []Record {
	var all []Record
	for _, records := range perYear {
		for _, r := range records {
			if r.Year < startYear || r.Year > endYear {
				continue
			}
			all = append(all, r)
		}
	}
	all = Dedupe(all)
	slices.SortStableFunc(all, func(a, b Record) int {
		if c := strings.Compare(a.IssueDate, b.IssueDate); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a.Song), strings.ToLower(b.Song)); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Artist), strings.ToLower(b.Artist))
	})
	return all
}
