package textutil

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	citationRegex   = regexp.MustCompile(`\[\d+\]`)
)

// CleanCell collapses whitespace and removes footnote citation markers
// like "[1]" from a table cell's text. NBSP and zero-width spaces show
// up in wikitable cells, so they are folded into regular spaces first.
func CleanCell(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "​", " ")
	s = citationRegex.ReplaceAllString(s, "")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

const wrappingQuotes = `"'` + "“”‘’ "

// StripQuotes removes wrapping quote characters (straight and curly)
// from a title.
func StripQuotes(s string) string {
	return strings.Trim(s, wrappingQuotes)
}

// NormalizeHeader lowercases and collapses a header cell's text so it
// can be matched against role keywords.
func NormalizeHeader(s string) string {
	return strings.ToLower(CleanCell(s))
}

// MatchHeader reports whether a normalized header contains any of the
// given keywords.
func MatchHeader(header string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(header, k) {
			return true
		}
	}
	return false
}
