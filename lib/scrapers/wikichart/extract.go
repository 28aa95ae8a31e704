package wikichart

import (
	"github.com/PuerkitoBio/goquery"

	"hot100-backend/lib/htmlutil"
	"hot100-backend/lib/textutil"
)

// ExtractRows walks the data rows of a selected table and produces
// normalized records. Malformed rows never abort extraction, they come
// back as skips with a reason.
func ExtractRows(table SelectedTable, yearHint int, source string) ([]Record, []Skip) {
	var records []Record
	var skips []Skip

	body := table.Table.Find("tbody")
	if body.Length() == 0 {
		body = table.Table
	}

	body.Find("tr").Each(func(rowIdx int, tr *goquery.Selection) {
		cells := tr.Find("th, td")
		// structural separators and nested sub-headers
		if cells.Length() < 2 {
			return
		}
		// rows made entirely of header cells (including the header row
		// itself when it lives in the tbody)
		if tr.Find("td").Length() == 0 {
			return
		}

		last := cells.Length() - 1
		dateCell := cells.Eq(resolveIndex(table.Roles, RoleDate, last, 0))
		songCell := cells.Eq(resolveIndex(table.Roles, RoleSong, last, min(1, last)))

		song := htmlutil.ItalicText(songCell)
		if song == "" {
			song = songCell.Text()
		}
		song = textutil.StripQuotes(textutil.CleanCell(song))
		if song == "" {
			skips = append(skips, Skip{RowIndex: rowIdx, Reason: "empty song title"})
			return
		}

		rawDate := textutil.CleanCell(dateCell.Text())
		issueDate, year, ok := ParseIssueDate(rawDate, yearHint)
		if !ok {
			skips = append(skips, Skip{RowIndex: rowIdx, Reason: "unparseable issue date: " + rawDate})
			return
		}

		// artist column is optional, some tables simply lack it
		artist := ""
		if _, ok := table.Roles[RoleArtist]; ok {
			artistCell := cells.Eq(resolveIndex(table.Roles, RoleArtist, last, min(2, last)))
			artist = textutil.StripQuotes(textutil.CleanCell(artistCell.Text()))
		}

		records = append(records, Record{
			Year:      year,
			IssueDate: issueDate,
			Week:      issueDate,
			Song:      song,
			Artist:    artist,
			Source:    source,
			RowIndex:  rowIdx,
		})
	})

	return records, skips
}

// resolveIndex looks up a role's mapped column, falling back to a
// positional default when the mapping is absent or points past the end
// of the row. Continuation rows are often shorter than the header.
func resolveIndex(roles RoleMap, role Role, last int, fallback int) int {
	idx, ok := roles[role]
	if !ok || idx > last {
		return fallback
	}
	return idx
}
