package wikichart

import (
	"github.com/PuerkitoBio/goquery"

	"hot100-backend/lib/textutil"
)

type Role string

const (
	RoleDate   Role = "date"
	RoleSong   Role = "song"
	RoleArtist Role = "artist"
)

// roleKeywords classifies a normalized header cell into a column role.
// Evaluated in order, which matters: "single" and "title" must not be
// consulted before the date keywords on cells like "issue date".
// New header variants go here, not into the matching code.
var roleKeywords = []struct {
	Role     Role
	Keywords []string
}{
	{RoleDate, []string{"issue date", "chart date", "week ending", "week of", "week date", "date"}},
	{RoleSong, []string{"song", "single", "title"}},
	{RoleArtist, []string{"artist"}},
}

// RoleMap maps a column role to its zero-based cell index in a table.
type RoleMap map[Role]int

// SelectedTable is a data table whose header row qualified it for
// extraction.
type SelectedTable struct {
	Table *goquery.Selection
	Roles RoleMap
}

// SelectTables finds every wikitable on the page whose header row names
// at least a date and a song column. It never fails: a page with no
// qualifying tables just yields nothing, which callers treat as a
// zero-row year. Multiple qualifying tables are all returned, some year
// pages split the chart across sections.
func SelectTables(doc *goquery.Document) []SelectedTable {
	var selected []SelectedTable
	doc.Find("table.wikitable").Each(func(_ int, table *goquery.Selection) {
		header := headerRow(table)
		if header == nil {
			return
		}
		roles := classifyHeader(header)
		if _, ok := roles[RoleDate]; !ok {
			return
		}
		if _, ok := roles[RoleSong]; !ok {
			return
		}
		selected = append(selected, SelectedTable{
			Table: table,
			Roles: roles,
		})
	})
	return selected
}

// headerRow prefers an explicit thead, falling back to the first row
// that carries th cells. Some older year pages have neither.
func headerRow(table *goquery.Selection) *goquery.Selection {
	row := table.Find("thead tr").First()
	if row.Length() > 0 {
		return row
	}
	var found *goquery.Selection
	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if tr.Find("th").Length() > 0 {
			found = tr
			return false
		}
		return true
	})
	return found
}

func classifyHeader(row *goquery.Selection) RoleMap {
	roles := RoleMap{}
	row.Find("th, td").Each(func(idx int, cell *goquery.Selection) {
		text := textutil.NormalizeHeader(cell.Text())
		for _, rk := range roleKeywords {
			if _, taken := roles[rk.Role]; taken {
				continue
			}
			if textutil.MatchHeader(text, rk.Keywords) {
				roles[rk.Role] = idx
				break
			}
		}
	})
	return roles
}
