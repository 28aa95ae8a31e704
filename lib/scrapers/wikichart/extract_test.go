package wikichart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sourceTag = "https://en.wikipedia.org/wiki/test"

func selectOne(t *testing.T, html string) SelectedTable {
	selected := SelectTables(parseDoc(t, html))
	require.Len(t, selected, 1)
	return selected[0]
}

func TestExtractRows(t *testing.T) {
	table := selectOne(t, `
		<table class="wikitable plainrowheaders">
			<tbody>
				<tr><th>Issue date</th><th>Song</th><th>Artist(s)</th><th>Ref.</th></tr>
				<tr><th scope="row">January 6, 2018</th><td>"Havana"</td><td>Camila Cabello</td><td>[1]</td></tr>
			</tbody>
		</table>
	`)

	records, skips := ExtractRows(table, 2018, sourceTag)
	require.Empty(t, skips)

	want := []Record{{
		Year:      2018,
		IssueDate: "2018-01-06",
		Week:      "2018-01-06",
		Song:      "Havana",
		Artist:    "Camila Cabello",
		Source:    sourceTag,
		RowIndex:  1,
	}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractRowsSkipsStructuralRows(t *testing.T) {
	table := selectOne(t, `
		<table class="wikitable">
			<tbody>
				<tr><th>Issue date</th><th>Song</th><th>Artist</th></tr>
				<tr><td colspan="3">1958 in music</td></tr>
				<tr><th>Issue date</th><th>Song</th><th>Artist</th></tr>
				<tr><td>August 4</td><td>Poor Little Fool</td><td>Ricky Nelson</td></tr>
			</tbody>
		</table>
	`)

	records, skips := ExtractRows(table, 1958, sourceTag)
	require.Empty(t, skips)
	require.Len(t, records, 1)
	require.Equal(t, "1958-08-04", records[0].IssueDate)
	require.Equal(t, "Poor Little Fool", records[0].Song)
}

func TestExtractRowsItalicTitlePreference(t *testing.T) {
	table := selectOne(t, `
		<table class="wikitable">
			<tbody>
				<tr><th>Issue date</th><th>Song</th><th>Artist</th></tr>
				<tr><td>January 13</td><td><i>Perfect</i> (Robbie Williams cover)</td><td>Ed Sheeran</td></tr>
			</tbody>
		</table>
	`)

	records, skips := ExtractRows(table, 2018, sourceTag)
	require.Empty(t, skips)
	require.Len(t, records, 1)
	require.Equal(t, "Perfect", records[0].Song)
}

func TestExtractRowsSkipReasons(t *testing.T) {
	table := selectOne(t, `
		<table class="wikitable">
			<tbody>
				<tr><th>Issue date</th><th>Song</th><th>Artist</th></tr>
				<tr><td>not a date</td><td>Some Song</td><td>Some Artist</td></tr>
				<tr><td>March 3</td><td>[4]</td><td>Some Artist</td></tr>
				<tr><td>March 10</td><td>Real Song</td><td>Real Artist</td></tr>
			</tbody>
		</table>
	`)

	records, skips := ExtractRows(table, 2018, sourceTag)
	require.Len(t, records, 1)
	require.Equal(t, "Real Song", records[0].Song)
	require.Len(t, skips, 2)
	require.Contains(t, skips[0].Reason, "unparseable issue date")
	require.Contains(t, skips[1].Reason, "empty song title")
}

func TestExtractRowsPositionalFallback(t *testing.T) {
	// continuation row is shorter than the header, the mapped song
	// index overflows and the positional default kicks in
	table := selectOne(t, `
		<table class="wikitable">
			<tbody>
				<tr><th>Issue date</th><th>Weeks</th><th>Notes</th><th>Ref.</th><th>Song</th></tr>
				<tr><td>May 5</td><td>Famous Song</td><td>x</td></tr>
			</tbody>
		</table>
	`)

	records, skips := ExtractRows(table, 2018, sourceTag)
	require.Empty(t, skips)
	require.Len(t, records, 1)
	require.Equal(t, "2018-05-05", records[0].IssueDate)
	require.Equal(t, "Famous Song", records[0].Song)
	require.Equal(t, "", records[0].Artist)
}

func TestExtractRowsWithoutArtistColumn(t *testing.T) {
	table := selectOne(t, `
		<table class="wikitable">
			<tbody>
				<tr><th>Date</th><th>Single</th></tr>
				<tr><td>June 2</td><td>"Nel Blu Dipinto Di Blu"</td></tr>
			</tbody>
		</table>
	`)

	records, skips := ExtractRows(table, 1958, sourceTag)
	require.Empty(t, skips)
	require.Len(t, records, 1)
	require.Equal(t, "", records[0].Artist)
	require.Equal(t, "Nel Blu Dipinto Di Blu", records[0].Song)
}

func TestCitationMarkersDedupeAfterCleanup(t *testing.T) {
	table := selectOne(t, `
		<table class="wikitable">
			<tbody>
				<tr><th>Issue date</th><th>Song</th><th>Artist</th></tr>
				<tr><td>January 6</td><td>Havana[1]</td><td>Camila Cabello</td></tr>
				<tr><td>January 6</td><td>Havana</td><td>Camila Cabello</td></tr>
			</tbody>
		</table>
	`)

	records, skips := ExtractRows(table, 2018, sourceTag)
	require.Empty(t, skips)
	require.Len(t, records, 2)
	require.Len(t, Dedupe(records), 1)
}
