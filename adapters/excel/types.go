package excel

import "strings"

// Row maps a header to the raw cell value of one spreadsheet row
type Row map[string]string

// Get returns the trimmed cell under column, or "" when the row has no such cell
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Sheet is the first worksheet (or the CSV file) with its header row split off
type Sheet struct {
	Headers []string
	Rows    []Row

	// lines[i] is the source line of Rows[i]; blank lines are not in Rows
	lines []int
}

// Line is the file line (CSV) or sheet row (XLSX) that data row i was read from.
// Sheets built without source lines number rows from 2, after the header.
func (s *Sheet) Line(i int) int {
	if i < len(s.lines) {
		return s.lines[i]
	}
	return i + 2
}
