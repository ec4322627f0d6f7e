// Package sheet converts between task trees and tabular spreadsheet
// records, and reads and writes those records as xlsx, csv or json.
package sheet

import "strings"

// Column headers, in export order.
const (
	ColType         = "Type"
	ColTitle        = "Title"
	ColStartDate    = "Start Date"
	ColEndDate      = "End Date"
	ColProgress     = "Progress (%)"
	ColDependencies = "Dependencies"
)

// Header is the first record of every export.
var Header = []string{ColType, ColTitle, ColStartDate, ColEndDate, ColProgress, ColDependencies}

// Row values for the Type column.
const (
	TypeSection = "Section"
	TypeTask    = "Task"
)

// Defaults applied to rows with an empty title.
const (
	UntitledTask    = "Untitled task"
	UntitledSection = "Untitled section"
)

// headerKey folds a header cell for lookup: case-insensitive, inner runs of
// whitespace collapsed.
func headerKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// columnIndex maps each known column to its position in header. Columns
// absent from the header map to -1.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(Header))
	for _, col := range Header {
		idx[col] = -1
	}
	for i, cell := range header {
		key := headerKey(cell)
		for _, col := range Header {
			if key == headerKey(col) && idx[col] < 0 {
				idx[col] = i
			}
		}
	}
	return idx
}
