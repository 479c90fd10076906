package dataset

import "strings"

// Result holds a cleaned table plus before/after counts. The counts
// exclude the header, so RemovedRows is always OriginalRows - CleanedRows.
type Result struct {
	Header       []string   `json:"header"`
	Rows         [][]string `json:"rows"`
	OriginalRows int        `json:"original_rows"`
	CleanedRows  int        `json:"cleaned_rows"`
	RemovedRows  int        `json:"removed_rows"`
}

// Clean filters data rows that contain any empty-marker cell: the empty
// string, the literal text "null" in any case, or the literal "0". The
// header row is kept unconditionally and row order is preserved.
//
// Filtering "0" is inherited behavior from the original data-cleaning
// heuristic and is intentionally kept, even though zero is a plausible
// value for some feature columns.
//
// Rows whose cell count differs from the header are dropped as malformed.
// An empty input yields OriginalRows == -1; callers treat that as
// "nothing to clean", not an error.
func Clean(rows [][]string) Result {
	res := Result{OriginalRows: len(rows) - 1}

	if len(rows) == 0 {
		res.CleanedRows = -1
		return res
	}

	res.Header = rows[0]
	for _, row := range rows[1:] {
		if len(row) != len(res.Header) {
			continue
		}
		if hasEmptyMarker(row) {
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	res.CleanedRows = len(res.Rows)
	res.RemovedRows = res.OriginalRows - res.CleanedRows
	return res
}

// Table returns the header plus kept rows, ready for WriteDataset.
func (r Result) Table() [][]string {
	if r.Header == nil {
		return nil
	}
	table := make([][]string, 0, len(r.Rows)+1)
	table = append(table, r.Header)
	table = append(table, r.Rows...)
	return table
}

func hasEmptyMarker(row []string) bool {
	for _, cell := range row {
		if cell == "" || cell == "0" || strings.EqualFold(cell, "null") {
			return true
		}
	}
	return false
}
