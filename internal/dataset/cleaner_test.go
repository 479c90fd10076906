package dataset

import (
	"reflect"
	"testing"
)

func TestCleanFiltersEmptyMarkers(t *testing.T) {
	rows := [][]string{
		{"Age", "Mood"},
		{"15", "Happy"},
		{"", "Sad"},
		{"17", "null"},
		{"18", "NULL"},
		{"19", "Null"},
		{"0", "Calm"},
		{"21", "Stressed"},
	}

	res := Clean(rows)

	if res.OriginalRows != 7 {
		t.Errorf("OriginalRows = %d, want 7", res.OriginalRows)
	}
	if res.CleanedRows != 2 {
		t.Errorf("CleanedRows = %d, want 2", res.CleanedRows)
	}
	if res.RemovedRows != 5 {
		t.Errorf("RemovedRows = %d, want 5", res.RemovedRows)
	}

	want := [][]string{
		{"15", "Happy"},
		{"21", "Stressed"},
	}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %v, want %v", res.Rows, want)
	}
	if !reflect.DeepEqual(res.Header, []string{"Age", "Mood"}) {
		t.Errorf("Header = %v, want [Age Mood]", res.Header)
	}
}

func TestCleanPreservesOrder(t *testing.T) {
	rows := [][]string{
		{"A"},
		{"3"},
		{"1"},
		{"2"},
	}
	res := Clean(rows)
	want := [][]string{{"3"}, {"1"}, {"2"}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %v, want %v (original order)", res.Rows, want)
	}
}

func TestCleanCountsArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		original int
		cleaned  int
		removed  int
	}{
		{"all kept", [][]string{{"A", "B"}, {"1", "2"}, {"3", "4"}}, 2, 2, 0},
		{"all removed", [][]string{{"A"}, {""}, {"0"}}, 2, 0, 2},
		{"header only", [][]string{{"A", "B"}}, 0, 0, 0},
		// Inherited arithmetic: an empty file counts -1 original rows.
		{"empty file", nil, -1, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Clean(tt.rows)
			if res.OriginalRows != tt.original {
				t.Errorf("OriginalRows = %d, want %d", res.OriginalRows, tt.original)
			}
			if res.CleanedRows != tt.cleaned {
				t.Errorf("CleanedRows = %d, want %d", res.CleanedRows, tt.cleaned)
			}
			if res.RemovedRows != tt.removed {
				t.Errorf("RemovedRows = %d, want %d", res.RemovedRows, tt.removed)
			}
		})
	}
}

func TestCleanSkipsMalformedWidthRows(t *testing.T) {
	rows := [][]string{
		{"A", "B"},
		{"1", "2"},
		{"4", "5", "6"}, // too wide
		{"7"},           // too narrow
		{"8", "9"},
	}
	res := Clean(rows)

	want := [][]string{{"1", "2"}, {"8", "9"}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("Rows = %v, want %v", res.Rows, want)
	}
	for _, row := range res.Rows {
		if len(row) != len(res.Header) {
			t.Errorf("kept row %v has %d cells, header has %d", row, len(row), len(res.Header))
		}
	}
	if res.RemovedRows != res.OriginalRows-res.CleanedRows {
		t.Errorf("RemovedRows = %d, want %d", res.RemovedRows, res.OriginalRows-res.CleanedRows)
	}
}

func TestCleanEmptyResultHasNoTable(t *testing.T) {
	res := Clean(nil)
	if res.Header != nil {
		t.Errorf("Header = %v, want nil", res.Header)
	}
	if res.Table() != nil {
		t.Errorf("Table() = %v, want nil", res.Table())
	}
}

func TestTableIncludesHeaderFirst(t *testing.T) {
	res := Clean([][]string{{"A"}, {"1"}})
	table := res.Table()
	if len(table) != 2 || table[0][0] != "A" || table[1][0] != "1" {
		t.Errorf("Table() = %v, want [[A] [1]]", table)
	}
}
