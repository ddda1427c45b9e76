package dataset

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-15 08:30", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"15.01.2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"15.01.2024 08:30", time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC), true},
		{"15/01/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"08:30", time.Date(0, 1, 1, 8, 30, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseTime(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseTime(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCellFloatLocales(t *testing.T) {
	tests := []struct {
		in   string
		opt  Options
		want float64
		ok   bool
	}{
		{"140", Options{}, 140, true},
		{"140,5", Options{}, 140.5, true},
		{"1.234,5", Options{}, 1234.5, true},
		{"1,234.5", Options{}, 1234.5, true},
		{"85%", Options{}, 85, true},
		{"140,5", Options{DecimalSeparator: ','}, 140.5, true},
		{"", Options{}, 0, false},
		{"abc", Options{}, 0, false},
		{"15.01.2024", Options{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := Cell(tt.in).Float(tt.opt)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("Cell(%q).Float = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestColumnIndexCaseInsensitive(t *testing.T) {
	tbl := &Table{Columns: []string{"Patient_ID", " SBP ", "DBP"}}
	if got := tbl.ColumnIndex("patient_id"); got != 0 {
		t.Fatalf("ColumnIndex(patient_id) = %d, want 0", got)
	}
	if got := tbl.ColumnIndex("sbp"); got != 1 {
		t.Fatalf("ColumnIndex(sbp) = %d, want 1", got)
	}
	if got := tbl.ColumnIndex("missing"); got != -1 {
		t.Fatalf("ColumnIndex(missing) = %d, want -1", got)
	}
}

func TestColumnPadsRaggedRows(t *testing.T) {
	tbl := &Table{
		Columns: []string{"A", "B"},
		Rows:    [][]Cell{{"1", "2"}, {"3"}},
	}
	col := tbl.Column(1)
	if len(col) != 2 || col[0] != "2" || col[1] != "" {
		t.Fatalf("Column(1) = %#v", col)
	}
}
