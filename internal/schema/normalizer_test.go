package schema

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cliniform/bpvar-cli/internal/dataset"
)

func TestNormalizeNotLoaded(t *testing.T) {
	if _, err := Normalize(nil, nil); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("nil table err = %v, want ErrNotLoaded", err)
	}
	if _, err := Normalize(&dataset.Table{}, nil); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("empty table err = %v, want ErrNotLoaded", err)
	}
}

func TestNormalizeSeparateDateAndTime(t *testing.T) {
	tbl := bpTable()
	det := Detect(tbl)
	readings, err := Normalize(tbl, det.Mappings)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(readings) != 3 {
		t.Fatalf("readings = %d, want 3", len(readings))
	}
	r := readings[0]
	if r.PatientID == nil || *r.PatientID != "H001" {
		t.Fatalf("patient id = %v, want H001", r.PatientID)
	}
	want := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	if r.Timestamp == nil || !r.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", r.Timestamp, want)
	}
	if r.SBP != 140 || r.DBP != 90 {
		t.Fatalf("bp = %v/%v, want 140/90", r.SBP, r.DBP)
	}
	if r.HeartRate == nil || *r.HeartRate != 72 {
		t.Fatalf("hr = %v, want 72", r.HeartRate)
	}
}

func TestNormalizeDateTimeWinsOverDate(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Timestamp", "Date", "SBP", "DBP"},
		Rows: [][]dataset.Cell{
			{"2024-01-15 08:30", "1999-01-01", "140", "90"},
		},
	}
	mappings := []Mapping{
		{Column: "Timestamp", Role: RoleDateTime},
		{Column: "Date", Role: RoleDate},
		{Column: "SBP", Role: RoleSystolic},
		{Column: "DBP", Role: RoleDiastolic},
	}
	readings, err := Normalize(tbl, mappings)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	if readings[0].Timestamp == nil || !readings[0].Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", readings[0].Timestamp, want)
	}
}

func TestNormalizeMalformedCells(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Date", "SBP", "DBP"},
		Rows: [][]dataset.Cell{
			{"not a date", "abc", "90"},
			{"2024-01-15", "140", ""},
		},
	}
	mappings := []Mapping{
		{Column: "Date", Role: RoleDate},
		{Column: "SBP", Role: RoleSystolic},
		{Column: "DBP", Role: RoleDiastolic},
	}
	readings, err := Normalize(tbl, mappings)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if readings[0].Timestamp != nil {
		t.Fatalf("timestamp = %v, want nil for malformed date", readings[0].Timestamp)
	}
	if !math.IsNaN(readings[0].SBP) {
		t.Fatalf("sbp = %v, want NaN for malformed number", readings[0].SBP)
	}
	if readings[0].DBP != 90 {
		t.Fatalf("dbp = %v, want 90", readings[0].DBP)
	}
	if !math.IsNaN(readings[1].DBP) {
		t.Fatalf("dbp = %v, want NaN for empty cell", readings[1].DBP)
	}
}

func TestNormalizeSkipsNotesAndIgnore(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"SBP", "DBP", "Notes"},
		Rows: [][]dataset.Cell{
			{"140", "90", "after lunch"},
		},
	}
	mappings := []Mapping{
		{Column: "SBP", Role: RoleSystolic},
		{Column: "DBP", Role: RoleDiastolic},
		{Column: "Notes", Role: RoleNotes},
	}
	readings, err := Normalize(tbl, mappings)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	r := readings[0]
	if r.PatientID != nil || r.Timestamp != nil || r.HeartRate != nil {
		t.Fatalf("unexpected populated optionals: %+v", r)
	}
}

func TestNormalizeMissingMappedColumnDropped(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"SBP", "DBP"},
		Rows: [][]dataset.Cell{
			{"140", "90"},
		},
	}
	mappings := []Mapping{
		{Column: "SBP", Role: RoleSystolic},
		{Column: "DBP", Role: RoleDiastolic},
		{Column: "Gone", Role: RolePatientID},
	}
	readings, err := Normalize(tbl, mappings)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if readings[0].PatientID != nil {
		t.Fatalf("patient id = %v, want nil for vanished column", readings[0].PatientID)
	}
}
