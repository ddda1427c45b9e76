package schema

import (
	"strings"
	"testing"

	"github.com/cliniform/bpvar-cli/internal/dataset"
)

func bpTable() *dataset.Table {
	return &dataset.Table{
		Name:    "readings.csv",
		Columns: []string{"Patient_ID", "Date", "Time", "SBP", "DBP", "Heart_Rate"},
		Rows: [][]dataset.Cell{
			{"H001", "2024-01-15", "08:00", "140", "90", "72"},
			{"H001", "2024-01-15", "12:00", "150", "95", "75"},
			{"H002", "2024-01-15", "08:30", "128", "82", "68"},
		},
	}
}

func TestDetectCleanTable(t *testing.T) {
	det := Detect(bpTable())
	if len(det.Mappings) != 6 {
		t.Fatalf("mappings = %d, want 6", len(det.Mappings))
	}
	want := []Role{RolePatientID, RoleDate, RoleTime, RoleSystolic, RoleDiastolic, RoleHeartRate}
	for i, m := range det.Mappings {
		if m.Role != want[i] {
			t.Errorf("column %q role = %v, want %v", m.Column, m.Role, want[i])
		}
		if m.Confidence != 0.8 {
			t.Errorf("column %q confidence = %v, want 0.8", m.Column, m.Confidence)
		}
	}
	if len(det.Issues) != 0 {
		t.Fatalf("issues = %#v, want none", det.Issues)
	}
}

func TestDetectTurkishHeaders(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Hasta_No", "Tarih", "Saat", "Sistolik", "Diastolik", "Nabiz"},
		Rows: [][]dataset.Cell{
			{"H001", "15.01.2024", "08:00", "140", "90", "72"},
		},
	}
	det := Detect(tbl)
	want := []Role{RolePatientID, RoleDate, RoleTime, RoleSystolic, RoleDiastolic, RoleHeartRate}
	for i, m := range det.Mappings {
		if m.Role != want[i] {
			t.Errorf("column %q role = %v, want %v", m.Column, m.Role, want[i])
		}
	}
}

func TestDetectMissingRequired(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Patient_ID", "SBP"},
		Rows: [][]dataset.Cell{
			{"H001", "140"},
		},
	}
	det := Detect(tbl)
	joined := strings.Join(det.Issues, "\n")
	if !strings.Contains(joined, "Missing required columns: dbp") {
		t.Errorf("missing-column issue absent: %#v", det.Issues)
	}
	if !strings.Contains(joined, "No date/time column detected") {
		t.Errorf("no-temporal issue absent: %#v", det.Issues)
	}
}

func TestDetectQualityIssues(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Date", "SBP", "DBP"},
		Rows: [][]dataset.Cell{
			{"2024-01-15", "140", "90"},
			{"2024-01-16", "", "95"},
			{"2024-01-17", "400", "92"},
			{"2024-01-18", "45", "25"},
		},
	}
	det := Detect(tbl)
	joined := strings.Join(det.Issues, "\n")
	if !strings.Contains(joined, "SBP has 1 missing values") {
		t.Errorf("missing value issue absent: %#v", det.Issues)
	}
	if !strings.Contains(joined, "SBP has 2 potential outliers (<50 or >300)") {
		t.Errorf("SBP outlier issue absent: %#v", det.Issues)
	}
	if !strings.Contains(joined, "DBP has 1 potential outliers (<30 or >200)") {
		t.Errorf("DBP outlier issue absent: %#v", det.Issues)
	}
}

func TestValidateHandEditedMapping(t *testing.T) {
	tbl := bpTable()
	mappings := []Mapping{
		{Column: "Patient_ID", Role: RolePatientID},
		{Column: "Date", Role: RoleDate},
		{Column: "SBP", Role: RoleSystolic},
		{Column: "DBP", Role: RoleDiastolic},
	}
	if issues := Validate(tbl, mappings); len(issues) != 0 {
		t.Fatalf("issues = %#v, want none", issues)
	}
}

func TestDetectNilTable(t *testing.T) {
	det := Detect(nil)
	if len(det.Mappings) != 0 {
		t.Fatalf("mappings = %#v, want none", det.Mappings)
	}
}
