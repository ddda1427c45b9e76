package schema

import (
	"fmt"
	"testing"

	"github.com/cliniform/bpvar-cli/internal/dataset"
)

func cells(vals ...string) []dataset.Cell {
	out := make([]dataset.Cell, len(vals))
	for i, v := range vals {
		out[i] = dataset.Cell(v)
	}
	return out
}

func TestClassifyColumnByName(t *testing.T) {
	tests := []struct {
		name string
		want Role
	}{
		{"Patient_ID", RolePatientID},
		{"MRN", RolePatientID},
		{"Hasta_No", RolePatientID},
		{"Date", RoleDate},
		{"Tarih", RoleDate},
		{"Visit_Date", RoleDate},
		{"Time", RoleTime},
		{"Saat", RoleTime},
		{"Timestamp", RoleDateTime},
		{"DateTime", RoleDateTime},
		{"SBP", RoleSystolic},
		{"Systolic", RoleSystolic},
		{"Sistolik", RoleSystolic},
		{"DBP", RoleDiastolic},
		{"Diastolik", RoleDiastolic},
		{"Heart_Rate", RoleHeartRate},
		{"Nabiz", RoleHeartRate},
		{"Notes", RoleNotes},
	}
	for _, tt := range tests {
		role, conf := ClassifyColumn(tt.name, nil)
		if role != tt.want {
			t.Errorf("ClassifyColumn(%q) = %v, want %v", tt.name, role, tt.want)
		}
		if conf != 0.8 {
			t.Errorf("ClassifyColumn(%q) confidence = %v, want 0.8", tt.name, conf)
		}
	}
}

func TestClassifyColumnCanonicalRoundTrip(t *testing.T) {
	// Every canonical role name must classify back to its own role.
	for _, r := range Roles() {
		if r == RoleIgnore {
			continue
		}
		role, conf := ClassifyColumn(r.String(), nil)
		if role != r || conf != 0.8 {
			t.Errorf("ClassifyColumn(%q) = (%v, %v), want (%v, 0.8)", r.String(), role, conf, r)
		}
	}
}

func TestClassifyColumnContentSniff(t *testing.T) {
	t.Run("systolic range", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("140", "150", "135", "128"))
		if role != RoleSystolic || conf != 0.5 {
			t.Fatalf("got (%v, %v), want (sbp, 0.5)", role, conf)
		}
	})
	t.Run("diastolic range", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("88", "92", "85", "95"))
		if role != RoleDiastolic || conf != 0.5 {
			t.Fatalf("got (%v, %v), want (dbp, 0.5)", role, conf)
		}
	})
	t.Run("heart rate range", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("72", "68", "75", "65"))
		if role != RoleHeartRate || conf != 0.4 {
			t.Fatalf("got (%v, %v), want (heart_rate, 0.4)", role, conf)
		}
	})
	t.Run("datetime values", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("2024-01-15 08:00", "2024-01-15 12:30"))
		if role != RoleDateTime || conf != 0.7 {
			t.Fatalf("got (%v, %v), want (datetime, 0.7)", role, conf)
		}
	})
	t.Run("date-only values", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("2024-01-15", "2024-01-16"))
		if role != RoleDate || conf != 0.6 {
			t.Fatalf("got (%v, %v), want (date, 0.6)", role, conf)
		}
	})
	t.Run("free text ignored", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("after lunch", "felt dizzy"))
		if role != RoleIgnore || conf != 0 {
			t.Fatalf("got (%v, %v), want (ignore, 0)", role, conf)
		}
	})
	t.Run("empty column ignored", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("", "  ", ""))
		if role != RoleIgnore || conf != 0 {
			t.Fatalf("got (%v, %v), want (ignore, 0)", role, conf)
		}
	})
	t.Run("numeric out of band ignored", func(t *testing.T) {
		role, conf := ClassifyColumn("X1", cells("1000", "2000", "1500"))
		if role != RoleIgnore || conf != 0 {
			t.Fatalf("got (%v, %v), want (ignore, 0)", role, conf)
		}
	})
}

func TestClassifyColumnSampleCap(t *testing.T) {
	// Values beyond the sample cap must not influence the result: the first
	// 100 non-missing values sit in SBP range, the rest are garbage.
	vals := make([]string, 0, 150)
	for i := 0; i < 100; i++ {
		vals = append(vals, fmt.Sprintf("%d", 130+i%20))
	}
	for i := 0; i < 50; i++ {
		vals = append(vals, "99999")
	}
	role, conf := ClassifyColumn("X1", cells(vals...))
	if role != RoleSystolic || conf != 0.5 {
		t.Fatalf("got (%v, %v), want (sbp, 0.5)", role, conf)
	}
}

func TestClassifyColumnNameBeatsContent(t *testing.T) {
	// A name match wins even when the contents look like something else.
	role, conf := ClassifyColumn("Nabiz", cells("140", "150", "145"))
	if role != RoleHeartRate || conf != 0.8 {
		t.Fatalf("got (%v, %v), want (heart_rate, 0.8)", role, conf)
	}
}
