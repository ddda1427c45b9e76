package report

import (
	"strings"
	"testing"

	"github.com/cliniform/bpvar-cli/internal/dataset"
	"github.com/cliniform/bpvar-cli/internal/schema"
)

func TestDetectionMarkdown(t *testing.T) {
	tbl := &dataset.Table{
		Name:    "readings.csv",
		Columns: []string{"Patient_ID", "SBP", "DBP"},
		Rows: [][]dataset.Cell{
			{"H001", "140", "90"},
			{"H002", "150", "95"},
		},
	}
	det := schema.Detect(tbl)
	md := DetectionMarkdown(tbl, det, 1)

	for _, want := range []string{
		"[SCHEMA DETECTION]",
		"File: readings.csv",
		"Rows: 2",
		"- Patient_ID -> patient_id (confidence 0.8)",
		"- SBP -> sbp (confidence 0.8)",
		"[ISSUES]",
		"No date/time column detected",
		"[SAMPLE ROWS]",
		"| H001 | 140 | 90 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "H002") {
		t.Errorf("sample should stop at 1 row:\n%s", md)
	}
}

func TestDetectionMarkdownNoIssues(t *testing.T) {
	tbl := &dataset.Table{
		Columns: []string{"Date", "SBP", "DBP"},
		Rows:    [][]dataset.Cell{{"2024-01-15", "140", "90"}},
	}
	md := DetectionMarkdown(tbl, schema.Detect(tbl), 0)
	if !strings.Contains(md, "[ISSUES]\n- none") {
		t.Errorf("expected '- none' issues section:\n%s", md)
	}
	if strings.Contains(md, "[SAMPLE ROWS]") {
		t.Errorf("sample section should be absent with 0 rows:\n%s", md)
	}
}
