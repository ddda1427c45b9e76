package report

import (
	"fmt"
	"strings"

	"github.com/cliniform/bpvar-cli/internal/dataset"
	"github.com/cliniform/bpvar-cli/internal/schema"
)

// DetectionMarkdown renders a schema-detection preview: the proposed mapping,
// data-quality issues, and a handful of sample rows for eyeballing.
func DetectionMarkdown(t *dataset.Table, d schema.Detection, sampleRows int) string {
	var b strings.Builder
	b.WriteString("[SCHEMA DETECTION]\n")
	if t.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", t.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", len(t.Rows)))
	b.WriteString(fmt.Sprintf("Columns: %d\n", len(t.Columns)))

	b.WriteString("\n[PROPOSED MAPPING]\n")
	for _, m := range d.Mappings {
		b.WriteString(fmt.Sprintf("- %s -> %s (confidence %.1f)\n", safeName(m.Column), m.Role, m.Confidence))
	}

	b.WriteString("\n[ISSUES]\n")
	if len(d.Issues) == 0 {
		b.WriteString("- none\n")
	} else {
		for _, issue := range d.Issues {
			b.WriteString("- ")
			b.WriteString(issue)
			b.WriteString("\n")
		}
	}

	if sampleRows > 0 && len(t.Rows) > 0 {
		if sampleRows > len(t.Rows) {
			sampleRows = len(t.Rows)
		}
		b.WriteString("\n[SAMPLE ROWS]\n")
		b.WriteString("| ")
		for i, c := range t.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeName(c))
		}
		b.WriteString(" |\n| ")
		for i := range t.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString("---")
		}
		b.WriteString(" |\n")
		for _, row := range t.Rows[:sampleRows] {
			b.WriteString("| ")
			for i := range t.Columns {
				if i > 0 {
					b.WriteString(" | ")
				}
				val := ""
				if i < len(row) {
					val = row[i].String()
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
