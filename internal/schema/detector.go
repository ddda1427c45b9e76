package schema

import (
	"fmt"
	"strings"

	"github.com/cliniform/bpvar-cli/internal/dataset"
)

// Mapping binds one source column to a role with the detector's confidence.
// Confidence 0 means "no evidence"; a human-edited mapping may carry 0 too.
type Mapping struct {
	Column     string  `yaml:"column" validate:"required"`
	Role       Role    `yaml:"role"`
	Confidence float64 `yaml:"confidence,omitempty"`
}

// Detection is a proposed schema for a raw table plus advisory data-quality
// issues. Issues never block: callers decide whether to proceed.
type Detection struct {
	Mappings []Mapping
	Issues   []string
}

// Plausible physiologic bounds used for advisory outlier counts.
const (
	sbpOutlierLow  = 50
	sbpOutlierHigh = 300
	dbpOutlierLow  = 30
	dbpOutlierHigh = 200
)

// Detect classifies every column of the table and validates the result.
func Detect(t *dataset.Table) Detection {
	var d Detection
	if t == nil {
		return d
	}
	for i, name := range t.Columns {
		role, conf := ClassifyColumn(name, t.Column(i))
		d.Mappings = append(d.Mappings, Mapping{Column: name, Role: role, Confidence: conf})
	}
	d.Issues = validate(t, d.Mappings)
	return d
}

// Validate re-runs the data-quality checks for a (possibly human-edited) mapping.
func Validate(t *dataset.Table, mappings []Mapping) []string {
	return validate(t, mappings)
}

func validate(t *dataset.Table, mappings []Mapping) []string {
	var issues []string

	found := map[Role]bool{}
	for _, m := range mappings {
		found[m.Role] = true
	}

	var missing []string
	for _, r := range []Role{RoleSystolic, RoleDiastolic} {
		if !found[r] {
			missing = append(missing, r.String())
		}
	}
	if len(missing) > 0 {
		issues = append(issues, fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")))
	}

	if !found[RoleDateTime] && !found[RoleDate] {
		issues = append(issues, "No date/time column detected - temporal analysis limited")
	}

	for _, m := range mappings {
		switch m.Role {
		case RoleSystolic:
			issues = append(issues, columnQualityIssues(t, m.Column, "SBP", sbpOutlierLow, sbpOutlierHigh)...)
		case RoleDiastolic:
			issues = append(issues, columnQualityIssues(t, m.Column, "DBP", dbpOutlierLow, dbpOutlierHigh)...)
		}
	}
	return issues
}

func columnQualityIssues(t *dataset.Table, column, label string, low, high float64) []string {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}
	var issues []string
	nulls, outliers := 0, 0
	opt := dataset.Options{}
	for _, c := range t.Column(idx) {
		if c.IsEmpty() {
			nulls++
			continue
		}
		if v, ok := c.Float(opt); ok && (v < low || v > high) {
			outliers++
		}
	}
	if nulls > 0 {
		issues = append(issues, fmt.Sprintf("%s has %d missing values", label, nulls))
	}
	if outliers > 0 {
		issues = append(issues, fmt.Sprintf("%s has %d potential outliers (<%.0f or >%.0f)", label, outliers, low, high))
	}
	return issues
}
