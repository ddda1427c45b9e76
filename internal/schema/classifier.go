package schema

import (
	"regexp"
	"strings"
	"time"

	"github.com/cliniform/bpvar-cli/internal/dataset"
)

// Common column name patterns per role (case-insensitive, unanchored unless
// written otherwise). Patterns include Turkish spellings seen in clinic exports.
var columnPatterns = map[Role][]*regexp.Regexp{
	RolePatientID: compileAll(
		`patient.*id`, `id`, `mrn`, `subject`, `hasta.*no`,
		`participant`, `record.*id`, `case.*id`,
	),
	RoleDate: compileAll(
		`^date$`, `measurement.*date`, `reading.*date`, `visit.*date`,
		`tarih`, `datum`,
	),
	RoleTime: compileAll(
		`^time$`, `measurement.*time`, `reading.*time`, `saat`,
	),
	RoleDateTime: compileAll(
		`datetime`, `timestamp`, `date.*time`, `when`,
	),
	RoleSystolic: compileAll(
		`sbp`, `systolic`, `sys`, `sistolik`, `upper`,
		`systolic.*bp`, `sys.*pressure`,
	),
	RoleDiastolic: compileAll(
		`dbp`, `diastolic`, `dia`, `diastolik`, `lower`,
		`diastolic.*bp`, `dia.*pressure`,
	),
	RoleHeartRate: compileAll(
		`hr`, `heart.*rate`, `pulse`, `bpm`, `nabiz`, `kalp`,
	),
	RoleNotes: compileAll(
		`note`, `comment`, `remark`, `observation`, `not`,
	),
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

const (
	nameMatchConfidence = 0.8
	contentSampleSize   = 100
	datetimeParseRatio  = 0.8
)

// ClassifyColumn infers the role of one column from its name, falling back to
// content sniffing over the first non-missing sample values. It never fails:
// a column with no evidence is (RoleIgnore, 0).
func ClassifyColumn(name string, values []dataset.Cell) (Role, float64) {
	lower := strings.ToLower(strings.TrimSpace(name))

	best := RoleIgnore
	bestConf := 0.0
	for _, role := range rolePriority {
		for _, re := range columnPatterns[role] {
			if re.MatchString(lower) {
				// Name matches score a flat 0.8; the strict > keeps the
				// first role in priority order on ties.
				if nameMatchConfidence > bestConf {
					best = role
					bestConf = nameMatchConfidence
				}
				break
			}
		}
	}
	if best != RoleIgnore {
		return best, bestConf
	}
	return sniffContent(values)
}

// sniffContent guesses a role from sample values when the name gave no signal.
func sniffContent(values []dataset.Cell) (Role, float64) {
	sample := make([]dataset.Cell, 0, contentSampleSize)
	for _, v := range values {
		if v.IsEmpty() {
			continue
		}
		sample = append(sample, v)
		if len(sample) == contentSampleSize {
			break
		}
	}
	if len(sample) == 0 {
		return RoleIgnore, 0
	}

	if nums, ok := allNumeric(sample); ok {
		mean, min, max := meanMinMax(nums)
		// SBP typically 80-220; below that band the column reads as DBP
		if mean >= 80 && mean <= 200 && min >= 50 && max <= 250 {
			if mean > 100 {
				return RoleSystolic, 0.5
			}
			return RoleDiastolic, 0.5
		}
		// Heart rate typically 40-200
		if mean >= 40 && mean <= 120 && min >= 30 && max <= 220 {
			return RoleHeartRate, 0.4
		}
		return RoleIgnore, 0
	}

	parsed := make([]time.Time, 0, len(sample))
	for _, v := range sample {
		if t, ok := v.Time(); ok {
			parsed = append(parsed, t)
		}
	}
	if float64(len(parsed)) >= datetimeParseRatio*float64(len(sample)) {
		if distinctTimesOfDay(parsed) > 1 {
			return RoleDateTime, 0.7
		}
		return RoleDate, 0.6
	}
	return RoleIgnore, 0
}

func allNumeric(sample []dataset.Cell) ([]float64, bool) {
	opt := dataset.Options{}
	out := make([]float64, 0, len(sample))
	for _, v := range sample {
		f, ok := v.Float(opt)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func meanMinMax(vals []float64) (mean, min, max float64) {
	min, max = vals[0], vals[0]
	var sum float64
	for _, v := range vals {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return sum / float64(len(vals)), min, max
}

func distinctTimesOfDay(ts []time.Time) int {
	seen := map[int]struct{}{}
	for _, t := range ts {
		seen[t.Hour()*3600+t.Minute()*60+t.Second()] = struct{}{}
	}
	return len(seen)
}
