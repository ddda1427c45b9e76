package schema

import (
	"errors"
	"math"
	"time"

	"github.com/cliniform/bpvar-cli/internal/dataset"
	"github.com/cliniform/bpvar-cli/internal/variability"
)

// ErrNotLoaded is returned when normalization is requested before a table was loaded.
var ErrNotLoaded = errors.New("no data loaded")

// Normalize projects a raw table through a confirmed mapping into canonical
// readings, one per source row.
//
// Rules: Ignore and Notes columns are skipped; a mapping entry whose source
// column does not exist in the table is silently dropped; DateTime wins over a
// separate Date column; separate Date and Time columns are concatenated and
// parsed as one instant. Cells that fail date or numeric parsing become missing
// values on that reading rather than errors. SBP/DBP missing values are NaN;
// the variability engine drops them before computing statistics.
func Normalize(t *dataset.Table, mappings []Mapping) ([]variability.Reading, error) {
	if t == nil || len(t.Columns) == 0 {
		return nil, ErrNotLoaded
	}

	// Resolve the first existing source column per role.
	roleIdx := map[Role]int{}
	for _, m := range mappings {
		if m.Role == RoleIgnore || m.Role == RoleNotes {
			continue
		}
		idx := t.ColumnIndex(m.Column)
		if idx < 0 {
			continue
		}
		if _, ok := roleIdx[m.Role]; !ok {
			roleIdx[m.Role] = idx
		}
	}

	dtIdx, hasDT := roleIdx[RoleDateTime]
	dateIdx, hasDate := roleIdx[RoleDate]
	timeIdx, hasTime := roleIdx[RoleTime]
	idIdx, hasID := roleIdx[RolePatientID]
	sbpIdx, hasSBP := roleIdx[RoleSystolic]
	dbpIdx, hasDBP := roleIdx[RoleDiastolic]
	hrIdx, hasHR := roleIdx[RoleHeartRate]

	opt := dataset.Options{}
	readings := make([]variability.Reading, 0, len(t.Rows))
	for _, row := range t.Rows {
		var r variability.Reading

		if hasID {
			if v := cellAt(row, idIdx); !v.IsEmpty() {
				s := v.String()
				r.PatientID = &s
			}
		}

		r.Timestamp = rowTimestamp(row, hasDT, dtIdx, hasDate, dateIdx, hasTime, timeIdx)

		r.SBP = numericOrNaN(row, sbpIdx, hasSBP, opt)
		r.DBP = numericOrNaN(row, dbpIdx, hasDBP, opt)
		if hasHR {
			if v, ok := cellAt(row, hrIdx).Float(opt); ok {
				r.HeartRate = &v
			}
		}
		readings = append(readings, r)
	}
	return readings, nil
}

func rowTimestamp(row []dataset.Cell, hasDT bool, dtIdx int, hasDate bool, dateIdx int, hasTime bool, timeIdx int) *time.Time {
	switch {
	case hasDT:
		if ts, ok := cellAt(row, dtIdx).Time(); ok {
			return &ts
		}
	case hasDate && hasTime:
		d := cellAt(row, dateIdx).String()
		tm := cellAt(row, timeIdx).String()
		if d == "" && tm == "" {
			return nil
		}
		if ts, ok := dataset.ParseTime(d + " " + tm); ok {
			return &ts
		}
	case hasDate:
		if ts, ok := cellAt(row, dateIdx).Time(); ok {
			return &ts
		}
	}
	return nil
}

func numericOrNaN(row []dataset.Cell, idx int, present bool, opt dataset.Options) float64 {
	if !present {
		return math.NaN()
	}
	if v, ok := cellAt(row, idx).Float(opt); ok {
		return v
	}
	return math.NaN()
}

func cellAt(row []dataset.Cell, i int) dataset.Cell {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
