package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/cliniform/bpvar-cli/internal/utils"
	"github.com/cliniform/bpvar-cli/internal/variability"
)

// CSV renders per-patient metrics as a flat spreadsheet-ready table.
// Absent optional fields export as empty cells.
func (r *Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"patient_id", "reading_count",
		"mean_sbp", "mean_dbp", "min_sbp", "max_sbp", "min_dbp", "max_dbp",
		"sd_sbp", "sd_dbp", "cv_sbp", "cv_dbp", "arv_sbp", "arv_dbp",
		"weighted_sd_sbp", "weighted_sd_dbp", "pulse_pressure_mean",
		"morning_surge", "dipping_percentage", "dipping_status",
		"mean_bp_classification",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, key := range r.Result.Order {
		m := r.Result.Groups[key]
		row := []string{
			key, strconv.Itoa(m.ReadingCount),
			num(m.MeanSBP, 1), num(m.MeanDBP, 1), num(m.MinSBP, 1), num(m.MaxSBP, 1),
			num(m.MinDBP, 1), num(m.MaxDBP, 1),
			num(m.SDSBP, 2), num(m.SDDBP, 2), num(m.CVSBP, 2), num(m.CVDBP, 2),
			num(m.ARVSBP, 2), num(m.ARVDBP, 2),
			opt(m.WeightedSDSBP, 2), opt(m.WeightedSDDBP, 2), opt(m.PulsePressureMean, 1),
			opt(m.MorningSurge, 1), opt(m.DippingPercentage, 1), dippingCell(m.DippingStatus),
			stageCell(m.Classification),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON renders the result map keyed by patient id.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(struct {
		ID          string                          `json:"report_id"`
		GeneratedAt string                          `json:"generated_at"`
		Source      string                          `json:"source,omitempty"`
		Issues      []string                        `json:"issues,omitempty"`
		Patients    map[string]*variability.Metrics `json:"patients"`
		Order       []string                        `json:"patient_order"`
	}{
		ID:          r.ID,
		GeneratedAt: r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Source:      r.Source,
		Issues:      r.Issues,
		Patients:    r.Result.Groups,
		Order:       r.Result.Order,
	})
}

// CSV renders longitudinal records, one row per qualifying patient.
func (r *LongitudinalReport) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"patient_id", "visit_count",
		"mean_sbp", "mean_dbp", "sd_sbp", "sd_dbp", "cv_sbp", "cv_dbp",
		"arv_sbp", "arv_dbp", "max_sbp", "min_sbp", "range_sbp",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range r.Records {
		row := []string{
			m.PatientID, strconv.Itoa(m.VisitCount),
			num(m.MeanSBP, 1), num(m.MeanDBP, 1), num(m.SDSBP, 2), num(m.SDDBP, 2),
			num(m.CVSBP, 2), num(m.CVDBP, 2), num(m.ARVSBP, 2), num(m.ARVDBP, 2),
			num(m.MaxSBP, 1), num(m.MinSBP, 1), num(m.RangeSBP, 1),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON renders the ordered longitudinal records.
func (r *LongitudinalReport) JSON() ([]byte, error) {
	return utils.PrettyJSON(struct {
		ID          string                            `json:"report_id"`
		GeneratedAt string                            `json:"generated_at"`
		Source      string                            `json:"source,omitempty"`
		Patients    []variability.LongitudinalMetrics `json:"patients"`
	}{
		ID:          r.ID,
		GeneratedAt: r.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Source:      r.Source,
		Patients:    r.Records,
	})
}

func num(v float64, dec int) string {
	return strconv.FormatFloat(v, 'f', dec, 64)
}

func opt(p *float64, dec int) string {
	if p == nil {
		return ""
	}
	return num(*p, dec)
}

func dippingCell(d *variability.DippingStatus) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func stageCell(s *variability.Stage) string {
	if s == nil {
		return ""
	}
	return s.String()
}
