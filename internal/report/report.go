package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cliniform/bpvar-cli/internal/variability"
)

// Report is a renderable cohort analysis result. One report corresponds to
// one engine invocation over one source file.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Source      string
	Issues      []string
	Result      *variability.Result
}

// New stamps a result set with a run id and generation time.
func New(source string, res *variability.Result, issues []string) *Report {
	return &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      source,
		Issues:      issues,
		Result:      res,
	}
}

// Markdown renders a compact cohort report suitable for terminals or docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[BP VARIABILITY REPORT]\n")
	b.WriteString(fmt.Sprintf("Report: %s\n", r.ID))
	b.WriteString(fmt.Sprintf("Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04")))
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Source))
	}
	b.WriteString("\n[SUMMARY]\n")

	patients := len(r.Result.Order)
	totalReadings := 0
	var sumSBP, sumDBP float64
	classified := 0
	for _, key := range r.Result.Order {
		m := r.Result.Groups[key]
		totalReadings += m.ReadingCount
		if m.ReadingCount > 0 {
			sumSBP += m.MeanSBP
			sumDBP += m.MeanDBP
			classified++
		}
	}
	b.WriteString(fmt.Sprintf("Patients: %d\n", patients))
	b.WriteString(fmt.Sprintf("Readings: %d\n", totalReadings))
	if classified > 0 {
		b.WriteString(fmt.Sprintf("Mean SBP: %.1f mmHg\n", sumSBP/float64(classified)))
		b.WriteString(fmt.Sprintf("Mean DBP: %.1f mmHg\n", sumDBP/float64(classified)))
	}

	b.WriteString("\n[PATIENT RESULTS]\n")
	b.WriteString("| Patient | Readings | Mean SBP | Mean DBP | SD SBP | CV SBP% | ARV SBP | Dipping % | Status | Class |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, key := range r.Result.Order {
		m := r.Result.Groups[key]
		status := "-"
		if m.DippingStatus != nil {
			status = dippingLabel(*m.DippingStatus)
		}
		class := "-"
		if m.Classification != nil {
			class = stageShort(*m.Classification)
		}
		b.WriteString(fmt.Sprintf("| %s | %d | %.1f | %.1f | %.2f | %.2f | %.2f | %s | %s | %s |\n",
			key, m.ReadingCount, m.MeanSBP, m.MeanDBP, m.SDSBP, m.CVSBP, m.ARVSBP,
			fmtOpt(m.DippingPercentage, 1), status, class))
	}

	writeDistribution(&b, "[CLASSIFICATION DISTRIBUTION]", patients, r.classCounts())
	writeDistribution(&b, "[DIPPING DISTRIBUTION]", patients, r.dippingCounts())

	if len(r.Issues) > 0 {
		b.WriteString("\n[DATA QUALITY]\n")
		for _, issue := range r.Issues {
			b.WriteString("- ")
			b.WriteString(issue)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r *Report) classCounts() map[string]int {
	counts := map[string]int{}
	for _, key := range r.Result.Order {
		if m := r.Result.Groups[key]; m.Classification != nil {
			counts[stageLabel(*m.Classification)]++
		}
	}
	return counts
}

func (r *Report) dippingCounts() map[string]int {
	counts := map[string]int{}
	for _, key := range r.Result.Order {
		if m := r.Result.Groups[key]; m.DippingStatus != nil {
			counts[dippingLabel(*m.DippingStatus)]++
		}
	}
	return counts
}

func writeDistribution(b *strings.Builder, title string, total int, counts map[string]int) {
	b.WriteString("\n" + title + "\n")
	if len(counts) == 0 {
		b.WriteString("- no data available\n")
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] == counts[keys[j]] {
			return keys[i] < keys[j]
		}
		return counts[keys[i]] > counts[keys[j]]
	})
	for _, k := range keys {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[k]) * 100 / float64(total)
		}
		b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", k, counts[k], pct))
	}
}

func fmtOpt(p *float64, dec int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", dec, *p)
}

// LongitudinalReport renders visit-to-visit variability results.
type LongitudinalReport struct {
	ID          string
	GeneratedAt time.Time
	Source      string
	Records     []variability.LongitudinalMetrics
}

// NewLongitudinal stamps longitudinal records with a run id.
func NewLongitudinal(source string, records []variability.LongitudinalMetrics) *LongitudinalReport {
	return &LongitudinalReport{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      source,
		Records:     records,
	}
}

// Markdown renders the visit-to-visit table.
func (r *LongitudinalReport) Markdown() string {
	var b strings.Builder
	b.WriteString("[VISIT-TO-VISIT VARIABILITY]\n")
	b.WriteString(fmt.Sprintf("Report: %s\n", r.ID))
	b.WriteString(fmt.Sprintf("Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04")))
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("Patients with >=2 visits: %d\n", len(r.Records)))
	b.WriteString("\n| Patient | Visits | Mean SBP | Mean DBP | SD SBP | CV SBP% | ARV SBP | SBP Range |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, m := range r.Records {
		b.WriteString(fmt.Sprintf("| %s | %d | %.1f | %.1f | %.2f | %.2f | %.2f | %.1f |\n",
			m.PatientID, m.VisitCount, m.MeanSBP, m.MeanDBP, m.SDSBP, m.CVSBP, m.ARVSBP, m.RangeSBP))
	}
	return b.String()
}
