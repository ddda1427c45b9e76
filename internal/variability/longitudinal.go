package variability

import (
	"math"
	"sort"
	"time"
)

// Visit is one clinic-visit measurement: a single reading per visit date.
type Visit struct {
	PatientID string
	Date      time.Time
	SBP       float64
	DBP       float64
}

// VisitsFromReadings converts normalized readings into visit tuples. Readings
// without a patient id, a timestamp, or a complete BP pair cannot participate
// in visit-to-visit analysis and are dropped.
func VisitsFromReadings(readings []Reading) []Visit {
	var out []Visit
	for _, r := range readings {
		if r.PatientID == nil || r.Timestamp == nil {
			continue
		}
		if math.IsNaN(r.SBP) || math.IsNaN(r.DBP) {
			continue
		}
		out = append(out, Visit{
			PatientID: *r.PatientID,
			Date:      *r.Timestamp,
			SBP:       r.SBP,
			DBP:       r.DBP,
		})
	}
	return out
}

// ComputeLongitudinal calculates visit-to-visit variability per patient.
// Patients with fewer than 2 visits are excluded from the result entirely,
// not reported as zeros. Results follow first-appearance order of patient ids.
func ComputeLongitudinal(visits []Visit) []LongitudinalMetrics {
	grouped := map[string][]Visit{}
	var order []string
	for _, v := range visits {
		if _, ok := grouped[v.PatientID]; !ok {
			order = append(order, v.PatientID)
		}
		grouped[v.PatientID] = append(grouped[v.PatientID], v)
	}

	var out []LongitudinalMetrics
	for _, id := range order {
		group := grouped[id]
		if len(group) < 2 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		sbp := make([]float64, len(group))
		dbp := make([]float64, len(group))
		for i, v := range group {
			sbp[i] = v.SBP
			dbp[i] = v.DBP
		}
		sdS, sdD := sampleSD(sbp), sampleSD(dbp)
		minS, maxS := minMax(sbp)
		out = append(out, LongitudinalMetrics{
			PatientID:  id,
			VisitCount: len(group),
			MeanSBP:    round1(mean(sbp)),
			MeanDBP:    round1(mean(dbp)),
			SDSBP:      round2(sdS),
			SDDBP:      round2(sdD),
			CVSBP:      round2(coefVariation(sdS, mean(sbp))),
			CVDBP:      round2(coefVariation(sdD, mean(dbp))),
			ARVSBP:     round2(arv(sbp)),
			ARVDBP:     round2(arv(dbp)),
			MaxSBP:     round1(maxS),
			MinSBP:     round1(minS),
			RangeSBP:   round1(maxS - minS),
		})
	}
	return out
}
