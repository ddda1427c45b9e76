package variability

import (
	"math"
	"sort"
	"sync"
)

// GroupKeyAll is the sentinel result key when no patient identifier exists.
const GroupKeyAll = "all"

// Windows defines the local-hour circadian buckets. Readings whose hour falls
// outside both windows (the 6-8 and 22-24 gaps under the defaults) belong to
// neither bucket and are excluded from circadian metrics.
type Windows struct {
	DayStart   int
	DayEnd     int
	NightStart int
	NightEnd   int
}

// DefaultWindows is daytime [8,22) and nighttime [0,6).
func DefaultWindows() Windows {
	return Windows{DayStart: 8, DayEnd: 22, NightStart: 0, NightEnd: 6}
}

// Engine computes variability metrics per patient group. It holds only
// read-only configuration and is safe for concurrent use.
type Engine struct {
	Windows Windows
	// Workers bounds concurrent group computation; <=1 runs sequentially.
	Workers int
}

// NewEngine returns an engine with the given circadian windows.
func NewEngine(w Windows) *Engine {
	return &Engine{Windows: w, Workers: 4}
}

// Result maps patient id (or GroupKeyAll) to metrics, with Order preserving
// first-appearance order of ids for deterministic output.
type Result struct {
	Order  []string
	Groups map[string]*Metrics
}

// Compute calculates one Metrics record per patient group. Readings without a
// patient id are treated as a single group when no reading carries an id, and
// are dropped otherwise. Groups are independent, so they fan out over a small
// worker pool and are collected back into first-appearance order.
func (e *Engine) Compute(readings []Reading) *Result {
	grouped := map[string][]Reading{}
	var order []string
	anyID := false
	for _, r := range readings {
		if r.PatientID != nil {
			anyID = true
			break
		}
	}
	for _, r := range readings {
		key := GroupKeyAll
		if anyID {
			if r.PatientID == nil {
				continue
			}
			key = *r.PatientID
		}
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], r)
	}

	res := &Result{Order: order, Groups: make(map[string]*Metrics, len(order))}
	if len(order) == 0 {
		return res
	}

	metrics := make([]*Metrics, len(order))
	workers := e.Workers
	if workers <= 1 || len(order) == 1 {
		for i, key := range order {
			metrics[i] = e.computeGroup(grouped[key])
		}
	} else {
		if workers > len(order) {
			workers = len(order)
		}
		jobs := make(chan int, len(order))
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					metrics[i] = e.computeGroup(grouped[order[i]])
				}
			}()
		}
		for i := range order {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}
	for i, key := range order {
		res.Groups[key] = metrics[i]
	}
	return res
}

// computeGroup runs the full per-group pipeline: chronological sort, missing
// value filtering, dispersion, sequential, circadian and classification steps.
func (e *Engine) computeGroup(readings []Reading) *Metrics {
	sorted := make([]Reading, len(readings))
	copy(sorted, readings)
	// Stable: ties and missing timestamps keep original relative order, with
	// missing timestamps ordered last.
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].Timestamp, sorted[j].Timestamp
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.Before(*tj)
	})

	// Per-sequence missing-value drop. The sequences may end up with
	// different lengths; pulse pressure pairs up to the shorter one.
	var sbp, dbp []float64
	for _, r := range sorted {
		if !math.IsNaN(r.SBP) {
			sbp = append(sbp, r.SBP)
		}
		if !math.IsNaN(r.DBP) {
			dbp = append(dbp, r.DBP)
		}
	}

	m := &Metrics{ReadingCount: len(sbp)}
	if len(sbp) == 0 && len(dbp) == 0 {
		return m
	}

	if len(sbp) > 0 {
		m.MeanSBP = round1(mean(sbp))
		min, max := minMax(sbp)
		m.MinSBP, m.MaxSBP = round1(min), round1(max)
		sd := sampleSD(sbp)
		m.SDSBP = round2(sd)
		m.CVSBP = round2(coefVariation(sd, mean(sbp)))
	}
	if len(dbp) > 0 {
		m.MeanDBP = round1(mean(dbp))
		min, max := minMax(dbp)
		m.MinDBP, m.MaxDBP = round1(min), round1(max)
		sd := sampleSD(dbp)
		m.SDDBP = round2(sd)
		m.CVDBP = round2(coefVariation(sd, mean(dbp)))
	}

	// ARV needs a chronologically ordered sequence, so readings without a
	// timestamp stay out of it (they still count toward the stats above).
	var orderedSBP, orderedDBP []float64
	for _, r := range sorted {
		if r.Timestamp == nil {
			continue
		}
		if !math.IsNaN(r.SBP) {
			orderedSBP = append(orderedSBP, r.SBP)
		}
		if !math.IsNaN(r.DBP) {
			orderedDBP = append(orderedDBP, r.DBP)
		}
	}
	m.ARVSBP = round2(arv(orderedSBP))
	m.ARVDBP = round2(arv(orderedDBP))

	// Pulse pressure pairs positionally and truncates the longer sequence.
	if n := len(sbp); n > 0 && len(dbp) > 0 {
		if len(dbp) < n {
			n = len(dbp)
		}
		var sum float64
		for i := 0; i < n; i++ {
			sum += sbp[i] - dbp[i]
		}
		pp := round1(sum / float64(n))
		m.PulsePressureMean = &pp
	}

	e.applyCircadian(m, sorted)

	if len(sbp) > 0 && len(dbp) > 0 {
		stage := ClassifyStage(mean(sbp), mean(dbp))
		m.Classification = &stage
	}
	return m
}

// applyCircadian fills the day/night derived fields. A bucket with fewer than
// 2 readings leaves every circadian field absent; this is a hard gate, not a
// degraded estimate.
func (e *Engine) applyCircadian(m *Metrics, sorted []Reading) {
	var dayRows, nightRows []Reading
	for _, r := range sorted {
		if r.Timestamp == nil {
			continue
		}
		h := r.Timestamp.Hour()
		switch {
		case h >= e.Windows.DayStart && h < e.Windows.DayEnd:
			dayRows = append(dayRows, r)
		case h >= e.Windows.NightStart && h < e.Windows.NightEnd:
			nightRows = append(nightRows, r)
		}
	}
	if len(dayRows) < 2 || len(nightRows) < 2 {
		return
	}

	daySBP := validSBP(dayRows)
	nightSBP := validSBP(nightRows)
	dayDBP := validDBP(dayRows)
	nightDBP := validDBP(nightRows)
	if len(daySBP) == 0 || len(nightSBP) == 0 {
		return
	}

	dayHours := float64(e.Windows.DayEnd - e.Windows.DayStart)
	nightHours := 24 - dayHours
	wsdSBP := round2((sampleSD(daySBP)*dayHours + sampleSD(nightSBP)*nightHours) / 24)
	wsdDBP := round2((sampleSD(dayDBP)*dayHours + sampleSD(nightDBP)*nightHours) / 24)
	m.WeightedSDSBP = &wsdSBP
	m.WeightedSDDBP = &wsdDBP

	dayMean := mean(daySBP)
	if dayMean != 0 {
		pct := (dayMean - mean(nightSBP)) / dayMean * 100
		status := ClassifyDipping(pct)
		rounded := round1(pct)
		m.DippingPercentage = &rounded
		m.DippingStatus = &status
	}

	// Morning surge: early-daytime mean minus the nocturnal minimum. "Early"
	// is the first quarter of daytime readings, at least one.
	morning := (len(daySBP) + 3) / 4
	if morning < 1 {
		morning = 1
	}
	nightMin, _ := minMax(nightSBP)
	surge := round1(mean(daySBP[:morning]) - nightMin)
	m.MorningSurge = &surge
}

func validSBP(rows []Reading) []float64 {
	var out []float64
	for _, r := range rows {
		if !math.IsNaN(r.SBP) {
			out = append(out, r.SBP)
		}
	}
	return out
}

func validDBP(rows []Reading) []float64 {
	var out []float64
	for _, r := range rows {
		if !math.IsNaN(r.DBP) {
			out = append(out, r.DBP)
		}
	}
	return out
}
