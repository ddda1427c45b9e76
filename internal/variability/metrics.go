package variability

// DippingStatus categorizes the nocturnal fall in systolic pressure relative
// to daytime. Display strings live in the report layer.
type DippingStatus int

const (
	ReverseDipper DippingStatus = iota // dipping < 0%
	NonDipper                          // 0% <= dipping < 10%
	NormalDipper                       // 10% <= dipping <= 20%
	ExtremeDipper                      // dipping > 20%
)

// String returns a stable machine-readable token for exports.
func (d DippingStatus) String() string {
	switch d {
	case ReverseDipper:
		return "reverse_dipper"
	case NonDipper:
		return "non_dipper"
	case NormalDipper:
		return "normal_dipper"
	case ExtremeDipper:
		return "extreme_dipper"
	}
	return "unknown"
}

// Stage is the AHA/ACC blood-pressure severity bucket for a group's mean BP.
type Stage int

const (
	StageNormal Stage = iota
	StageElevated
	Stage1
	Stage2
	StageCrisis
)

func (s Stage) String() string {
	switch s {
	case StageNormal:
		return "normal"
	case StageElevated:
		return "elevated"
	case Stage1:
		return "stage_1"
	case Stage2:
		return "stage_2"
	case StageCrisis:
		return "crisis"
	}
	return "unknown"
}

// ClassifyDipping buckets a dipping percentage. The <=20 upper bound of the
// normal band is inclusive; 20.0001 is already extreme.
func ClassifyDipping(pct float64) DippingStatus {
	switch {
	case pct < 0:
		return ReverseDipper
	case pct < 10:
		return NonDipper
	case pct <= 20:
		return NormalDipper
	default:
		return ExtremeDipper
	}
}

// ClassifyStage classifies mean SBP/DBP per the 2017 AHA/ACC guideline.
// Checks run in severity order; the crisis check is evaluated first, so
// 181/70 is a crisis even though DBP alone would not qualify.
func ClassifyStage(sbp, dbp float64) Stage {
	switch {
	case sbp > 180 || dbp > 120:
		return StageCrisis
	case sbp >= 140 || dbp >= 90:
		return Stage2
	case sbp >= 130 || dbp >= 80:
		return Stage1
	case sbp >= 120:
		return StageElevated
	default:
		return StageNormal
	}
}

// Metrics is the full variability record for one patient group.
//
// Rounding is part of the contract: means, extremes, pulse pressure, surge and
// dipping carry 1 decimal; SD, CV and ARV carry 2. Optional fields are nil
// when their preconditions fail (fewer than 2 readings in a circadian bucket,
// zero daytime mean, empty sequences); consumers must tolerate absence.
type Metrics struct {
	MeanSBP      float64 `json:"mean_sbp"`
	MeanDBP      float64 `json:"mean_dbp"`
	MinSBP       float64 `json:"min_sbp"`
	MaxSBP       float64 `json:"max_sbp"`
	MinDBP       float64 `json:"min_dbp"`
	MaxDBP       float64 `json:"max_dbp"`
	ReadingCount int     `json:"reading_count"`

	SDSBP float64 `json:"sd_sbp"`
	SDDBP float64 `json:"sd_dbp"`
	CVSBP float64 `json:"cv_sbp"`
	CVDBP float64 `json:"cv_dbp"`

	ARVSBP float64 `json:"arv_sbp"`
	ARVDBP float64 `json:"arv_dbp"`

	WeightedSDSBP *float64 `json:"weighted_sd_sbp,omitempty"`
	WeightedSDDBP *float64 `json:"weighted_sd_dbp,omitempty"`

	PulsePressureMean *float64       `json:"pulse_pressure_mean,omitempty"`
	MorningSurge      *float64       `json:"morning_surge,omitempty"`
	DippingPercentage *float64       `json:"dipping_percentage,omitempty"`
	DippingStatus     *DippingStatus `json:"dipping_status,omitempty"`

	Classification *Stage `json:"mean_bp_classification,omitempty"`
}

// LongitudinalMetrics is the visit-to-visit variability record for one patient.
type LongitudinalMetrics struct {
	PatientID  string  `json:"patient_id"`
	VisitCount int     `json:"visit_count"`
	MeanSBP    float64 `json:"mean_sbp"`
	MeanDBP    float64 `json:"mean_dbp"`
	SDSBP      float64 `json:"sd_sbp"`
	SDDBP      float64 `json:"sd_dbp"`
	CVSBP      float64 `json:"cv_sbp"`
	CVDBP      float64 `json:"cv_dbp"`
	ARVSBP     float64 `json:"arv_sbp"`
	ARVDBP     float64 `json:"arv_dbp"`
	MaxSBP     float64 `json:"max_sbp"`
	MinSBP     float64 `json:"min_sbp"`
	RangeSBP   float64 `json:"range_sbp"`
}
