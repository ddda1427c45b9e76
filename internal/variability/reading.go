package variability

import "time"

// Reading is one canonical blood-pressure measurement produced by schema
// normalization. SBP and DBP are NaN when the source cell was missing or
// unparsable; such readings are dropped from the affected statistics rather
// than coerced to zero.
type Reading struct {
	PatientID *string
	Timestamp *time.Time
	SBP       float64
	DBP       float64
	HeartRate *float64
}
