package variability

import "math"

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func minMax(vals []float64) (min, max float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	min, max = vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// sampleSD is the n-1 estimator, defined as 0 for fewer than 2 values.
func sampleSD(vals []float64) float64 {
	n := len(vals)
	if n < 2 {
		return 0
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// coefVariation expresses SD as a percentage of the mean, 0 when the mean is
// not positive.
func coefVariation(sd, m float64) float64 {
	if m <= 0 {
		return 0
	}
	return sd / m * 100
}

// arv is the mean absolute difference between consecutive values, 0 for
// fewer than 2.
func arv(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(vals); i++ {
		sum += math.Abs(vals[i] - vals[i-1])
	}
	return sum / float64(len(vals)-1)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
