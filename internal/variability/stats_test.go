package variability

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSampleSD(t *testing.T) {
	if got := sampleSD(nil); got != 0 {
		t.Fatalf("sampleSD(nil) = %v, want 0", got)
	}
	if got := sampleSD([]float64{140}); got != 0 {
		t.Fatalf("sampleSD single = %v, want 0", got)
	}
	// [2, 4, 4, 4, 5, 5, 7, 9]: sum of squared deviations 32, /7
	got := sampleSD([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(got, want, 1e-12) {
		t.Fatalf("sampleSD = %v, want %v", got, want)
	}
}

func TestARV(t *testing.T) {
	if got := arv([]float64{140}); got != 0 {
		t.Fatalf("arv single = %v, want 0", got)
	}
	// |130-120| + |125-130| + |140-125| = 30, over 3 transitions
	if got := arv([]float64{120, 130, 125, 140}); !almostEqual(got, 10, 1e-12) {
		t.Fatalf("arv = %v, want 10", got)
	}
	// order matters: same values, different sequence
	if got := arv([]float64{120, 125, 130, 140}); !almostEqual(got, 20.0/3, 1e-12) {
		t.Fatalf("arv reordered = %v, want %v", got, 20.0/3)
	}
}

func TestCoefVariation(t *testing.T) {
	if got := coefVariation(5, 0); got != 0 {
		t.Fatalf("cv with zero mean = %v, want 0", got)
	}
	if got := coefVariation(5, -10); got != 0 {
		t.Fatalf("cv with negative mean = %v, want 0", got)
	}
	if got := coefVariation(14, 140); !almostEqual(got, 10, 1e-12) {
		t.Fatalf("cv = %v, want 10", got)
	}
}

func TestRounding(t *testing.T) {
	if got := round1(17.93103448); got != 17.9 {
		t.Fatalf("round1 = %v, want 17.9", got)
	}
	if got := round2(10.9138); got != 10.91 {
		t.Fatalf("round2 = %v, want 10.91", got)
	}
}
