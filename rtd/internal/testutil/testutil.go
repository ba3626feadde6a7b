// Package testutil provides shared test fixtures and assertion helpers for the rtd
// packages. It builds small batches by hand and compares floats with tolerance.
package testutil

import (
	"math"
	"testing"

	"github.com/skim722/Algorithm/rtd"
)

// Trace builds a trace from alternating time, quality values.
func Trace(t *testing.T, source string, pairs ...float64) rtd.Trace {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("trace %s: odd number of values (%d)", source, len(pairs))
	}
	obs := make([]rtd.Observation, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		obs = append(obs, rtd.Observation{Time: pairs[i], Quality: pairs[i+1]})
	}
	return rtd.Trace{Source: source, Observations: obs}
}

// TwoRunBatch returns the reference scenario: reference 10,
// A = [(0,20),(5,15),(10,10)], B = [(0,25),(5,12),(10,10)].
func TwoRunBatch(t *testing.T) *rtd.Batch {
	t.Helper()
	b, err := rtd.NewBatch("toy", "GA", 10, []rtd.Trace{
		Trace(t, "A", 0, 20, 5, 15, 10, 10),
		Trace(t, "B", 0, 25, 5, 12, 10, 10),
	})
	if err != nil {
		t.Fatalf("building two-run batch: %v", err)
	}
	return b
}

// StaggeredBatch returns a four-run batch whose runs start and finish at different times
// and end at different qualities, so every natural range bound comes from a different run.
func StaggeredBatch(t *testing.T) *rtd.Batch {
	t.Helper()
	b, err := rtd.NewBatch("staggered", "ISING", 100, []rtd.Trace{
		Trace(t, "r0", 0.1, 150, 1.0, 130, 2.0, 110, 4.0, 104),
		Trace(t, "r1", 0.2, 160, 0.8, 120, 3.0, 102),
		Trace(t, "r2", 0.5, 140, 1.5, 125, 2.5, 112, 6.0, 108),
		Trace(t, "r3", 0.3, 155, 0.9, 118, 1.2, 106, 5.0, 100),
	})
	if err != nil {
		t.Fatalf("building staggered batch: %v", err)
	}
	return b
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
