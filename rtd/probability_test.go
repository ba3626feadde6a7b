package rtd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skim722/Algorithm/rtd"
	"github.com/skim722/Algorithm/rtd/internal/testutil"
)

func TestFindProbability_TwoRuns_OneQualifies(t *testing.T) {
	// GIVEN runs holding 15 and 12 at t=5 against reference 10 (errors 0.5 and 0.2)
	b := testutil.TwoRunBatch(t)

	// WHEN asking for error <= 0.3 by t=5
	p, err := rtd.FindProbability(b, 5, 0.3)
	require.NoError(t, err)

	// THEN only run B counts
	assert.Equal(t, 0.5, p)
}

func TestFindProbability_InvalidBatch_ReturnsError(t *testing.T) {
	_, err := rtd.FindProbability(&rtd.Batch{Reference: 10}, 1, 0.1)
	assert.ErrorIs(t, err, rtd.ErrInvalidBatch)
}

func TestTraceQualityAt_LastValueAtOrBefore(t *testing.T) {
	tr := testutil.Trace(t, "x", 1, 30, 2, 20, 2, 18, 4, 10)
	tests := []struct {
		name string
		time float64
		want float64
	}{
		{"before first sample", 0.5, 30},
		{"exactly first sample", 1, 30},
		{"between samples", 1.5, 30},
		{"duplicate timestamp keeps later row", 2, 18},
		{"overshoot sample not used", 3.999, 18},
		{"exactly last sample", 4, 10},
		{"after last sample", 100, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.QualityAt(tt.time))
		})
	}
}

// linearQualityAt is the reference scan: keep the last quality until a timestamp exceeds t.
func linearQualityAt(tr rtd.Trace, timeSec float64) float64 {
	q := tr.Observations[0].Quality
	for _, o := range tr.Observations {
		if o.Time > timeSec {
			break
		}
		q = o.Quality
	}
	return q
}

func TestTraceQualityAt_MatchesLinearScan(t *testing.T) {
	b := testutil.StaggeredBatch(t)
	for _, tr := range b.Traces {
		for _, timeSec := range rtd.Sweep(0, 7, 701) {
			if got, want := tr.QualityAt(timeSec), linearQualityAt(tr, timeSec); got != want {
				t.Fatalf("trace %s at t=%v: got %v, want %v", tr.Source, timeSec, got, want)
			}
		}
	}
}

func TestFindProbability_MonotoneInTime(t *testing.T) {
	b := testutil.StaggeredBatch(t)
	for _, relErr := range []float64{0.0, 0.05, 0.1, 0.2, 0.4} {
		prev := -1.0
		for _, timeSec := range rtd.Sweep(0, 7, 200) {
			p, err := rtd.FindProbability(b, timeSec, relErr)
			require.NoError(t, err)
			if p < prev {
				t.Fatalf("relErr=%v: probability fell from %v to %v at t=%v", relErr, prev, p, timeSec)
			}
			prev = p
		}
	}
}

func TestFindProbability_MonotoneInError(t *testing.T) {
	b := testutil.StaggeredBatch(t)
	for _, timeSec := range []float64{0.1, 0.9, 1.5, 3, 6} {
		prev := -1.0
		for _, relErr := range rtd.Sweep(0, 0.7, 140) {
			p, err := rtd.FindProbability(b, timeSec, relErr)
			require.NoError(t, err)
			if p < prev {
				t.Fatalf("t=%v: probability fell from %v to %v at relErr=%v", timeSec, prev, p, relErr)
			}
			prev = p
		}
	}
}

func TestFindProbability_Bounds(t *testing.T) {
	// GIVEN errors at t=2: r0 110 (0.10), r1 120 (0.20), r2 125 (0.25), r3 106 (0.06)
	b := testutil.StaggeredBatch(t)

	// THEN a threshold at the worst error solves everything
	p, err := rtd.FindProbability(b, 2, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)

	// AND a threshold below the best error solves nothing
	p, err = rtd.FindProbability(b, 2, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	// AND an intermediate threshold counts exactly the runs at or below it
	p, err = rtd.FindProbability(b, 2, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)
}

func TestMeanRelativeError_AveragesRetainedErrors(t *testing.T) {
	b := testutil.TwoRunBatch(t)

	got, err := rtd.MeanRelativeError(b, 5)
	require.NoError(t, err)
	testutil.AssertFloat64Equal(t, "mean at t=5", 0.35, got, 1e-12)

	got, err = rtd.MeanRelativeError(b, 0)
	require.NoError(t, err)
	testutil.AssertFloat64Equal(t, "mean at t=0", 1.25, got, 1e-12)
}
