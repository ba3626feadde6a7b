package experiment

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skim722/Algorithm/rtd"
)

// writeToyTraces lays out the two-run batch (reference 10) for GA and a second,
// faster batch for ISING under root.
func writeToyTraces(t *testing.T, root string) {
	t.Helper()
	files := map[string]string{
		"GA/toy_GA_10_1.trace":       "0,20\n5,15\n10,10\n",
		"GA/toy_GA_10_2.trace":       "0,25\n5,12\n10,10\n",
		"ISING/toy_ISING_10_1.trace": "0,22\n2,11\n10,10\n",
		"ISING/toy_ISING_10_2.trace": "0,24\n3,10\n8,10\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func toySpec() *Spec {
	return &Spec{
		Instances: []InstanceSpec{{Name: "toy.graph", Reference: 10}},
		Analyses: []AnalysisSpec{
			{Kind: "qrtd", Algorithm: "ga", Instance: "toy"},
			{Kind: "sqd", Algorithm: "ga", Instance: "toy", NumPlots: 3, Scales: []float64{0, 0.5, 0, 1}},
			{Kind: "convergence", Algorithm: "ga", Instance: "toy"},
			{Kind: "convergence", Algorithm: "ising", Instance: "toy"},
			{Kind: "boxplot", Algorithm: "ga", Instance: "toy"},
		},
	}
}

func TestRunner_Run_WritesEveryAnalysis(t *testing.T) {
	// GIVEN traces for two algorithms and a spec covering every analysis kind
	root := t.TempDir()
	out := t.TempDir()
	writeToyTraces(t, root)

	runner, err := NewRunner(toySpec(), root, out)
	require.NoError(t, err)

	// WHEN run
	results, err := runner.Run(context.Background())
	require.NoError(t, err)

	// THEN one result per analysis, in declaration order, each written to disk
	require.Len(t, results, 5)
	wantFiles := []string{
		"QRTD_GA_toy.csv", "SQD_GA_toy.csv", "CONVERGENCE_GA_toy.csv",
		"CONVERGENCE_ISING_toy.csv", "BOXPLOT_GA_toy.csv",
	}
	for i, name := range wantFiles {
		assert.Equal(t, filepath.Join(out, name), results[i].OutputPath)
		data, err := os.ReadFile(results[i].OutputPath)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}

	// AND curve tables carry the sweep rows plus a header
	assert.Len(t, results[0].Curve.Rows, rtd.SweepPoints)
	assert.Len(t, results[0].Curve.Header(), rtd.DefaultNumPlots+1)
	assert.Len(t, results[1].Curve.Header(), 4)
	data, err := os.ReadFile(results[2].OutputPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), rtd.SweepPoints+1)

	// AND the boxplot matches the hand-computed samples
	assert.Equal(t, 10.0, results[4].Boxplot.WorstCoverSize)
	assert.Equal(t, []float64{10, 10}, results[4].Boxplot.RunningTimes)

	// AND the GA batch was loaded once and shared
	assert.Len(t, runner.batches, 2)
}

func TestRunner_Run_MissingTraces_NamesBatch(t *testing.T) {
	root := t.TempDir()
	writeToyTraces(t, root)
	spec := toySpec()
	spec.Analyses = []AnalysisSpec{{Kind: "qrtd", Algorithm: "bnb", Instance: "toy"}}

	runner, err := NewRunner(spec, root, t.TempDir())
	require.NoError(t, err)

	results, err := runner.Run(context.Background())
	assert.Empty(t, results)
	require.ErrorIs(t, err, rtd.ErrInvalidBatch)
	assert.Contains(t, err.Error(), "algorithm BNB on instance toy")
}

func TestRunner_Run_DegenerateBatch_AbortsWithoutLaterResults(t *testing.T) {
	// GIVEN a batch whose runs never improve, ahead of a valid analysis
	root := t.TempDir()
	writeToyTraces(t, root)
	flat := filepath.Join(root, "FLAT")
	require.NoError(t, os.MkdirAll(flat, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(flat, "toy_FLAT_10_1.trace"), []byte("1,12\n"), 0o644))

	spec := toySpec()
	spec.Analyses = []AnalysisSpec{
		{Kind: "qrtd", Algorithm: "ga", Instance: "toy"},
		{Kind: "sqd", Algorithm: "flat", Instance: "toy"},
		{Kind: "convergence", Algorithm: "ga", Instance: "toy"},
	}
	runner, err := NewRunner(spec, root, t.TempDir())
	require.NoError(t, err)

	// WHEN run
	results, err := runner.Run(context.Background())

	// THEN the failure is reported and analyses after it are not executed
	require.ErrorIs(t, err, rtd.ErrInvalidBatch)
	assert.Contains(t, err.Error(), "sqd for algorithm FLAT on instance toy")
	assert.Len(t, results, 1)
}

func TestRunner_Run_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeToyTraces(t, root)
	runner, err := NewRunner(toySpec(), root, t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunner_FallbackDirectories(t *testing.T) {
	spec := toySpec()
	spec.TraceRoot = "traces"
	runner, err := NewRunner(spec, "", "")
	require.NoError(t, err)
	assert.Equal(t, "traces", runner.TraceRoot)
	assert.Equal(t, ".", runner.OutputDir)

	_, err = NewRunner(nil, "", "")
	assert.Error(t, err)
}
