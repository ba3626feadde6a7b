package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skim722/Algorithm/rtd"
	"github.com/skim722/Algorithm/rtd/experiment"
)

func TestGlobalFlags_EnvironmentOverridesDefault(t *testing.T) {
	// GIVEN RTD_* variables and untouched flags
	t.Setenv("RTD_TRACE_ROOT", "/data/traces")
	t.Setenv("RTD_LOG", "debug")

	// THEN viper resolves the environment values
	assert.Equal(t, "/data/traces", viper.GetString("trace-root"))
	assert.Equal(t, "debug", viper.GetString("log"))
}

func TestSingleAnalysisSpec_OneAnalysisPerAlgorithm(t *testing.T) {
	// GIVEN flag values for a convergence comparison
	algorithms = []string{"ising", "ga"}
	instance = "star2.graph"
	reference = 4542
	scales = []float64{0, 1, 0, 0.03}
	numPlots = 7
	t.Cleanup(func() { algorithms, instance, reference, scales = nil, "", 0, nil })

	// WHEN the spec is built and validated through a runner
	spec := singleAnalysisSpec(experiment.KindConvergence)
	_, err := experiment.NewRunner(spec, t.TempDir(), t.TempDir())
	require.NoError(t, err)

	// THEN each algorithm gets its own convergence analysis without num_plots
	require.Len(t, spec.Analyses, 2)
	assert.Equal(t, "ISING", spec.Analyses[0].Algorithm)
	assert.Equal(t, "GA", spec.Analyses[1].Algorithm)
	for _, a := range spec.Analyses {
		assert.Equal(t, "star2", a.Instance)
		assert.Zero(t, a.NumPlots)
		assert.Equal(t, []float64{0, 1, 0, 0.03}, a.Scales)
	}
}

func TestSingleAnalysisSpec_BoxplotCarriesNoScales(t *testing.T) {
	algorithms = []string{"GA"}
	instance = "power"
	reference = 2203
	scales = rtd.DefaultScale.Slice()
	t.Cleanup(func() { algorithms, instance, reference, scales = nil, "", 0, nil })

	spec := singleAnalysisSpec(experiment.KindBoxplot)

	require.NoError(t, func() error {
		_, err := experiment.NewRunner(spec, "", "")
		return err
	}())
	assert.Empty(t, spec.Analyses[0].Scales)
}

func TestPrintBoxplotSummary(t *testing.T) {
	res := experiment.Result{
		Analysis: experiment.AnalysisSpec{Kind: experiment.KindBoxplot, Algorithm: "GA", Instance: "power"},
		Boxplot:  &rtd.BoxplotResult{WorstCoverSize: 2210, RunningTimes: []float64{4, 1, 3, 2, 100}},
	}

	var buf bytes.Buffer
	printBoxplotSummary(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "GA on power (worst cover size 2210)")
	assert.Contains(t, out, "Runs          : 5")
	assert.Contains(t, out, "2.0000s / 3.0000s / 4.0000s")
	assert.Contains(t, out, "Outliers      : 100")
}
