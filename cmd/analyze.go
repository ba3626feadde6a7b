package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/skim722/Algorithm/rtd"
	"github.com/skim722/Algorithm/rtd/experiment"
)

var (
	algorithms []string  // Algorithm identifiers (directory names under the trace root)
	instance   string    // Problem instance identifier
	reference  float64   // Best-known quality of the instance
	numPlots   int       // Threshold columns for qrtd/sqd
	scales     []float64 // error_low, error_high, time_low, time_high
)

// --- rtd qrtd ---

var qrtdCmd = &cobra.Command{
	Use:   "qrtd",
	Short: "Qualified run-time distribution: P(solved) over time per error threshold",
	Run: func(cmd *cobra.Command, args []string) {
		runSpec(cmd.Context(), singleAnalysisSpec(experiment.KindQRTD))
	},
}

// --- rtd sqd ---

var sqdCmd = &cobra.Command{
	Use:   "sqd",
	Short: "Solution-quality distribution: P(solved) over error per time threshold",
	Run: func(cmd *cobra.Command, args []string) {
		runSpec(cmd.Context(), singleAnalysisSpec(experiment.KindSQD))
	},
}

// --- rtd convergence ---

var convergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Mean relative error over time, one table per algorithm",
	Run: func(cmd *cobra.Command, args []string) {
		runSpec(cmd.Context(), singleAnalysisSpec(experiment.KindConvergence))
	},
}

// --- rtd boxplot ---

var boxplotCmd = &cobra.Command{
	Use:   "boxplot",
	Short: "Per-run time to reach the worst final quality, with summary statistics",
	Run: func(cmd *cobra.Command, args []string) {
		runSpec(cmd.Context(), singleAnalysisSpec(experiment.KindBoxplot))
	},
}

// singleAnalysisSpec builds a spec running one analysis kind for every --algorithm flag value.
func singleAnalysisSpec(kind string) *experiment.Spec {
	if len(algorithms) == 0 {
		logrus.Fatalf("at least one --algorithm is required")
	}
	spec := &experiment.Spec{
		Instances: []experiment.InstanceSpec{{Name: instance, Reference: reference}},
	}
	for _, algo := range algorithms {
		a := experiment.AnalysisSpec{Kind: kind, Algorithm: algo, Instance: instance}
		switch kind {
		case experiment.KindQRTD, experiment.KindSQD:
			a.NumPlots = numPlots
			a.Scales = scales
		case experiment.KindConvergence:
			a.Scales = scales
		}
		spec.Analyses = append(spec.Analyses, a)
	}
	return spec
}

func init() {
	for _, c := range []*cobra.Command{qrtdCmd, sqdCmd, convergenceCmd, boxplotCmd} {
		c.Flags().StringSliceVar(&algorithms, "algorithm", nil, "Algorithm identifier, e.g. GA or ISING (repeatable)")
		c.Flags().StringVar(&instance, "instance", "", "Problem instance identifier, e.g. power or power.graph")
		c.Flags().Float64Var(&reference, "reference", 0, "Best-known (reference) quality of the instance")
		_ = c.MarkFlagRequired("algorithm")
		_ = c.MarkFlagRequired("instance")
		_ = c.MarkFlagRequired("reference")
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{qrtdCmd, sqdCmd} {
		c.Flags().IntVar(&numPlots, "num-plots", rtd.DefaultNumPlots, "Number of threshold columns")
	}
	for _, c := range []*cobra.Command{qrtdCmd, sqdCmd, convergenceCmd} {
		c.Flags().Float64SliceVar(&scales, "scales", rtd.DefaultScale.Slice(), "Comma-separated error_low,error_high,time_low,time_high fractions")
	}
}
