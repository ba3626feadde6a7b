package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skim722/Algorithm/rtd"
	"github.com/skim722/Algorithm/rtd/experiment"
)

var specPath string

// runCmd executes every analysis listed in a YAML spec
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all analyses listed in a YAML analysis spec",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := experiment.LoadSpec(specPath)
		if err != nil {
			logrus.Fatalf("Failed to load spec %s: %v", specPath, err)
		}
		runSpec(cmd.Context(), spec)
	},
}

// runSpec executes spec with the global directories and prints boxplot summaries.
func runSpec(ctx context.Context, spec *experiment.Spec) []experiment.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	runner, err := experiment.NewRunner(spec, viper.GetString("trace-root"), viper.GetString("output-dir"))
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	logrus.Infof("Running %d analyses, traces from %s, output to %s", len(spec.Analyses), runner.TraceRoot, runner.OutputDir)

	results, err := runner.Run(ctx)
	if err != nil {
		logrus.Fatalf("Analysis failed: %v", err)
	}
	for _, res := range results {
		if res.Boxplot != nil {
			printBoxplotSummary(os.Stdout, res)
		}
	}
	logrus.Info("Analysis complete.")
	return results
}

// printBoxplotSummary writes box-and-whisker statistics of a boxplot result.
func printBoxplotSummary(w io.Writer, res experiment.Result) {
	s := rtd.SummarizeRunningTimes(res.Boxplot.RunningTimes)
	fmt.Fprintf(w, "=== Running Times: %s on %s (worst cover size %s) ===\n",
		res.Analysis.Algorithm, res.Analysis.Instance, rtd.FormatValue(res.Boxplot.WorstCoverSize))
	fmt.Fprintf(w, "Runs          : %d\n", s.Count)
	fmt.Fprintf(w, "Min / Max     : %.4fs / %.4fs\n", s.Min, s.Max)
	fmt.Fprintf(w, "Q1 / Median / Q3 : %.4fs / %.4fs / %.4fs\n", s.Q1, s.Median, s.Q3)
	fmt.Fprintf(w, "Mean          : %.4fs\n", s.Mean)
	fmt.Fprintf(w, "Whiskers      : %.4fs .. %.4fs\n", s.LowerWhisker, s.UpperWhisker)
	if len(s.Outliers) > 0 {
		outliers := make([]string, len(s.Outliers))
		for i, v := range s.Outliers {
			outliers[i] = rtd.FormatValue(v)
		}
		fmt.Fprintf(w, "Outliers      : %s\n", strings.Join(outliers, ", "))
	}
}

func init() {
	runCmd.Flags().StringVar(&specPath, "spec", "", "Path to YAML analysis spec")
	_ = runCmd.MarkFlagRequired("spec")

	rootCmd.AddCommand(runCmd)
}
