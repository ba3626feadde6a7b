package cmd

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logLevel  string // Log verbosity level
	traceRoot string // Directory holding <ALGO>/<instance>_*.trace files
	outputDir string // Directory receiving curve CSV files
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rtd",
	Short: "Run-time and solution-quality distributions from solver traces",
	Long: "Reduce repeated solver traces into QRTD, SQD, convergence and boxplot tables.\n" +
		"Global flags may also be set through RTD_* environment variables (e.g. RTD_TRACE_ROOT).",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(viper.GetString("log"))
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", viper.GetString("log"))
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up global flags and their environment bindings
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&traceRoot, "trace-root", "", "Directory containing <ALGO>/<instance>_*.trace files (default: spec trace_root, then \"output\")")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Directory for CSV output (default: spec output_dir, then \".\")")

	viper.SetEnvPrefix("RTD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"log", "trace-root", "output-dir"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}
