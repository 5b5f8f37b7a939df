// Command dlrepair is a minimal demonstration harness for the repair
// library: it loads a toy fixture.yaml ontology (not OWL/OBO — see
// loadFixture), runs one repair strategy against it, and prints the
// resulting axiom set. It exists to exercise package repair end to
// end, not to replace the excluded ontology-I/O layer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nodeadmin/dlrepair/progress"
)

var (
	verbose    bool
	configPath string
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dlrepair",
	Short: "Run a description-logic ontology repair over a toy fixture",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
		built, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = built
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func sink() progress.Sink {
	if logger == nil {
		return progress.Noop()
	}
	return progress.NewZapSink(logger)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log repair-loop progress at debug level")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a RepairConfig YAML file (defaults applied if omitted)")

	rootCmd.AddCommand(repairCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
