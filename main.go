// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/io"
	"github.com/mandli/well-balanced-pressure/inp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ExperimentType names the directory under DATA_PATH holding all families
const ExperimentType = "well-balanced-pressure"

var (
	verbose bool        // debug logging
	logger  *zap.Logger // set by the root command
)

var rootCmd = &cobra.Command{
	Use:   "wbp",
	Short: "Batch runs and post-processing of well-balanced pressure forcing experiments",
	Long: `wbp writes the run data of the hump and storm job matrices, launches the
surge solver for each job and reads back diagnostics, snapshots and storm tracks.

Output directories follow {base}/{prefix}_output, where base defaults to
$DATA_PATH/well-balanced-pressure/{family}.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(jobsCmd, runCmd, diagCmd, energyCmd, transectCmd, compareCmd, trackCmd, ledgerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

// basePath returns the given path or $DATA_PATH/well-balanced-pressure/{family}
func basePath(given string, family inp.Family) (string, error) {
	if given != "" {
		return given, nil
	}
	return inp.DataRoot(ExperimentType, string(family))
}
