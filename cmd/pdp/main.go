// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pdp runs the auto-associator, competitive learning, interactive
// activation, constraint satisfaction and pattern associator simulators
// from a run configuration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "pdp",
		Short: "Parallel distributed processing simulators",
		Long: `pdp builds a network from a description file, loads a pattern set and
trains or tests one of the AA, CL, IAC, CS or PA models on it.

Settings come from a .toml or .yaml run configuration; flags override it.
Ctrl-C interrupts a run at the next pattern or cycle and asks whether to
continue, break, or push a nested command session.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "run configuration (.toml or .yaml)")
	rootCmd.PersistentFlags().StringP("model", "m", "", "model: AA, CL, IAC, CS or PA")
	rootCmd.PersistentFlags().String("net", "", "network description file")
	rootCmd.PersistentFlags().String("pats", "", "pattern file")
	rootCmd.PersistentFlags().String("weights", "", "weight file to restore after loading the network")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed")
	rootCmd.PersistentFlags().String("log-level", "", "log level: error, warn, info, debug or trace")
	rootCmd.PersistentFlags().StringToString("set", nil, "named scalars, e.g. --set lrate=0.1,nepochs=20")

	rootCmd.AddCommand(
		newVersionCmd(),
		newTrainCmd(),
		newTestCmd(),
		newInspectCmd(),
		newWeightsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pdp version %s\n", version)
		},
	}
}
