// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the network on the pattern set",
		Long: `Train runs nepochs epochs, or until the epoch error falls below ecrit.
With --save the weights are written after training; with --log (or
epoch_log in the configuration) the epoch log is saved as CSV.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, cf, err := setup(cmd)
			if err != nil {
				return err
			}
			order, err := cf.OrderType()
			if err != nil {
				return err
			}
			if n, _ := cmd.Flags().GetInt("epochs"); n > 0 {
				ss.Sched.NEpochs = n
			}
			if err := attach(ss, func() error { return ss.Train(order) }); err != nil {
				return err
			}
			sc := ss.Sched
			fmt.Fprintf(cmd.OutOrStdout(), "%s: epoch %d tss %.4f state %s (%.3gs last epoch)\n",
				ss.Type, sc.Time.Epoch.Cur, sc.TSS, sc.State, sc.Timer.TotalSecs())
			logfn, _ := cmd.Flags().GetString("log")
			if logfn == "" {
				logfn = cf.EpochLog
			}
			if logfn != "" {
				if err := sc.SaveEpochLog(logfn); err != nil {
					return err
				}
			}
			if fn, _ := cmd.Flags().GetString("save"); fn != "" {
				return saveFile(ss, fn)
			}
			return nil
		},
	}
	cmd.Flags().Int("epochs", 0, "epochs to train, overriding nepochs")
	cmd.Flags().String("log", "", "CSV file for the epoch log")
	cmd.Flags().String("save", "", "weight file to save after training (.json for JSON)")
	return cmd
}
