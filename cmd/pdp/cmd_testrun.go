// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/sim"
	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [pattern...]",
		Short: "Present patterns without learning",
		Long: `Test presents the named (or numbered) patterns once each without
learning and prints their results. With no arguments every pattern is
tested in order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, _, err := setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return attach(ss, func() error {
				if len(args) == 0 {
					if ss.Pats.NPats() == 0 {
						return errs.New(errs.LoadError, "test", "no patterns loaded")
					}
					for i, nm := range ss.Pats.Names {
						if _, err := ss.Test(nm); err != nil {
							return err
						}
						printResult(out, ss, i, nm)
					}
					return nil
				}
				for _, nm := range args {
					if _, err := ss.Test(nm); err != nil {
						return err
					}
					printResult(out, ss, ss.Pats.Index(nm), nm)
				}
				return nil
			})
		},
	}
	return cmd
}

// printResult prints the result of the last pattern tested
func printResult(w io.Writer, ss *sim.Session, pat int, name string) {
	switch ss.Type {
	case sim.AA, sim.PA:
		st := ss.Stats
		fmt.Fprintf(w, "%3d %-10s pss %.4f ndp %.4f vcor %.4f nvl %.4f\n", pat, name, st.PSS, st.NDP, st.VCor, st.NVL)
	case sim.CL:
		fmt.Fprintf(w, "%3d %-10s winner %d\n", pat, name, ss.Winner)
	case sim.CS:
		fmt.Fprintf(w, "%3d %-10s goodness %.4f\n", pat, name, ss.Goodness)
	default:
		fmt.Fprintf(w, "%3d %-10s", pat, name)
		for _, a := range ss.State.Act {
			fmt.Fprintf(w, " %6.3f", a)
		}
		fmt.Fprintln(w)
	}
}
