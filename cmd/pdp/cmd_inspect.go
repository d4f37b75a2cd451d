// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// rowPrinter prints the rows exposed by a session
type rowPrinter struct {
	w io.Writer
}

func (rp *rowPrinter) EmitWeightRow(unit, first int, row []float32) {
	fmt.Fprintf(rp.w, "%4d [%d,%d)", unit, first, first+len(row))
	for _, wt := range row {
		fmt.Fprintf(rp.w, " %7.3f", wt)
	}
	fmt.Fprintln(rp.w)
}

func (rp *rowPrinter) EmitBias(unit int, bias float32) {
	if bias != 0 {
		fmt.Fprintf(rp.w, "%4d bias %7.3f\n", unit, bias)
	}
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the network size, code table and weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, _, err := setup(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			perUnit, _ := cmd.Flags().GetBool("units")
			fmt.Fprint(out, ss.SizeReport(perUnit))
			fmt.Fprint(out, ss.Res.Table.String())
			if vars, _ := cmd.Flags().GetBool("vars"); vars {
				fmt.Fprint(out, ss.Vars.String())
			}
			if rows, _ := cmd.Flags().GetBool("rows"); rows && ss.HasNetwork() {
				return ss.Inspect(&rowPrinter{w: out})
			}
			return nil
		},
	}
	cmd.Flags().Bool("units", false, "size report per unit")
	cmd.Flags().Bool("rows", false, "print every weight row and bias")
	cmd.Flags().Bool("vars", false, "list the named scalars")
	return cmd
}
