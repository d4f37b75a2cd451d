// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/sim"
	"github.com/spf13/cobra"
)

func isJSON(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".json"
}

// saveFile writes the session weights, as JSON if filename ends in .json
func saveFile(ss *sim.Session, filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "save weights", err)
	}
	defer fp.Close()
	if isJSON(filename) {
		return ss.SaveWeightsJSON(fp)
	}
	return ss.SaveWeights(fp)
}

// restoreFile reads weights written by saveFile
func restoreFile(ss *sim.Session, filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "restore weights", err)
	}
	defer fp.Close()
	if isJSON(filename) {
		return ss.RestoreWeightsJSON(fp)
	}
	return ss.RestoreWeights(fp)
}

func newWeightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Save, load or convert weight files",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "save <file>",
			Short: "Save the initial weights of the network (.json for JSON)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ss, _, err := setup(cmd)
				if err != nil {
					return err
				}
				return saveFile(ss, args[0])
			},
		},
		&cobra.Command{
			Use:   "load <file>",
			Short: "Check that a weight file fits the network",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ss, _, err := setup(cmd)
				if err != nil {
					return err
				}
				if err := restoreFile(ss, args[0]); err != nil {
					return err
				}
				ss.Log.Info("weights restored", "file", args[0], "ncons", ss.Store.NCons())
				return nil
			},
		},
		&cobra.Command{
			Use:   "json <in> <out.json>",
			Short: "Convert a text weight file to JSON",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ss, _, err := setup(cmd)
				if err != nil {
					return err
				}
				if err := restoreFile(ss, args[0]); err != nil {
					return err
				}
				return saveFile(ss, args[1])
			},
		},
	)
	return cmd
}
