// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"os"

	"github.com/dagfinndybvig/renewedPDP/config"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/logging"
	"github.com/dagfinndybvig/renewedPDP/sim"
	"github.com/spf13/cobra"
)

// loadConfig reads the --config file, if any, and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	fl := cmd.Flags()
	cf := config.Default()
	if fn, _ := fl.GetString("config"); fn != "" {
		var err error
		cf, err = config.Load(fn)
		if err != nil {
			return nil, err
		}
	}
	if s, _ := fl.GetString("model"); s != "" {
		cf.Model = s
	}
	if s, _ := fl.GetString("net"); s != "" {
		cf.Network = s
	}
	if s, _ := fl.GetString("pats"); s != "" {
		cf.Patterns = s
	}
	if s, _ := fl.GetString("weights"); s != "" {
		cf.Weights = s
	}
	if s, _ := fl.GetUint64("seed"); s != 0 {
		cf.Seed = s
	}
	if s, _ := fl.GetString("log-level"); s != "" {
		cf.Log.Level = s
	}
	if set, _ := fl.GetStringToString("set"); len(set) > 0 {
		if cf.Vars == nil {
			cf.Vars = map[string]string{}
		}
		for k, v := range set {
			cf.Vars[k] = v
		}
	}
	return cf, nil
}

// setup builds the session of the configuration and loads its files.
// Load errors that left a usable network are logged and do not fail.
func setup(cmd *cobra.Command) (*sim.Session, *config.Config, error) {
	cf, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log := logging.NewLogger(cf.Log.Level, os.Stderr)
	ss, err := cf.NewSession(log)
	if err != nil {
		return nil, nil, err
	}
	if cf.Network != "" {
		if err := ss.OpenNetwork(cf.Network); err != nil {
			if !ss.HasNetwork() || errors.Is(err, errs.Topo) {
				return nil, nil, err
			}
			log.Warn("network loaded with errors", "file", cf.Network, "err", err)
		}
	}
	if cf.Patterns != "" {
		if err := ss.OpenPatterns(cf.Patterns); err != nil {
			if ss.Pats.NPats() == 0 {
				return nil, nil, err
			}
			log.Warn("patterns loaded with errors", "file", cf.Patterns, "npats", ss.Pats.NPats(), "err", err)
		}
	}
	if cf.Weights != "" {
		if err := restoreFile(ss, cf.Weights); err != nil {
			return nil, nil, err
		}
	}
	return ss, cf, nil
}
