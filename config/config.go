// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package config loads run configurations from TOML or YAML files, chosen
by file extension, and applies them to a new simulation session.

	model = "PA"
	seed = 3
	network = "jets.net"
	patterns = "jets.pat"
	order = "shuffled"

	[vars]
	lrate = "0.5"
	nepochs = "100"

Entries under vars are named scalars, set exactly as a network
description's definitions block would set them.
*/
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/dagfinndybvig/renewedPDP/sched"
	"github.com/dagfinndybvig/renewedPDP/sim"
	"gopkg.in/yaml.v3"
)

// Config is one run configuration
type Config struct {
	// Model is the simulator: AA, CL, IAC, CS or PA
	Model string `toml:"model" yaml:"model"`

	// Seed is the random seed; 0 is replaced by DefSeed
	Seed uint64 `toml:"seed" yaml:"seed"`

	Network  string `toml:"network" yaml:"network"`
	Patterns string `toml:"patterns" yaml:"patterns"`

	// Weights is restored after the network loads, if set
	Weights string `toml:"weights" yaml:"weights"`

	// EpochLog is the CSV file the epoch log is saved to after training
	EpochLog string `toml:"epoch_log" yaml:"epoch_log"`

	// Order is sequential or shuffled
	Order string `toml:"order" yaml:"order"`

	Step StepConfig `toml:"step" yaml:"step"`

	// Act is the activation (AA) or output (PA) function
	Act string `toml:"act" yaml:"act"`

	// Learn is the learning rule for AA and PA: Hebb, Delta or NoLearn
	Learn string `toml:"learn" yaml:"learn"`

	SelfConn bool `toml:"self_connect" yaml:"self_connect"`

	// GB selects the Grossberg update in IAC
	GB bool `toml:"gb" yaml:"gb"`

	CS CSConfig `toml:"cs" yaml:"cs"`

	Vars map[string]string `toml:"vars" yaml:"vars"`

	Log LogConfig `toml:"log" yaml:"log"`
}

// StepConfig configures checkpoint refresh and single stepping
type StepConfig struct {
	// Grain is update, cycle, trial, pattern, epoch or run
	Grain  string `toml:"grain" yaml:"grain"`
	Single bool   `toml:"single" yaml:"single"`
	Steps  int    `toml:"steps" yaml:"steps"`
}

// CSConfig configures constraint satisfaction
type CSConfig struct {
	// Mode is schema, boltzmann or harmony
	Mode   string      `toml:"mode" yaml:"mode"`
	Clamp  bool        `toml:"clamp" yaml:"clamp"`
	Anneal []Milestone `toml:"anneal" yaml:"anneal"`
}

// Milestone is one point of the annealing schedule
type Milestone struct {
	Time int     `toml:"time" yaml:"time"`
	Temp float32 `toml:"temp" yaml:"temp"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is error, warn, info, debug or trace
	Level string `toml:"level" yaml:"level"`
}

// DefSeed is the seed used when none is given
const DefSeed = 1

// Default returns a configuration with defaults set
func Default() *Config {
	cf := &Config{}
	cf.Defaults()
	return cf
}

// Defaults fills in unset values
func (cf *Config) Defaults() {
	if cf.Model == "" {
		cf.Model = "PA"
	}
	if cf.Seed == 0 {
		cf.Seed = DefSeed
	}
	if cf.Order == "" {
		cf.Order = "sequential"
	}
	if cf.Step.Grain == "" {
		cf.Step.Grain = "run"
	}
	if cf.Step.Steps <= 0 {
		cf.Step.Steps = 1
	}
	if cf.Log.Level == "" {
		cf.Log.Level = "info"
	}
}

// Load reads a .toml, .yaml or .yml file and fills in defaults
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "config", err)
	}
	cf := &Config{}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = toml.Unmarshal(data, cf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cf)
	default:
		return nil, errs.New(errs.LoadError, "config", "unknown config file type %q", filename)
	}
	if err != nil {
		return nil, errs.Wrap(errs.LoadError, "config", err)
	}
	cf.Defaults()
	return cf, nil
}

type enumSetter interface {
	FromString(s string) error
}

// setEnum sets ev from s, matching the enum name exactly, in upper
// case, or capitalized, after adding prefix.
func setEnum(ev enumSetter, prefix, s, what string) error {
	if s == "" {
		return nil
	}
	cands := []string{s, strings.ToUpper(s), strings.ToUpper(s[:1]) + strings.ToLower(s[1:])}
	for _, c := range cands {
		if ev.FromString(prefix+c) == nil {
			return nil
		}
	}
	return errs.New(errs.LoadError, "config", "invalid %s %q", what, s)
}

// ModelType returns the model named by Model
func (cf *Config) ModelType() (sim.ModelType, error) {
	var mt sim.ModelType
	err := setEnum(&mt, "", cf.Model, "model")
	return mt, err
}

// OrderType returns the pattern order named by Order
func (cf *Config) OrderType() (sched.Order, error) {
	var ord sched.Order
	err := setEnum(&ord, "", cf.Order, "order")
	return ord, err
}

// NewSession creates a session for the configured model and applies the
// configuration to it. Files are not loaded.
func (cf *Config) NewSession(log *slog.Logger) (*sim.Session, error) {
	mt, err := cf.ModelType()
	if err != nil {
		return nil, err
	}
	ss := sim.New(mt, cf.Seed, log)
	if err := cf.Apply(ss); err != nil {
		return nil, err
	}
	return ss, nil
}

// Apply sets the session parameters from the configuration
func (cf *Config) Apply(ss *sim.Session) error {
	ss.Seed = cf.Seed
	sc := ss.Sched
	if err := setEnum(&sc.Order, "", cf.Order, "order"); err != nil {
		return err
	}
	if err := setEnum(&sc.Step.Grain, "Step", cf.Step.Grain, "step grain"); err != nil {
		return err
	}
	sc.Step.Single = cf.Step.Single
	sc.Step.StepsPerClick = cf.Step.Steps

	switch ss.Type {
	case sim.AA:
		if err := setEnum(&ss.AA.Act.Kind, "", cf.Act, "activation"); err != nil {
			return err
		}
		if err := setEnum(&ss.AA.Learn.Rule, "", cf.Learn, "learning rule"); err != nil {
			return err
		}
		ss.AA.Learn.SelfConn = cf.SelfConn
	case sim.PA:
		if err := setEnum(&ss.PA.Act.Kind, "", cf.Act, "output function"); err != nil {
			return err
		}
		if err := setEnum(&ss.PA.Learn.Rule, "", cf.Learn, "learning rule"); err != nil {
			return err
		}
	case sim.IAC:
		ss.IAC.GB = cf.GB
	case sim.CS:
		cs := &ss.CS
		if err := setEnum(&cs.CS.Mode, "", cf.CS.Mode, "cs mode"); err != nil {
			return err
		}
		cs.CS.Clamp = cf.CS.Clamp
		if len(cf.CS.Anneal) > 0 {
			cs.Anneal = policy.Schedule{}
			for _, ms := range cf.CS.Anneal {
				if err := cs.Anneal.Add(ms.Time, ms.Temp); err != nil {
					return err
				}
			}
		}
	}

	names := make([]string, 0, len(cf.Vars))
	for nm := range cf.Vars {
		names = append(names, nm)
	}
	sort.Strings(names)
	for _, nm := range names {
		if err := ss.SetNamedScalar(nm, cf.Vars[nm]); err != nil {
			return err
		}
	}
	ss.Update()
	return nil
}
