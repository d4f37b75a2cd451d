// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/dagfinndybvig/renewedPDP/sched"
	"github.com/dagfinndybvig/renewedPDP/sim"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestLoadTOML(t *testing.T) {
	fn := writeFile(t, "run.toml", `model = "aa"
seed = 9
order = "shuffled"
act = "bsb"
learn = "Delta"

[step]
grain = "pattern"
single = true

[vars]
lrate = "0.25"
ncycles = "7"
`)
	cf, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	ss, err := cf.NewSession(nil)
	if err != nil {
		t.Fatal(err)
	}
	if ss.Type != sim.AA || ss.Seed != 9 {
		t.Errorf("model %v seed %d", ss.Type, ss.Seed)
	}
	if ss.Sched.Order != sched.Shuffled || ss.Sched.Step.Grain != sched.StepPattern || !ss.Sched.Step.Single {
		t.Errorf("scheduler: %v %v %v", ss.Sched.Order, ss.Sched.Step.Grain, ss.Sched.Step.Single)
	}
	if ss.AA.Act.Kind != policy.BSB || ss.AA.Learn.Rule != policy.Delta {
		t.Errorf("aa modes: %v %v", ss.AA.Act.Kind, ss.AA.Learn.Rule)
	}
	if ss.Lrate != 0.25 || ss.AA.NCycles != 7 {
		t.Errorf("vars: lrate %g ncycles %d", ss.Lrate, ss.AA.NCycles)
	}
	if cf.Log.Level != "info" {
		t.Errorf("default log level: %q", cf.Log.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	fn := writeFile(t, "run.yaml", `model: CS
cs:
  mode: boltzmann
  clamp: true
  anneal:
    - time: 0
      temp: 2
    - time: 10
      temp: 0.5
vars:
  nupdates: "20"
`)
	cf, err := Load(fn)
	if err != nil {
		t.Fatal(err)
	}
	ss, err := cf.NewSession(nil)
	if err != nil {
		t.Fatal(err)
	}
	cs := &ss.CS
	if cs.CS.Mode != policy.Boltzmann || !cs.CS.Clamp || cs.NUpdates != 20 {
		t.Errorf("cs: %v %v %d", cs.CS.Mode, cs.CS.Clamp, cs.NUpdates)
	}
	if tmp := cs.Anneal.Temp(5); tmp != 1.25 {
		t.Errorf("anneal at 5: %g", tmp)
	}
}

func TestConfigErrors(t *testing.T) {
	if _, err := Load(writeFile(t, "run.ini", "model = aa")); !errors.Is(err, errs.Load) {
		t.Errorf("unknown extension: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errs.IO) {
		t.Errorf("missing file: %v", err)
	}
	cf := Default()
	cf.Model = "bp"
	if _, err := cf.NewSession(nil); !errors.Is(err, errs.Load) {
		t.Errorf("unknown model: %v", err)
	}
	cf = Default()
	cf.Vars = map[string]string{"nhidden": "3"}
	if _, err := cf.NewSession(nil); !errors.Is(err, errs.NoName) {
		t.Errorf("unknown var: %v", err)
	}
}
