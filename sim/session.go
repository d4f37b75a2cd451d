// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sim is the simulation session: it owns the topology store, the
constraint resolver, the named configuration scalars, the unit state and
the pattern set of one simulator, and runs one of five models under the
shared scheduler:

	AA   auto-associator (Hebbian or delta, bounded / linear / BSB)
	CL   competitive learning (winner-take-all)
	IAC  interactive activation and competition
	CS   constraint satisfaction (schema, Boltzmann or harmony)
	PA   pattern associator

The model is chosen once, when the session is created.
*/
package sim

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/dagfinndybvig/renewedPDP/cons"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/netfile"
	"github.com/dagfinndybvig/renewedPDP/pats"
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/dagfinndybvig/renewedPDP/sched"
	"github.com/dagfinndybvig/renewedPDP/topo"
	"github.com/dagfinndybvig/renewedPDP/vars"
	"github.com/goki/ki/kit"
	"golang.org/x/exp/rand"
)

// ModelType is the simulator run by a session
type ModelType int

//go:generate stringer -type=ModelType

var KiT_ModelType = kit.Enums.AddEnum(ModelTypeN, kit.NotBitFlag, nil)

func (ev ModelType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ModelType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	AA ModelType = iota
	CL
	IAC
	CS
	PA
	ModelTypeN
)

// Session is one simulator with all of its state
type Session struct {
	Type    ModelType `desc:"model run by this session"`
	Units   int       `desc:"number of units"`
	Inputs  int       `desc:"number of input units (CL, CS harmony, PA)"`
	Outputs int       `desc:"number of output units (CL, PA)"`
	Seed    uint64    `desc:"random seed, applied at every network load and reset"`
	Lrate   float32   `desc:"learning rate given to trainable cells"`
	Wrange  float32   `def:"1" desc:"range of random initial values"`

	AA  AAParams  `view:"inline" desc:"auto-associator parameters"`
	CL  CLParams  `view:"inline" desc:"competitive learning parameters"`
	IAC IACParams `view:"inline" desc:"interactive activation parameters"`
	CS  CSParams  `view:"inline" desc:"constraint satisfaction parameters"`
	PA  PAParams  `view:"inline" desc:"pattern associator parameters"`

	Store *topo.Store      `view:"-" desc:"connection windows, weights, biases and sigmas"`
	Res   *cons.Resolver   `view:"-" desc:"constraint codes, pools and linked groups"`
	Vars  *vars.Table      `view:"-" desc:"named scalars settable from a definitions block"`
	State *policy.State    `view:"-" desc:"unit state"`
	Pats  *pats.Set        `view:"-" desc:"current pattern set"`
	Sched *sched.Scheduler `view:"-" desc:"scheduler running the model"`
	Smp   *policy.Sampler  `view:"-" desc:"source of all random draws"`
	Log   *slog.Logger     `view:"-" desc:"session logger"`

	Stats    policy.PatStats `inactive:"+" desc:"statistics of the last pattern"`
	Goodness float32         `inactive:"+" desc:"goodness (harmony) of the last CS state"`
	Winner   int             `inactive:"+" desc:"winning unit of the last CL pattern, -1 for none"`

	desc  []byte
	model sched.Model
}

// New returns a session running model typ, with defaults for that model
func New(typ ModelType, seed uint64, log *slog.Logger) *Session {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ss := &Session{Type: typ, Seed: seed, Log: log}
	ss.Smp = policy.NewSampler(rand.NewSource(seed))
	ss.Res = cons.NewResolver(ss.Smp.Rand)
	ss.Res.Log = log
	switch typ {
	case AA:
		ss.model = &aaModel{ss}
	case CL:
		ss.model = &clModel{ss}
	case IAC:
		ss.model = &iacModel{ss}
	case CS:
		ss.model = &csModel{ss}
	case PA:
		ss.model = &paModel{ss}
	}
	ss.Sched = sched.New(ss.model, ss.Smp.Rand, log)
	ss.Defaults()
	ss.installVars()
	return ss
}

// Defaults sets the parameters of every model and the scheduler
// defaults of the session's model
func (ss *Session) Defaults() {
	ss.Wrange = cons.DefWrange
	ss.AA.Defaults()
	ss.CL.Defaults()
	ss.IAC.Defaults()
	ss.CS.Defaults()
	ss.PA.Defaults()
	sc := ss.Sched
	switch ss.Type {
	case AA:
		ss.Lrate = 0.125
		sc.ECrit = 0.001
		sc.NEpochs = 500
	case CL:
		ss.Lrate = 0.2
		sc.NEpochs = 20
	case IAC, CS:
		ss.Lrate = 0
		sc.NEpochs = 1
		sc.Learn = false
	case PA:
		ss.Lrate = 2
		sc.NEpochs = 500
		sc.ECrit = 0
	}
}

func (ss *Session) installVars() {
	vt := vars.NewTable()
	vt.Install("nunits", &ss.Units, "number of units")
	vt.Install("ninputs", &ss.Inputs, "number of input units")
	vt.Install("noutputs", &ss.Outputs, "number of output units")
	vt.Install("lrate", &ss.Lrate, "learning rate")
	vt.Install("wrange", &ss.Wrange, "range of random initial values")
	vt.Install("seed", &ss.Seed, "random seed")
	vt.Install("nepochs", &ss.Sched.NEpochs, "epochs per train command")
	vt.Install("ecrit", &ss.Sched.ECrit, "error criterion for stopping training")
	switch ss.Type {
	case AA:
		vt.Install("ncycles", &ss.AA.NCycles, "cycles per pattern")
		vt.Install("pflip", &ss.AA.PFlip, "probability of flipping each input")
		vt.Install("decay", &ss.AA.Act.Decay, "decay toward rest")
		vt.Install("estr", &ss.AA.Act.EStr, "strength of external input")
		vt.Install("istr", &ss.AA.Act.IStr, "strength of internal input")
	case IAC:
		vt.Install("ncycles", &ss.IAC.NCycles, "cycles per pattern")
		vt.Install("max", &ss.IAC.Act.Range.Max, "maximum activation")
		vt.Install("min", &ss.IAC.Act.Range.Min, "minimum activation")
		vt.Install("rest", &ss.IAC.Act.Rest, "resting activation")
		vt.Install("decay", &ss.IAC.Act.Decay, "decay toward rest")
		vt.Install("estr", &ss.IAC.Act.EStr, "strength of external input")
		vt.Install("alpha", &ss.IAC.Alpha, "strength of excitation")
		vt.Install("gamma", &ss.IAC.Gamma, "strength of inhibition")
	case CS:
		vt.Install("ncycles", &ss.CS.NCycles, "cycles per pattern")
		vt.Install("nupdates", &ss.CS.NUpdates, "unit updates per cycle")
		vt.Install("estr", &ss.CS.CS.EStr, "strength of external input")
		vt.Install("istr", &ss.CS.CS.IStr, "strength of internal input")
		vt.Install("kappa", &ss.CS.CS.Kappa, "harmony cost of sigma")
	case PA:
		vt.Install("noise", &ss.PA.Noise, "noise added to inputs and targets")
		vt.Install("temp", &ss.PA.Act.Temp, "temperature of the logistic")
	}
	ss.Vars = vt
}

// SetNamedScalar sets a named configuration scalar and updates the
// parameters derived from it, including those used by a load in progress.
func (ss *Session) SetNamedScalar(name, val string) error {
	if err := ss.Vars.SetNamedScalar(name, val); err != nil {
		return err
	}
	ss.Res.Lrate = ss.Lrate
	ss.Res.Wrange = ss.Wrange
	ss.Update()
	return nil
}

// NUnits returns the network size: Units if set, else Inputs + Outputs
func (ss *Session) NUnits() int {
	if ss.Units > 0 {
		return ss.Units
	}
	return ss.Inputs + ss.Outputs
}

// Update must be called after any changes to parameters
func (ss *Session) Update() {
	ss.AA.Act.Update()
	ss.IAC.Act.Update()
	ss.PA.Act.Update()
}

// Intr returns the interrupt flag observed by the scheduler
func (ss *Session) Intr() *sched.Interrupt {
	return ss.Sched.Intr
}

///////////////////////////////////////////////////////////////////////
//  Network and patterns

// LoadNetwork loads a network description. The random source is
// reseeded from Seed first, so loading the same description again
// reproduces the same draws. Sections that failed are reported in the
// returned error; the network is usable if any topology was built.
func (ss *Session) LoadNetwork(r io.Reader) error {
	desc, err := io.ReadAll(r)
	if err != nil {
		return errs.Wrap(errs.IoError, "read network", err)
	}
	ss.desc = desc
	return ss.buildFromDesc()
}

// OpenNetwork loads the description in the named file
func (ss *Session) OpenNetwork(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "read network", err)
	}
	defer fp.Close()
	return ss.LoadNetwork(fp)
}

func (ss *Session) buildFromDesc() error {
	ss.reseed()
	ss.Res.Lrate = ss.Lrate
	ss.Res.Wrange = ss.Wrange
	ld := netfile.NewLoader(ss, ss.Res, ss.Log)
	st, lerr := ld.Load(bytes.NewReader(ss.desc))
	if st == nil {
		if lerr == nil {
			lerr = errs.New(errs.LoadError, "network", "description has no network, biases or sigmas section")
		}
		return lerr
	}
	ss.Store = st
	ss.Log.Info("network loaded", "model", ss.Type.String(), "nunits", st.NUnits, "ncons", st.NCons(), "blocks", ld.Blocks())
	if ss.Type == CS && ss.CS.CS.Mode == policy.Harmony {
		ss.CS.CS.NInputs = ss.Inputs
		ss.Res.RescaleRows(st, ss.Inputs, st.NUnits, policy.HarmonyScale(st))
	}
	ss.allocState()
	if err := ss.checkSizes(); err != nil {
		return errors.Join(lerr, err)
	}
	return lerr
}

func (ss *Session) reseed() {
	ss.Smp.Rand.Seed(ss.Seed)
}

// checkSizes validates the unit ranges the model relies on
func (ss *Session) checkSizes() error {
	n := ss.Store.NUnits
	switch ss.Type {
	case CL, PA:
		if ss.Inputs <= 0 || ss.Outputs <= 0 || ss.Inputs+ss.Outputs > n {
			return errs.New(errs.TopologyError, "network", "%s needs ninputs and noutputs within nunits (%d + %d > %d)", ss.Type, ss.Inputs, ss.Outputs, n)
		}
	case CS:
		if ss.Inputs > n {
			return errs.New(errs.TopologyError, "network", "ninputs %d exceeds nunits %d", ss.Inputs, n)
		}
	}
	return nil
}

func (ss *Session) allocState() {
	n := ss.Store.NUnits
	if ss.State == nil || len(ss.State.Act) != n {
		ss.State = policy.NewState(n)
	} else {
		ss.State.Zero()
	}
	ss.Winner = -1
}

// HasNetwork returns true if a topology has been built
func (ss *Session) HasNetwork() bool {
	return ss.Store != nil
}

// PatSizes returns the input and target lengths of the session's patterns
func (ss *Session) PatSizes() (nin, nout int) {
	switch ss.Type {
	case CL:
		return ss.Inputs, 0
	case PA:
		return ss.Inputs, ss.Outputs
	}
	return ss.NUnits(), 0
}

// LoadPatterns reads a pattern set sized for the model
func (ss *Session) LoadPatterns(r io.Reader) error {
	nin, nout := ss.PatSizes()
	ps, err := pats.Read(r, nin, nout)
	if ps != nil && ps.NPats() > 0 {
		ss.Pats = ps
	}
	if err == nil {
		ss.Log.Info("patterns loaded", "npats", ps.NPats(), "ninputs", nin, "noutputs", nout)
	}
	return err
}

// OpenPatterns reads patterns from the named file
func (ss *Session) OpenPatterns(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "patterns", err)
	}
	defer fp.Close()
	return ss.LoadPatterns(fp)
}

///////////////////////////////////////////////////////////////////////
//  Running

// ready makes sure there is a network and patterns to run
func (ss *Session) ready() error {
	if ss.Store == nil {
		if err := ss.buildDefault(); err != nil {
			return err
		}
	}
	if ss.Pats.NPats() == 0 {
		return errs.New(errs.LoadError, "patterns", "no patterns loaded")
	}
	nin, nout := ss.PatSizes()
	if ss.Pats.NInputs() != nin || ss.Pats.NOutputs() != nout {
		return errs.New(errs.TopologyError, "patterns", "patterns are %dx%d, network needs %dx%d", ss.Pats.NInputs(), ss.Pats.NOutputs(), nin, nout)
	}
	return nil
}

// Train trains for the scheduler's NEpochs in the given order
func (ss *Session) Train(order sched.Order) error {
	if err := ss.ready(); err != nil {
		return err
	}
	return ss.Sched.Train(order)
}

// TestAll presents every pattern once without learning
func (ss *Session) TestAll() error {
	if err := ss.ready(); err != nil {
		return err
	}
	return ss.Sched.TestAll()
}

// Test presents the named (or numbered) pattern once without learning
func (ss *Session) Test(name string) (float32, error) {
	if err := ss.ready(); err != nil {
		return 0, err
	}
	pat := ss.Pats.Index(name)
	if pat < 0 {
		return 0, errs.New(errs.NameNotFound, "test", "no pattern %q", name)
	}
	return ss.Sched.Test(pat)
}

// ChangeLrate sets the learning rate of every trainable cell
func (ss *Session) ChangeLrate(lrate float32) {
	ss.Lrate = lrate
	if ss.Store != nil {
		ss.Store.ChangeLrate(lrate)
	}
}
