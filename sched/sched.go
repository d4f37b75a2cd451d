// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sched is the simulation scheduler: the nested epoch, pattern and
cycle loops shared by every model, with pattern shuffling, convergence
on the epoch sum of squared error, the cooperative interrupt flag and
the step-grain checkpoints at which a Controller is refreshed or asked
whether to continue.

Everything runs on the caller's goroutine. The interrupt flag is the only
state touched asynchronously, and it is only read at the start of a
pattern and the start of a cycle.
*/
package sched

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/emer/emergent/etime"
	"github.com/emer/emergent/timer"
	"github.com/emer/etable/etable"
	"golang.org/x/exp/rand"
)

// ErrBreak is returned by a Model's Trial when a checkpoint inside it
// decided to Break. The scheduler ends the run without reporting an error.
var ErrBreak = errors.New("run broken off at a checkpoint")

// Model is one simulator driven by the scheduler
type Model interface {
	// NPatterns returns the number of patterns in the current set
	NPatterns() int

	// Trial presents pattern pat: distorts it if configured, settles, and
	// learns if learn. It calls the scheduler's CycleStart, UpdateStart,
	// UpdateEnd, CycleEnd and Settled checkpoints and returns ErrBreak if any of
	// them says to stop. Returns the pattern sum of squared error.
	Trial(sc *Scheduler, pat int, learn bool) (float32, error)
}

// Scheduler runs a Model through epochs of patterns
type Scheduler struct {
	NEpochs  int           `def:"500" desc:"epochs per Train call"`
	ECrit    float32       `def:"0" desc:"training stops once the epoch error is below this"`
	Order    Order         `desc:"pattern order for Train"`
	Learn    bool          `def:"true" desc:"learning is enabled during Train"`
	Step     Stepper       `view:"inline" desc:"refresh and single-step gating"`
	Intr     *Interrupt    `view:"-" desc:"interrupt flag, may be shared with a signal handler"`
	Time     Time          `view:"inline" desc:"time counters"`
	Timer    timer.Time    `view:"-" desc:"wall clock time of the current epoch"`
	State    State         `inactive:"+" desc:"current state"`
	TSS      float32       `inactive:"+" desc:"sum of squared error over the last epoch"`
	NPats    int           `inactive:"+" desc:"number of patterns presented in the last epoch"`
	EpochLog *etable.Table `view:"no-inline" desc:"one row per trained epoch"`
	Model    Model         `view:"-" desc:"model being run"`
	Log      *slog.Logger  `view:"-" desc:"logger for epoch summaries and warnings"`

	rnd  *rand.Rand
	perm []int
}

// New returns a scheduler for model, shuffling with rnd
func New(model Model, rnd *rand.Rand, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sc := &Scheduler{Model: model, rnd: rnd, Log: log, Intr: &Interrupt{}}
	sc.Defaults()
	sc.EpochLog = NewEpochLog()
	return sc
}

func (sc *Scheduler) Defaults() {
	sc.NEpochs = 500
	sc.ECrit = 0
	sc.Order = Sequential
	sc.Learn = true
	sc.Step.Grain = StepRun
	sc.Step.StepsPerClick = 1
	sc.Step.Init()
}

// Reset zeroes the time counters and the epoch log
func (sc *Scheduler) Reset() {
	sc.Time.Reset()
	sc.TSS = 0
	sc.NPats = 0
	sc.State = Idle
	sc.EpochLog.SetNumRows(0)
}

// Train runs up to NEpochs epochs in the given order, stopping early when
// the epoch error is below ECrit, or when the controller breaks.
// A recoverable warning the controller broke on is returned.
func (sc *Scheduler) Train(order Order) error {
	sc.Order = order
	sc.Time.Mode = etime.Train
	sc.Step.Init()
	sc.State = InEpoch
	for ep := 0; ep < sc.NEpochs; ep++ {
		sc.Time.Epoch.Incr()
		sc.Timer.ResetStart()
		stop, err := sc.epoch(order, sc.Learn)
		sc.Timer.Stop()
		if stop {
			sc.State = Interrupted
			return err
		}
		sc.logEpoch()
		if sc.TSS < sc.ECrit {
			sc.State = Converged
			sc.Log.Info("converged", "epoch", sc.Time.Epoch.Cur, "tss", sc.TSS)
			sc.Step.StepPoint(StepRun)
			return nil
		}
		if sc.Step.StepPoint(StepEpoch) {
			sc.State = Interrupted
			return nil
		}
	}
	sc.State = Idle
	sc.Step.StepPoint(StepRun)
	return nil
}

// TestAll presents every pattern once in order without learning
func (sc *Scheduler) TestAll() error {
	sc.Time.Mode = etime.Test
	sc.Step.Init()
	sc.State = InEpoch
	stop, err := sc.epoch(Sequential, false)
	if stop {
		sc.State = Interrupted
		return err
	}
	sc.State = Idle
	sc.Log.Info("test all", "tss", sc.TSS, "npats", sc.NPats)
	sc.Step.StepPoint(StepRun)
	return nil
}

// Test presents pattern pat once without learning and returns its error
func (sc *Scheduler) Test(pat int) (float32, error) {
	if pat < 0 || pat >= sc.Model.NPatterns() {
		return 0, errs.New(errs.NameNotFound, "test", "no pattern %d, have %d", pat, sc.Model.NPatterns())
	}
	sc.Time.Mode = etime.Test
	sc.Step.Init()
	sc.Time.PatternStart(0, pat)
	sc.State = InPattern
	pss, err := sc.Model.Trial(sc, pat, false)
	sc.State = Idle
	if errors.Is(err, ErrBreak) {
		sc.State = Interrupted
		return pss, nil
	}
	return pss, err
}

// epoch presents every pattern once. stop is true if the run is to end.
func (sc *Scheduler) epoch(order Order, learn bool) (stop bool, err error) {
	npat := sc.Model.NPatterns()
	sc.permute(npat, order)
	sc.TSS = 0
	sc.NPats = 0
	for i := 0; i < npat; i++ {
		sc.State = InEpoch
		if sc.checkInterrupt(StepPattern) {
			return true, nil
		}
		pat := sc.perm[i]
		sc.Time.PatternStart(i, pat)
		sc.State = InPattern
		pss, err := sc.Model.Trial(sc, pat, learn)
		switch {
		case errors.Is(err, ErrBreak):
			return true, nil
		case errs.IsRecoverable(err):
			sc.Log.Warn("pattern", "epoch", sc.Time.Epoch.Cur, "pattern", pat, "err", err)
			if sc.Step.Pause(StepPattern, err) {
				return true, err
			}
		case err != nil:
			return true, err
		}
		sc.TSS += pss
		sc.NPats++
		if sc.Step.StepPoint(StepPattern) {
			return true, nil
		}
	}
	return false, nil
}

// permute sets perm to the presentation order of n patterns
func (sc *Scheduler) permute(n int, order Order) {
	if cap(sc.perm) < n {
		sc.perm = make([]int, n)
	}
	sc.perm = sc.perm[:n]
	for i := range sc.perm {
		sc.perm[i] = i
	}
	if order != Shuffled || sc.rnd == nil {
		return
	}
	for i := 0; i < n; i++ {
		j := i + sc.rnd.Intn(n-i)
		sc.perm[i], sc.perm[j] = sc.perm[j], sc.perm[i]
	}
}

// checkInterrupt pauses the run if the interrupt flag is raised.
// Returns true if the controller decided to Break.
func (sc *Scheduler) checkInterrupt(grain StepGrain) bool {
	if sc.Intr == nil || !sc.Intr.IsInterrupted() {
		return false
	}
	sc.Intr.ClearInterrupt()
	sc.Log.Info("interrupted", "grain", grain.String(), "epoch", sc.Time.Epoch.Cur, "pattern", sc.Time.PatNo)
	if sc.Step.Ctrl == nil {
		return true
	}
	return sc.Step.Pause(grain, nil)
}

///////////////////////////////////////////////////////////////////////
//  Checkpoints called by models from inside Trial

// CycleStart is the checkpoint at the start of each settling cycle
func (sc *Scheduler) CycleStart() (stop bool) {
	sc.State = InCycle
	return sc.checkInterrupt(StepCycle)
}

// UpdateStart is the checkpoint at the start of each micro-step of a
// stochastic update
func (sc *Scheduler) UpdateStart() (stop bool) {
	return sc.checkInterrupt(StepUpdate)
}

// UpdateEnd is the checkpoint after each unit update
func (sc *Scheduler) UpdateEnd() (stop bool) {
	return sc.Step.StepPoint(StepUpdate)
}

// CycleEnd is the checkpoint at the end of each settling cycle
func (sc *Scheduler) CycleEnd() (stop bool) {
	sc.Time.CycleInc()
	return sc.Step.StepPoint(StepCycle)
}

// Settled is the checkpoint after the cycles of a pattern, before learning
func (sc *Scheduler) Settled() (stop bool) {
	sc.State = InPattern
	return sc.Step.StepPoint(StepTrial)
}
