// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

// Controller is the caller side of a run: it is refreshed at checkpoints
// and asked for a Decision whenever the run pauses.
type Controller interface {
	// Refresh is called at every checkpoint at or above the stepper's grain
	Refresh(grain StepGrain)

	// Ask returns the continuation decision. cause is the recoverable
	// error that paused the run, nil for an interrupt or a single step.
	Ask(grain StepGrain, cause error) Decision

	// Push runs a nested session. Ask is consulted again when it returns.
	Push()
}

// Stepper gates the checkpoints of a run. The scheduler calls StepPoint
// at every grain; Refresh goes to the controller for every grain at or
// above Grain, and in single-step mode the run pauses every
// StepsPerClick checkpoints of exactly Grain.
type Stepper struct {
	Grain          StepGrain  `desc:"granularity of refresh and of single steps"`
	Single         bool       `desc:"pause and ask the controller at Grain"`
	StepsPerClick  int        `def:"1" desc:"number of Grain checkpoints to pass before pausing"`
	StepsRemaining int        `view:"-" desc:"checkpoints left before the next pause"`
	Ctrl           Controller `view:"-" desc:"controller, nil runs without refresh or pauses"`
}

// Init resets the step count
func (sp *Stepper) Init() {
	if sp.StepsPerClick <= 0 {
		sp.StepsPerClick = 1
	}
	sp.StepsRemaining = sp.StepsPerClick
}

// StartStepping enters single-step mode at grain, pausing every nSteps
func (sp *Stepper) StartStepping(grain StepGrain, nSteps int) {
	sp.Grain = grain
	sp.Single = true
	sp.StepsPerClick = nSteps
	sp.Init()
}

// StepPoint is a checkpoint of grain. Returns stop = true if the
// controller decided to Break.
func (sp *Stepper) StepPoint(grain StepGrain) (stop bool) {
	if sp.Ctrl == nil {
		return false
	}
	if grain >= sp.Grain {
		sp.Ctrl.Refresh(grain)
	}
	if !sp.Single || grain != sp.Grain { // exact equality only
		return false
	}
	sp.StepsRemaining--
	if sp.StepsRemaining > 0 {
		return false
	}
	sp.StepsRemaining = sp.StepsPerClick
	return sp.Pause(grain, nil)
}

// Pause asks the controller until it decides to Continue or Break,
// running nested sessions on Push. Returns true for Break. Without a
// controller a pause with a cause breaks, one without continues.
func (sp *Stepper) Pause(grain StepGrain, cause error) (stop bool) {
	if sp.Ctrl == nil {
		return cause != nil
	}
	for {
		switch sp.Ctrl.Ask(grain, cause) {
		case Break:
			return true
		case Push:
			sp.Ctrl.Push()
		default:
			return false
		}
	}
}
