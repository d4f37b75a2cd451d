// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"github.com/goki/ki/kit"
)

// State is the scheduler state
type State int

//go:generate stringer -type=State

var KiT_State = kit.Enums.AddEnum(StateN, kit.NotBitFlag, nil)

func (ev State) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *State) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Idle is not running: before any run, or after one has returned
	Idle State = iota

	// InEpoch is between patterns of an epoch
	InEpoch

	// InPattern is presenting a pattern
	InPattern

	// InCycle is inside the settling cycles of a pattern
	InCycle

	// Converged is the end of a run whose epoch error fell below the criterion
	Converged

	// Interrupted is the end of a run that the controller broke off
	Interrupted

	StateN
)

// StepGrain is the granularity of a checkpoint, finest first
type StepGrain int

//go:generate stringer -type=StepGrain

var KiT_StepGrain = kit.Enums.AddEnum(StepGrainN, kit.NotBitFlag, nil)

func (ev StepGrain) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *StepGrain) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// StepUpdate is after every unit update
	StepUpdate StepGrain = iota

	// StepCycle is after every settling cycle
	StepCycle

	// StepTrial is after the cycles of one pattern
	StepTrial

	// StepPattern is after a pattern, including learning
	StepPattern

	// StepEpoch is after an epoch
	StepEpoch

	// StepRun is at the end of a run
	StepRun

	StepGrainN
)

// Order is the pattern presentation order within an epoch
type Order int

//go:generate stringer -type=Order

var KiT_Order = kit.Enums.AddEnum(OrderN, kit.NotBitFlag, nil)

func (ev Order) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Order) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	Sequential Order = iota
	Shuffled
	OrderN
)

// Decision is the controller's answer when a run pauses
type Decision int

//go:generate stringer -type=Decision

var KiT_Decision = kit.Enums.AddEnum(DecisionN, kit.NotBitFlag, nil)

func (ev Decision) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Decision) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Continue resumes the run
	Continue Decision = iota

	// Break ends the run, leaving the state as it is
	Break

	// Push runs a nested session, then asks again
	Push

	DecisionN
)
