// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package policy holds the per-unit update rules shared by the models:
activation functions, the logistic with its saturation clamps, annealing
schedules, stochastic and harmony sampling, winner-take-all competition,
the Hebbian / delta / competitive learning rules and the pattern
statistics.

A model selects one ActKind, one LearnRule and, for constraint
satisfaction, one SampleMode at configuration time. The functions here
operate on a topo.Store plus flat per-unit state slices.
*/
package policy

import (
	"github.com/goki/ki/kit"
)

// ActKind is the activation function used to turn net input into activation
type ActKind int

//go:generate stringer -type=ActKind

var KiT_ActKind = kit.Enums.AddEnum(ActKindN, kit.NotBitFlag, nil)

func (ev ActKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ActKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Bounded moves toward Range.Max for positive net input and toward
	// Range.Min for negative net input, decaying toward Rest, and is
	// clipped to Range.
	Bounded ActKind = iota

	// Linear is (1-Decay)*act + net, unbounded; beyond RunawayBound it is
	// a runaway.
	Linear

	// BSB is Linear clipped to Range (brain state in a box)
	BSB

	// Threshold is 1 for positive net input, else 0
	Threshold

	// Sigmoid is the logistic of net / Temp
	Sigmoid

	// Stochastic is a 0 / 1 Bernoulli sample of the logistic of net / Temp
	Stochastic

	ActKindN
)

// LearnRule is the weight update rule
type LearnRule int

//go:generate stringer -type=LearnRule

var KiT_LearnRule = kit.Enums.AddEnum(LearnRuleN, kit.NotBitFlag, nil)

func (ev LearnRule) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *LearnRule) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// NoLearn leaves all cells untouched
	NoLearn LearnRule = iota

	// Hebb adds lrate * out_i * out_j
	Hebb

	// Delta adds lrate * err_i * out_j
	Delta

	// Competitive moves the winner's weights toward the normalized input
	Competitive

	LearnRuleN
)

// SampleMode selects the constraint satisfaction update
type SampleMode int

//go:generate stringer -type=SampleMode

var KiT_SampleMode = kit.Enums.AddEnum(SampleModeN, kit.NotBitFlag, nil)

func (ev SampleMode) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *SampleMode) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Schema is the deterministic bounded update of the schema model
	Schema SampleMode = iota

	// Boltzmann samples each unit 0 / 1 from the logistic at the current temperature
	Boltzmann

	// Harmony runs a harmony network: feature units are +/-1, knowledge
	// units are 0 / 1 and pay a kappa * sigma activation cost.
	Harmony

	SampleModeN
)
