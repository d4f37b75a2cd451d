// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/dagfinndybvig/renewedPDP/policy"
)

// AAParams are the auto-associator parameters
type AAParams struct {
	Act     policy.ActParams   `view:"inline" desc:"activation: Bounded, Linear or BSB"`
	Learn   policy.LearnParams `view:"inline" desc:"learning: Hebb on the external input, or Delta on the internal input error"`
	NCycles int                `def:"25" desc:"cycles per pattern"`
	PFlip   float32            `def:"0" desc:"probability of flipping the sign of each input value"`
}

func (ap *AAParams) Defaults() {
	ap.Act.Defaults()
	ap.Learn.Defaults()
	ap.Learn.Bias = false
	ap.NCycles = 25
	ap.PFlip = 0
}

// CLParams are the competitive learning parameters
type CLParams struct {
	Learn policy.LearnParams `view:"inline" desc:"learning, always Competitive"`
}

func (cp *CLParams) Defaults() {
	cp.Learn.Defaults()
	cp.Learn.Rule = policy.Competitive
	cp.Learn.Bias = false
}

// IACParams are the interactive activation and competition parameters
type IACParams struct {
	Act     policy.ActParams `view:"inline" desc:"activation, always Bounded"`
	Alpha   float32          `def:"0.1" desc:"strength of excitation"`
	Gamma   float32          `def:"0.1" desc:"strength of inhibition"`
	GB      bool             `desc:"Grossberg update: excitation and inhibition are applied separately"`
	NCycles int              `def:"10" desc:"cycles per pattern"`
}

func (ip *IACParams) Defaults() {
	ip.Act.Defaults()
	ip.Act.Kind = policy.Bounded
	ip.Act.Range.Set(-0.2, 1)
	ip.Act.Rest = -0.1
	ip.Act.Decay = 0.1
	ip.Act.EStr = 0.1
	ip.Act.IStr = 1
	ip.Act.Update()
	ip.Alpha = 0.1
	ip.Gamma = 0.1
	ip.GB = false
	ip.NCycles = 10
}

// CSParams are the constraint satisfaction parameters
type CSParams struct {
	CS       policy.CSParams `view:"inline" desc:"update mode and strengths"`
	Anneal   policy.Schedule `desc:"annealing schedule for Boltzmann and Harmony modes"`
	NCycles  int             `def:"10" desc:"cycles per pattern"`
	NUpdates int             `def:"100" desc:"random unit updates per cycle"`
}

func (cp *CSParams) Defaults() {
	cp.CS.Defaults()
	cp.Anneal.Reset(0)
	cp.NCycles = 10
	cp.NUpdates = 100
}

// PAParams are the pattern associator parameters
type PAParams struct {
	Act   policy.ActParams   `view:"inline" desc:"output function: Linear, Threshold, Sigmoid or Stochastic"`
	Learn policy.LearnParams `view:"inline" desc:"learning: Hebb (output := target) or Delta"`
	Noise float32            `def:"0" desc:"uniform noise added to inputs and targets"`
}

func (pp *PAParams) Defaults() {
	pp.Act.Defaults()
	pp.Act.Kind = policy.Stochastic
	pp.Act.Temp = 15
	pp.Learn.Defaults()
	pp.Learn.Rule = policy.Delta
	pp.Learn.SelfConn = true
	pp.Noise = 0
}

// Output returns the output of a unit with net input net
func (pp *PAParams) Output(net float32, smp *policy.Sampler) float32 {
	switch pp.Act.Kind {
	case policy.Linear:
		return net
	case policy.Stochastic:
		return smp.Bernoulli(policy.Logistic(net, pp.Act.Temp))
	}
	out, _ := pp.Act.ActFmNet(0, net)
	return out
}
