// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/dagfinndybvig/renewedPDP/topo"
)

///////////////////////////////////////////////////////////////////////
//  cs.go contains the constraint satisfaction unit updates

// State is the per-unit state the update rules work on.
// All slices have one entry per unit.
type State struct {
	Act   []float32 `desc:"activations"`
	Net   []float32 `desc:"net inputs"`
	IntIn []float32 `desc:"internal input, weighted sum over the sender window"`
	Ext   []float32 `desc:"external input, 0 = none"`
	Targ  []float32 `desc:"targets, for the supervised models"`
	Err   []float32 `desc:"errors"`
}

// NewState returns a zeroed state for n units
func NewState(n int) *State {
	return &State{
		Act:   make([]float32, n),
		Net:   make([]float32, n),
		IntIn: make([]float32, n),
		Ext:   make([]float32, n),
		Targ:  make([]float32, n),
		Err:   make([]float32, n),
	}
}

// Zero resets every state variable to 0
func (ss *State) Zero() {
	for _, s := range [][]float32{ss.Act, ss.Net, ss.IntIn, ss.Ext, ss.Targ, ss.Err} {
		for i := range s {
			s[i] = 0
		}
	}
}

// CSParams are the constraint satisfaction parameters
type CSParams struct {
	Mode    SampleMode `desc:"update mode"`
	IStr    float32    `def:"1" desc:"strength of internal input"`
	EStr    float32    `def:"1" desc:"strength of external input, unused when clamped"`
	Clamp   bool       `desc:"units with external input are clamped to it"`
	Kappa   float32    `desc:"harmony cost per unit of sigma for an active knowledge unit"`
	NInputs int        `desc:"harmony: units [0, NInputs) are feature units, the rest knowledge units"`
}

func (cp *CSParams) Defaults() {
	cp.Mode = Schema
	cp.IStr = 1
	cp.EStr = 1
	cp.Clamp = false
	cp.Kappa = 0
}

// Update updates unit i at temperature temp
func (cp *CSParams) Update(st *topo.Store, ss *State, i int, temp float32, smp *Sampler) {
	if cp.Mode == Harmony {
		cp.harmonyUpdate(st, ss, i, temp, smp)
		return
	}
	ext := ss.Ext[i]
	if cp.Clamp && ext != 0 {
		if ext > 0 {
			ss.Act[i] = 1
		} else {
			ss.Act[i] = 0
		}
		return
	}
	inti := IntInput(st, ss.Act, i, true) + st.Bias[i]
	ss.IntIn[i] = inti
	net := cp.IStr * inti
	if !cp.Clamp {
		net += cp.EStr * ext
	}
	ss.Net[i] = net
	if cp.Mode == Boltzmann {
		ss.Act[i] = smp.Bernoulli(Logistic(net, temp))
		return
	}
	act := ss.Act[i]
	if net > 0 {
		act += net * (1 - act)
		if act > 1 {
			act = 1
		}
	} else {
		act += net * act
		if act < 0 {
			act = 0
		}
	}
	ss.Act[i] = act
}

func (cp *CSParams) harmonyUpdate(st *topo.Store, ss *State, i int, temp float32, smp *Sampler) {
	if i < cp.NInputs {
		ext := ss.Ext[i]
		if ext != 0 {
			if ext > 0 {
				ss.Act[i] = 1
			} else {
				ss.Act[i] = -1
			}
			return
		}
		net := float32(0)
		for j := cp.NInputs; j < st.NUnits; j++ {
			if wt, ok := st.Wt(j, i); ok {
				net += ss.Act[j] * wt
			}
		}
		net *= 2
		ss.Net[i] = net
		ss.Act[i] = 2*smp.Bernoulli(Logistic(net, temp)) - 1
		return
	}
	net := float32(0)
	st.ForEachConnection(i, func(si, k int, wt float32) {
		if si < cp.NInputs {
			net += ss.Act[si] * wt
		}
	})
	ss.IntIn[i] = net
	net -= st.Sigma[i] * cp.Kappa
	ss.Net[i] = net
	ss.Act[i] = smp.Bernoulli(Logistic(net, temp))
}

// Goodness returns the goodness (harmony in Harmony mode) of the current state
func (cp *CSParams) Goodness(st *topo.Store, ss *State) float32 {
	act := ss.Act
	g := float32(0)
	if cp.Mode == Harmony {
		for i := cp.NInputs; i < st.NUnits; i++ {
			ai := act[i]
			st.ForEachConnection(i, func(si, k int, wt float32) {
				if si < cp.NInputs {
					g += wt * ai * act[si]
				}
			})
			if ai != 0 {
				g -= cp.Kappa * st.Sigma[i]
			}
		}
		return g
	}
	for i := 0; i < st.NUnits; i++ {
		ai := act[i]
		st.ForEachConnection(i, func(si, k int, wt float32) {
			if si > i {
				g += wt * ai * act[si]
			}
		})
		g += st.Bias[i] * ai
	}
	if !cp.Clamp {
		g *= cp.IStr
		for i := 0; i < st.NUnits; i++ {
			g += act[i] * ss.Ext[i] * cp.EStr
		}
	}
	return g
}

// HarmonyScale returns the row rescaling of a harmony network: every
// nonzero weight of knowledge unit j is multiplied by Sigma[j] divided by
// the number of nonzero weights of j.
func HarmonyScale(st *topo.Store) func(unit, ncons int, val float32) float32 {
	return func(unit, ncons int, val float32) float32 {
		return val * st.Sigma[unit] / float32(ncons)
	}
}
