// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/chewxy/math32"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/topo"
	"github.com/emer/etable/minmax"
)

///////////////////////////////////////////////////////////////////////
//  act.go contains the activation params and functions

// RunawayBound is the activation magnitude beyond which an unclipped
// update is reported as a runaway
const RunawayBound = 10

// ActParams are the activation parameters for one model.
// Defaults are those of the auto-associator.
type ActParams struct {
	Kind  ActKind    `desc:"activation function"`
	Range minmax.F32 `view:"inline" desc:"activation range for Bounded and BSB"`
	Decay float32    `def:"0.15" min:"0" max:"1" desc:"decay toward Rest on every update"`
	Rest  float32    `def:"0" desc:"resting activation"`
	IStr  float32    `def:"0.15" desc:"strength of internal input in the net input"`
	EStr  float32    `def:"0.15" desc:"strength of external input in the net input"`
	Temp  float32    `def:"1" desc:"temperature for Sigmoid and Stochastic"`

	Omd float32 `view:"-" json:"-" desc:"1 - Decay"`
	Dtr float32 `view:"-" json:"-" desc:"Decay * Rest"`
}

func (ap *ActParams) Defaults() {
	ap.Kind = Bounded
	ap.Range.Set(-1, 1)
	ap.Decay = 0.15
	ap.Rest = 0
	ap.IStr = 0.15
	ap.EStr = 0.15
	ap.Temp = 1
	ap.Update()
}

// Update must be called after any changes to parameters
func (ap *ActParams) Update() {
	ap.Omd = 1 - ap.Decay
	ap.Dtr = ap.Decay * ap.Rest
}

// Net combines internal and external input into the net input
func (ap *ActParams) Net(intin, ext float32) float32 {
	return ap.IStr*intin + ap.EStr*ext
}

// IntInput returns the weighted sum of act over ri's sender window.
// The self-connection is skipped unless selfConn.
func IntInput(st *topo.Store, act []float32, ri int, selfConn bool) float32 {
	first := st.RConSt[ri]
	sum := float32(0)
	for k, wt := range st.Wts[ri] {
		si := first + k
		if si == ri && !selfConn {
			continue
		}
		sum += act[si] * wt
	}
	return sum
}

// ActFmNet returns the next activation of a unit with activation act and
// net input net. Stochastic returns the firing probability, which the
// caller samples. A Linear update that leaves [-RunawayBound,
// RunawayBound] or is not finite returns a RuntimeNumericWarning along
// with the value.
func (ap *ActParams) ActFmNet(act, net float32) (float32, error) {
	switch ap.Kind {
	case Bounded:
		var nw float32
		if net > 0 {
			nw = net*(ap.Range.Max-act) + ap.Omd*act + ap.Dtr
		} else {
			nw = net*(act-ap.Range.Min) + ap.Omd*act + ap.Dtr
		}
		return ap.Range.ClipVal(nw), nil
	case Linear:
		nw := ap.Omd*act + net
		if math32.IsNaN(nw) || math32.IsInf(nw, 0) || math32.Abs(nw) > RunawayBound {
			return nw, errs.New(errs.RuntimeNumericWarning, "activation", "activation runaway: %g", nw)
		}
		return nw, nil
	case BSB:
		return ap.Range.ClipVal(ap.Omd*act + net), nil
	case Threshold:
		if net > 0 {
			return 1, nil
		}
		return 0, nil
	case Sigmoid, Stochastic:
		return Logistic(net, ap.Temp), nil
	}
	return act, nil
}

// ActFmExInh is the Bounded update with separate excitatory and
// inhibitory drives: ex pushes toward Range.Max, inh (<= 0) toward
// Range.Min.
func (ap *ActParams) ActFmExInh(act, ex, inh float32) float32 {
	nw := ex*(ap.Range.Max-act) + inh*(act-ap.Range.Min) + ap.Omd*act + ap.Dtr
	return ap.Range.ClipVal(nw)
}
