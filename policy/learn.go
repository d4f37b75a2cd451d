// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/dagfinndybvig/renewedPDP/topo"
)

// Toucher is told about every cell a learning rule writes, so linked
// groups can be brought back in sync after the step.
type Toucher interface {
	Touch(lc topo.Loc)
}

// LearnParams are the learning rule parameters
type LearnParams struct {
	Rule     LearnRule `desc:"weight update rule"`
	SelfConn bool      `desc:"the self-connection is updated and used like any other"`
	Bias     bool      `desc:"bias cells learn too"`
}

func (lp *LearnParams) Defaults() {
	lp.Rule = Hebb
	lp.SelfConn = false
	lp.Bias = true
}

// HebbRow adds lrate * outI * out[j] to every weight of ri.
// Each cell uses its own learning rate, so frozen cells never change.
func (lp *LearnParams) HebbRow(st *topo.Store, tc Toucher, ri int, outI float32, out []float32) {
	lp.row(st, tc, ri, outI, out)
}

// DeltaRow adds lrate * errI * out[j] to every weight of ri
func (lp *LearnParams) DeltaRow(st *topo.Store, tc Toucher, ri int, errI float32, out []float32) {
	lp.row(st, tc, ri, errI, out)
}

func (lp *LearnParams) row(st *topo.Store, tc Toucher, ri int, fac float32, out []float32) {
	if fac == 0 {
		return
	}
	first := st.RConSt[ri]
	wts := st.Wts[ri]
	lrs := st.Lrates[ri]
	for k := range wts {
		lr := lrs[k]
		if lr == 0 {
			continue
		}
		si := first + k
		if si == ri && !lp.SelfConn {
			continue
		}
		dw := lr * fac * out[si]
		if dw == 0 {
			continue
		}
		wts[k] += dw
		if tc != nil {
			tc.Touch(topo.WtLoc(ri, k))
		}
	}
}

// BiasLearn adds the bias lrate * fac to ri's bias
func (lp *LearnParams) BiasLearn(st *topo.Store, tc Toucher, ri int, fac float32) {
	if !lp.Bias {
		return
	}
	lr := st.BLrates[ri]
	if lr == 0 || fac == 0 {
		return
	}
	st.Bias[ri] += lr * fac
	if tc != nil {
		tc.Touch(topo.BiasLoc(ri))
	}
}

// CompetitiveRow moves the winner's weights toward the normalized input:
// w += lrate * (act[j] / nactive - w). Nothing changes when no input is
// active.
func (lp *LearnParams) CompetitiveRow(st *topo.Store, tc Toucher, win int, act []float32) {
	if win < 0 {
		return
	}
	first := st.RConSt[win]
	nactive := float32(0)
	for k := range st.Wts[win] {
		if act[first+k] > 0 {
			nactive++
		}
	}
	if nactive == 0 {
		return
	}
	wts := st.Wts[win]
	lrs := st.Lrates[win]
	for k := range wts {
		lr := lrs[k]
		if lr == 0 {
			continue
		}
		wts[k] += lr * (act[first+k]/nactive - wts[k])
		if tc != nil {
			tc.Touch(topo.WtLoc(win, k))
		}
	}
}
