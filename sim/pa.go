// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/dagfinndybvig/renewedPDP/pats"
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/dagfinndybvig/renewedPDP/sched"
)

// paModel is the pattern associator: units [0, Inputs) take the input,
// the output units compute bias plus weighted input in one pass and
// learn toward the target.
type paModel struct {
	ss *Session
}

func (m *paModel) NPatterns() int { return m.ss.Pats.NPats() }

func (m *paModel) Trial(sc *sched.Scheduler, pat int, learn bool) (float32, error) {
	ss := m.ss
	pp := &ss.PA
	st := ss.Store
	us := ss.State
	nin, nout := ss.Inputs, ss.Outputs
	out := us.Act[nin : nin+nout]
	targ := us.Targ[nin : nin+nout]
	if sc.CycleStart() {
		return 0, sched.ErrBreak
	}
	if pp.Noise > 0 {
		pats.Noise(us.Act[:nin], ss.Pats.In(pat), pp.Noise, ss.Smp)
		pats.Noise(targ, ss.Pats.Targ(pat), pp.Noise, ss.Smp)
	} else {
		copy(us.Act[:nin], ss.Pats.In(pat))
		copy(targ, ss.Pats.Targ(pat))
	}
	copy(us.Ext[:nin], us.Act[:nin])
	for j := 0; j < nout; j++ {
		ri := nin + j
		net := st.Bias[ri]
		st.ForEachConnection(ri, func(si, k int, wt float32) {
			if si < nin {
				net += us.Act[si] * wt
			}
		})
		us.Net[ri] = net
		out[j] = pp.Output(net, ss.Smp)
		us.Err[ri] = targ[j] - out[j]
	}
	if sc.CycleEnd() {
		return 0, sched.ErrBreak
	}
	ss.Stats = policy.Stats(targ, out)
	pss := policy.SSE(targ, out)
	ss.Stats.PSS = float64(pss)
	if sc.Settled() {
		return pss, sched.ErrBreak
	}
	if learn {
		m.learn()
	}
	return pss, nil
}

func (m *paModel) learn() {
	ss := m.ss
	lp := &ss.PA.Learn
	st := ss.Store
	us := ss.State
	nin, nout := ss.Inputs, ss.Outputs
	for ri := nin; ri < nin+nout; ri++ {
		switch lp.Rule {
		case policy.Hebb:
			us.Act[ri] = us.Targ[ri]
			lp.HebbRow(st, ss.Res, ri, us.Act[ri], us.Act)
			lp.BiasLearn(st, ss.Res, ri, us.Act[ri])
		case policy.Delta:
			lp.DeltaRow(st, ss.Res, ri, us.Err[ri], us.Act)
			lp.BiasLearn(st, ss.Res, ri, us.Err[ri])
		}
	}
	ss.Res.Sync(st)
}
