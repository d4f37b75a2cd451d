// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/dagfinndybvig/renewedPDP/pats"
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/dagfinndybvig/renewedPDP/sched"
)

// aaModel is the auto-associator: every unit receives the pattern as
// external input, settles synchronously for NCycles, and learns its own
// input (Hebb) or the error of its internal input (Delta).
type aaModel struct {
	ss *Session
}

func (m *aaModel) NPatterns() int { return m.ss.Pats.NPats() }

func (m *aaModel) Trial(sc *sched.Scheduler, pat int, learn bool) (float32, error) {
	ss := m.ss
	p := &ss.AA
	st := ss.Store
	us := ss.State
	pats.Flip(us.Ext, ss.Pats.In(pat), p.PFlip, ss.Smp)
	ss.resetActs(0)
	var warn error
	for c := 0; c < p.NCycles; c++ {
		if sc.CycleStart() {
			return 0, sched.ErrBreak
		}
		for i := 0; i < st.NUnits; i++ {
			us.IntIn[i] = policy.IntInput(st, us.Act, i, p.Learn.SelfConn)
			us.Net[i] = p.Act.Net(us.IntIn[i], us.Ext[i])
		}
		for i := 0; i < st.NUnits; i++ {
			act, err := p.Act.ActFmNet(us.Act[i], us.Net[i])
			us.Act[i] = act
			if err != nil && warn == nil {
				warn = err
			}
		}
		if warn != nil {
			ss.Log.Warn("runaway activation", "pattern", pat, "cycle", c)
			break
		}
		if sc.CycleEnd() {
			return 0, sched.ErrBreak
		}
	}
	for i := range us.Err {
		us.Err[i] = us.Ext[i] - us.IntIn[i]
	}
	ss.Stats = policy.Stats(us.Ext, us.Act)
	pss := policy.SSE(us.Ext, us.IntIn)
	ss.Stats.PSS = float64(pss)
	if warn != nil {
		return pss, warn
	}
	if sc.Settled() {
		return pss, sched.ErrBreak
	}
	if learn {
		m.learn()
	}
	return pss, nil
}

func (m *aaModel) learn() {
	ss := m.ss
	lp := &ss.AA.Learn
	st := ss.Store
	us := ss.State
	for ri := 0; ri < st.NUnits; ri++ {
		switch lp.Rule {
		case policy.Hebb:
			lp.HebbRow(st, ss.Res, ri, us.Ext[ri], us.Ext)
		case policy.Delta:
			lp.DeltaRow(st, ss.Res, ri, us.Err[ri], us.Act)
		}
	}
	ss.Res.Sync(st)
}
