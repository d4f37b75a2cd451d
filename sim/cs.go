// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/dagfinndybvig/renewedPDP/sched"
)

// csModel is constraint satisfaction: each cycle updates NUpdates units
// chosen at random, at the annealing temperature of the cycle.
type csModel struct {
	ss *Session
}

func (m *csModel) NPatterns() int { return m.ss.Pats.NPats() }

func (m *csModel) Trial(sc *sched.Scheduler, pat int, learn bool) (float32, error) {
	ss := m.ss
	cp := &ss.CS
	st := ss.Store
	us := ss.State
	copy(us.Ext, ss.Pats.In(pat))
	ss.resetActs(0)
	if cp.CS.Clamp {
		for i, ext := range us.Ext {
			if ext == 1 {
				us.Act[i] = 1
			}
		}
	}
	for c := 1; c <= cp.NCycles; c++ {
		if sc.CycleStart() {
			return 0, sched.ErrBreak
		}
		var temp float32
		if cp.CS.Mode != policy.Schema {
			temp = cp.Anneal.Temp(c)
		}
		for u := 0; u < cp.NUpdates; u++ {
			if sc.UpdateStart() {
				return 0, sched.ErrBreak
			}
			cp.CS.Update(st, us, ss.Smp.Intn(st.NUnits), temp, ss.Smp)
			if sc.UpdateEnd() {
				return 0, sched.ErrBreak
			}
		}
		ss.Goodness = cp.CS.Goodness(st, us)
		if sc.CycleEnd() {
			return 0, sched.ErrBreak
		}
	}
	ss.Goodness = cp.CS.Goodness(st, us)
	ss.Log.Debug("settled", "pattern", pat, "goodness", ss.Goodness)
	if sc.Settled() {
		return 0, sched.ErrBreak
	}
	return 0, nil
}
