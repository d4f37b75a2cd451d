// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/dagfinndybvig/renewedPDP/sched"
)

// iacModel is interactive activation and competition: units start at
// rest and settle synchronously, excited by positive weights and
// inhibited by negative weights from active (positive) senders.
// It does not learn.
type iacModel struct {
	ss *Session
}

func (m *iacModel) NPatterns() int { return m.ss.Pats.NPats() }

func (m *iacModel) Trial(sc *sched.Scheduler, pat int, learn bool) (float32, error) {
	ss := m.ss
	copy(ss.State.Ext, ss.Pats.In(pat))
	ss.resetActs(ss.IAC.Act.Rest)
	for c := 0; c < ss.IAC.NCycles; c++ {
		if sc.CycleStart() {
			return 0, sched.ErrBreak
		}
		m.Cycle()
		if sc.CycleEnd() {
			return 0, sched.ErrBreak
		}
	}
	if sc.Settled() {
		return 0, sched.ErrBreak
	}
	return 0, nil
}

// Cycle computes the net input of every unit, then updates every unit
func (m *iacModel) Cycle() {
	ss := m.ss
	ip := &ss.IAC
	st := ss.Store
	us := ss.State
	// IntIn holds excitation and Err inhibition for the duration of a cycle
	ex, inh := us.IntIn, us.Err
	for i := range ex {
		ex[i], inh[i] = 0, 0
	}
	for i := 0; i < st.NUnits; i++ {
		st.ForEachConnection(i, func(si, k int, wt float32) {
			a := us.Act[si]
			if a <= 0 {
				return
			}
			switch {
			case wt > 0:
				ex[i] += a * wt
			case wt < 0:
				inh[i] += a * wt
			}
		})
	}
	for i := 0; i < st.NUnits; i++ {
		ex[i] *= ip.Alpha
		inh[i] *= ip.Gamma
		ext := us.Ext[i]
		if ip.GB {
			if ext > 0 {
				ex[i] += ip.Act.EStr * ext
			} else if ext < 0 {
				inh[i] += ip.Act.EStr * ext
			}
		} else {
			us.Net[i] = ex[i] + inh[i] + ip.Act.EStr*ext
		}
	}
	for i := 0; i < st.NUnits; i++ {
		if ip.GB {
			us.Act[i] = ip.Act.ActFmExInh(us.Act[i], ex[i], inh[i])
		} else {
			us.Act[i], _ = ip.Act.ActFmNet(us.Act[i], us.Net[i])
		}
	}
}
