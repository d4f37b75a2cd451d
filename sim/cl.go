// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/dagfinndybvig/renewedPDP/sched"
)

// clModel is competitive learning: units [0, Inputs) take the pattern,
// the output units [Inputs, Inputs+Outputs) compete and the winner moves
// its weights toward the normalized input.
type clModel struct {
	ss *Session
}

func (m *clModel) NPatterns() int { return m.ss.Pats.NPats() }

func (m *clModel) Trial(sc *sched.Scheduler, pat int, learn bool) (float32, error) {
	ss := m.ss
	st := ss.Store
	us := ss.State
	if sc.CycleStart() {
		return 0, sched.ErrBreak
	}
	in := ss.Pats.In(pat)
	copy(us.Act, in)
	copy(us.Ext, in)
	ss.Winner = policy.Compete(st, us, ss.Inputs, ss.Inputs+ss.Outputs)
	if sc.CycleEnd() {
		return 0, sched.ErrBreak
	}
	if sc.Settled() {
		return 0, sched.ErrBreak
	}
	if learn {
		ss.CL.Learn.CompetitiveRow(st, ss.Res, ss.Winner, us.Act)
		ss.Res.Sync(st)
	}
	return 0, nil
}
