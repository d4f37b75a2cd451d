// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"github.com/emer/emergent/env"
	"github.com/emer/emergent/etime"
)

// Time holds the counters of a session's simulated time
type Time struct {
	Epoch    env.Ctr     `view:"inline" desc:"epochs trained, cumulative over Train calls until Reset"`
	Pattern  env.Ctr     `view:"inline" desc:"position of the current pattern within the epoch"`
	PatNo    int         `desc:"index of the current pattern in the pattern set"`
	Cycle    env.Ctr     `view:"inline" desc:"settling cycle within the current pattern"`
	CycleTot int         `desc:"total cycles since Reset"`
	Mode     etime.Modes `desc:"current evaluation mode, Train or Test"`
}

// Reset resets all counters back to zero
func (tm *Time) Reset() {
	tm.Epoch.Set(0)
	tm.Pattern.Set(0)
	tm.Cycle.Set(0)
	tm.PatNo = 0
	tm.CycleTot = 0
}

// PatternStart starts pattern presentation number pos, of pattern patno
func (tm *Time) PatternStart(pos, patno int) {
	tm.Pattern.Set(pos)
	tm.PatNo = patno
	tm.Cycle.Set(0)
}

// CycleInc increments at the cycle level
func (tm *Time) CycleInc() {
	tm.Cycle.Incr()
	tm.CycleTot++
}
