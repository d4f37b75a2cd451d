// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/dagfinndybvig/renewedPDP/topo"
)

// Winner returns the index in [from, to) with the strictly greatest
// net input. Ties go to the first. Returns -1 for an empty range.
func Winner(net []float32, from, to int) int {
	win := -1
	for i := from; i < to; i++ {
		if win < 0 || net[i] > net[win] {
			win = i
		}
	}
	return win
}

// CompetitiveNet sets the net input of each pool unit in [from, to) to
// the sum of its weights from active senders (activation > 0).
func CompetitiveNet(st *topo.Store, ss *State, from, to int) {
	for j := from; j < to; j++ {
		net := float32(0)
		st.ForEachConnection(j, func(si, k int, wt float32) {
			if ss.Act[si] > 0 {
				net += wt
			}
		})
		ss.Net[j] = net
	}
}

// Compete runs winner-take-all over [from, to): the winner's activation
// is 1 and every other pool unit's is 0. Returns the winner.
func Compete(st *topo.Store, ss *State, from, to int) int {
	CompetitiveNet(st, ss, from, to)
	win := Winner(ss.Net, from, to)
	for j := from; j < to; j++ {
		ss.Act[j] = 0
	}
	if win >= 0 {
		ss.Act[win] = 1
	}
	return win
}
