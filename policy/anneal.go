// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"fmt"
	"strings"

	"github.com/dagfinndybvig/renewedPDP/errs"
)

// Milestone is one point of an annealing schedule
type Milestone struct {
	Time int     `desc:"cycle number at which Temp is reached"`
	Temp float32 `desc:"temperature at Time"`
}

// Schedule is a piecewise-linear temperature schedule over cycle numbers.
// Before the first milestone the first temperature holds, after the last
// milestone the last temperature holds.
type Schedule struct {
	Milestones []Milestone `desc:"milestones in strictly increasing time order"`
}

// Reset sets the schedule to one milestone at time 0
func (sc *Schedule) Reset(temp float32) {
	sc.Milestones = []Milestone{{Time: 0, Temp: temp}}
}

// Add appends a milestone. Times must strictly increase and temperatures
// must not be negative.
func (sc *Schedule) Add(time int, temp float32) error {
	if temp < 0 {
		return errs.New(errs.LoadError, "annealing", "negative temperature %g at time %d", temp, time)
	}
	if n := len(sc.Milestones); n > 0 && time <= sc.Milestones[n-1].Time {
		return errs.New(errs.LoadError, "annealing", "time %d does not follow %d", time, sc.Milestones[n-1].Time)
	}
	sc.Milestones = append(sc.Milestones, Milestone{Time: time, Temp: temp})
	return nil
}

// Temp returns the temperature at cycle t, 0 for an empty schedule
func (sc *Schedule) Temp(t int) float32 {
	ms := sc.Milestones
	n := len(ms)
	if n == 0 {
		return 0
	}
	if t <= ms[0].Time {
		return ms[0].Temp
	}
	if t >= ms[n-1].Time {
		return ms[n-1].Temp
	}
	i := 0
	for i+1 < n && ms[i+1].Time <= t {
		i++
	}
	a, b := ms[i], ms[i+1]
	tmp := a.Temp + (b.Temp-a.Temp)*float32(t-a.Time)/float32(b.Time-a.Time)
	if tmp < 0 {
		tmp = 0
	}
	return tmp
}

func (sc *Schedule) String() string {
	var b strings.Builder
	for i, m := range sc.Milestones {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d:%g", m.Time, m.Temp)
	}
	return b.String()
}
