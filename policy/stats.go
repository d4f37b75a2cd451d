// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// PatStats are the per-pattern statistics of an output vector against
// its target
type PatStats struct {
	PSS  float64 `desc:"pattern sum of squared errors"`
	NDP  float64 `desc:"normalized dot product: dot(t, o) / n"`
	VCor float64 `desc:"vector correlation: dot(t, o) / sqrt(|t|^2 |o|^2), 0 if either is 0"`
	NVL  float64 `desc:"normalized vector length of the output: sqrt(sum o^2 / n)"`
}

// Stats computes the statistics of out against targ, which must have the
// same length
func Stats(targ, out []float32) PatStats {
	var ps PatStats
	n := len(out)
	if n == 0 {
		return ps
	}
	t := make([]float64, n)
	o := make([]float64, n)
	for i := range out {
		t[i] = float64(targ[i])
		o[i] = float64(out[i])
	}
	d := floats.Distance(t, o, 2)
	ps.PSS = d * d
	dp := floats.Dot(t, o)
	l1 := floats.Dot(t, t)
	l2 := floats.Dot(o, o)
	ps.NDP = dp / float64(n)
	ps.NVL = math.Sqrt(l2 / float64(n))
	if l1 != 0 && l2 != 0 {
		ps.VCor = dp / math.Sqrt(l1*l2)
	}
	return ps
}

// SSE returns the sum of squared differences between targ and out
func SSE(targ, out []float32) float32 {
	sum := float32(0)
	for i := range out {
		d := targ[i] - out[i]
		sum += d * d
	}
	return sum
}
