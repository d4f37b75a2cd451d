// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws the random numbers used during processing.
// It is owned by one session and seeded from its configuration.
type Sampler struct {
	Rand *rand.Rand
}

// NewSampler returns a sampler over src
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{Rand: rand.New(src)}
}

// Bernoulli returns 1 with probability p, else 0
func (sm *Sampler) Bernoulli(p float32) float32 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return 1
	}
	return float32(distuv.Bernoulli{P: float64(p), Src: sm.Rand}.Rand())
}

// Float returns a uniform value in [0, 1)
func (sm *Sampler) Float() float32 {
	return float32(sm.Rand.Float64())
}

// Intn returns a uniform int in [0, n)
func (sm *Sampler) Intn(n int) int {
	return sm.Rand.Intn(n)
}
