// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"errors"
	"math"
	"testing"

	"github.com/dagfinndybvig/renewedPDP/cons"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/topo"
	"golang.org/x/exp/rand"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func dense(n int, w float32, lr float32) *topo.Store {
	st := topo.NewStore(n)
	for ri := 0; ri < n; ri++ {
		st.SetWindow(ri, 0, n)
		for k := 0; k < n; k++ {
			st.Wts[ri][k] = w
			st.Lrates[ri][k] = lr
		}
	}
	return st
}

type touches struct {
	n int
}

func (tc *touches) Touch(lc topo.Loc) { tc.n++ }

func TestLogistic(t *testing.T) {
	if v := Logistic(0, 1); abs(v-0.5) > difTol {
		t.Errorf("logistic(0): %g", v)
	}
	if v := Logistic(100, 1); v != LogisticMax {
		t.Errorf("upper clamp: %g", v)
	}
	if v := Logistic(-100, 1); v != LogisticMin {
		t.Errorf("lower clamp: %g", v)
	}
	if Logistic(0.1, 0) != 1 || Logistic(0, 0) != 0 || Logistic(-0.1, -1) != 0 {
		t.Errorf("zero temperature should be a step")
	}
	if v := Logistic(2, 2); abs(v-float32(1/(1+math.Exp(-1)))) > difTol {
		t.Errorf("logistic(2/2): %g", v)
	}
}

func TestBoundedStaysInRange(t *testing.T) {
	var ap ActParams
	ap.Defaults()
	nets := []float32{-50, -1, -0.3, 0, 0.3, 1, 50}
	for _, net := range nets {
		act := float32(0)
		for c := 0; c < 100; c++ {
			nw, err := ap.ActFmNet(act, net)
			if err != nil {
				t.Fatal(err)
			}
			act = nw
			if act < ap.Range.Min-difTol || act > ap.Range.Max+difTol {
				t.Fatalf("net %g cycle %d: activation %g out of range", net, c, act)
			}
		}
	}
}

func TestBoundedFormula(t *testing.T) {
	var ap ActParams
	ap.Defaults()
	// 0.85 * 0.5 + 0.2 * (1 - 0.5)
	if v, _ := ap.ActFmNet(0.5, 0.2); abs(v-0.525) > difTol {
		t.Errorf("positive net: %g", v)
	}
	// 0.85 * 0.5 - 0.2 * (0.5 + 1)
	if v, _ := ap.ActFmNet(0.5, -0.2); abs(v-0.125) > difTol {
		t.Errorf("negative net: %g", v)
	}
	ap.Range.Set(-0.2, 1)
	ap.Decay = 0.1
	ap.Rest = -0.1
	ap.Update()
	// at rest with no input, activation stays at rest
	if v, _ := ap.ActFmNet(-0.1, 0); abs(v+0.1) > difTol {
		t.Errorf("rest: %g", v)
	}
	if v := ap.ActFmExInh(-0.1, 0, 0); abs(v+0.1) > difTol {
		t.Errorf("rest ex/inh: %g", v)
	}
}

func TestLinearRunaway(t *testing.T) {
	var ap ActParams
	ap.Defaults()
	ap.Kind = Linear
	ap.Decay = 0
	ap.Update()
	act := float32(1)
	var err error
	for c := 0; c < 20 && err == nil; c++ {
		act, err = ap.ActFmNet(act, act)
	}
	if !errors.Is(err, errs.Runaway) {
		t.Fatalf("doubling activation should run away, got %v", err)
	}
	if !errs.IsRecoverable(err) {
		t.Errorf("runaway should be recoverable")
	}
	ap.Kind = BSB
	if v, _ := ap.ActFmNet(0.9, 0.9); v != 1 {
		t.Errorf("bsb clip: %g", v)
	}
}

func TestAnneal(t *testing.T) {
	var sc Schedule
	sc.Reset(10)
	if err := sc.Add(10, 2); err != nil {
		t.Fatal(err)
	}
	if err := sc.Add(20, 1); err != nil {
		t.Fatal(err)
	}
	if err := sc.Add(20, 0); !errors.Is(err, errs.Load) {
		t.Errorf("non-increasing time should fail: %v", err)
	}
	if err := sc.Add(30, -1); !errors.Is(err, errs.Load) {
		t.Errorf("negative temperature should fail: %v", err)
	}
	cases := []struct {
		t    int
		temp float32
	}{{-5, 10}, {0, 10}, {5, 6}, {10, 2}, {15, 1.5}, {20, 1}, {1000, 1}}
	for _, c := range cases {
		if v := sc.Temp(c.t); abs(v-c.temp) > difTol {
			t.Errorf("temp(%d) = %g, want %g", c.t, v, c.temp)
		}
	}
	var empty Schedule
	if empty.Temp(3) != 0 {
		t.Errorf("empty schedule")
	}
}

func TestFrozenCellsUnchanged(t *testing.T) {
	st := dense(3, 0.1, 0.5)
	st.Lrates[0][1] = 0
	st.Lrates[2][2] = 0
	st.BLrates[1] = 0
	out := []float32{1, -1, 0.5}
	var lp LearnParams
	lp.Defaults()
	tc := &touches{}
	for ri := 0; ri < 3; ri++ {
		lp.HebbRow(st, tc, ri, out[ri], out)
		lp.DeltaRow(st, tc, ri, 0.3, out)
		lp.BiasLearn(st, tc, ri, 0.3)
	}
	lp.CompetitiveRow(st, tc, 2, []float32{1, 1, 1})
	if st.Wts[0][1] != 0.1 || st.Wts[2][2] != 0.1 || st.Bias[1] != 0 {
		t.Errorf("frozen cells changed: %g %g %g", st.Wts[0][1], st.Wts[2][2], st.Bias[1])
	}
	if st.Wts[0][2] == 0.1 {
		t.Errorf("trainable cell did not change")
	}
	if st.Wts[1][1] != 0.1 {
		t.Errorf("self connection should not learn: %g", st.Wts[1][1])
	}
	if tc.n == 0 {
		t.Errorf("writes should be reported")
	}
}

func TestZeroLrateHebb(t *testing.T) {
	st := dense(4, 0.25, 0)
	out := []float32{1, 1, -1, 1}
	var lp LearnParams
	lp.Defaults()
	for ep := 0; ep < 10; ep++ {
		for ri := 0; ri < 4; ri++ {
			lp.HebbRow(st, nil, ri, out[ri], out)
		}
	}
	for ri := 0; ri < 4; ri++ {
		for k, w := range st.Wts[ri] {
			if w != 0.25 {
				t.Errorf("weight [%d][%d] changed to %g", ri, k, w)
			}
		}
	}
}

func TestCompete(t *testing.T) {
	st := topo.NewStore(5)
	for j := 3; j < 5; j++ {
		st.SetWindow(j, 0, 3)
		for k := 0; k < 3; k++ {
			st.Lrates[j][k] = 0.2
		}
	}
	st.Wts[3][0], st.Wts[3][1], st.Wts[3][2] = 0.5, 0.25, 0.25
	st.Wts[4][0], st.Wts[4][1], st.Wts[4][2] = 0.25, 0.25, 0.5
	ss := NewState(5)
	ss.Act[0], ss.Act[2] = 1, 1
	// tie on 0.75: the first unit wins
	if win := Compete(st, ss, 3, 5); win != 3 || ss.Act[3] != 1 || ss.Act[4] != 0 {
		t.Errorf("winner %d acts %v", win, ss.Act[3:])
	}
	var lp LearnParams
	lp.Defaults()
	lp.CompetitiveRow(st, nil, 3, ss.Act)
	// 0.5 + 0.2 * (0.5 - 0.5), 0.25 + 0.2 * (0 - 0.25), 0.25 + 0.2 * (0.5 - 0.25)
	want := []float32{0.5, 0.2, 0.3}
	for k, w := range want {
		if abs(st.Wts[3][k]-w) > difTol {
			t.Errorf("weight %d: %g want %g", k, st.Wts[3][k], w)
		}
	}
	sum := float32(0)
	for _, w := range st.Wts[3] {
		sum += w
	}
	if abs(sum-1) > difTol {
		t.Errorf("normalized row should stay normalized: %g", sum)
	}
	if Winner(nil, 0, 0) != -1 {
		t.Errorf("empty pool winner")
	}
}

func TestStats(t *testing.T) {
	ps := Stats([]float32{1, 0, 1, 0}, []float32{1, 0, 0, 0})
	if abs(float32(ps.PSS)-1) > difTol {
		t.Errorf("pss: %g", ps.PSS)
	}
	if abs(float32(ps.NDP)-0.25) > difTol {
		t.Errorf("ndp: %g", ps.NDP)
	}
	if abs(float32(ps.VCor)-float32(1/math.Sqrt(2))) > difTol {
		t.Errorf("vcor: %g", ps.VCor)
	}
	if abs(float32(ps.NVL)-0.5) > difTol {
		t.Errorf("nvl: %g", ps.NVL)
	}
	if z := Stats([]float32{1, 1}, []float32{0, 0}); z.VCor != 0 {
		t.Errorf("zero vector vcor: %g", z.VCor)
	}
	if SSE([]float32{1, 2}, []float32{0, 0}) != 5 {
		t.Errorf("sse")
	}
}

func TestSchemaGoodness(t *testing.T) {
	st := topo.NewStore(2)
	st.SetWindow(0, 0, 2)
	st.SetWindow(1, 0, 2)
	st.Wts[0][1], st.Wts[1][0] = 0.5, 0.5
	var cp CSParams
	cp.Defaults()
	ss := NewState(2)
	ss.Act[0], ss.Act[1] = 0.5, 0.5
	smp := NewSampler(rand.NewSource(1))
	g0 := cp.Goodness(st, ss)
	for c := 0; c < 20; c++ {
		cp.Update(st, ss, c%2, 0, smp)
	}
	if ss.Act[0] <= 0.5 || ss.Act[0] > 1 {
		t.Errorf("mutual excitation should raise activation: %g", ss.Act[0])
	}
	if g := cp.Goodness(st, ss); g <= g0 {
		t.Errorf("goodness should increase: %g -> %g", g0, g)
	}
}

func TestBoltzmannClamp(t *testing.T) {
	st := topo.NewStore(2)
	st.SetWindow(0, 0, 2)
	st.SetWindow(1, 0, 2)
	var cp CSParams
	cp.Defaults()
	cp.Mode = Boltzmann
	cp.Clamp = true
	ss := NewState(2)
	ss.Ext[0], ss.Ext[1] = 1, -1
	smp := NewSampler(rand.NewSource(2))
	cp.Update(st, ss, 0, 1, smp)
	cp.Update(st, ss, 1, 1, smp)
	if ss.Act[0] != 1 || ss.Act[1] != 0 {
		t.Errorf("clamped units: %v", ss.Act)
	}
}

func TestHarmony(t *testing.T) {
	// two feature units, one knowledge unit
	st := topo.NewStore(3)
	st.SetWindow(2, 0, 2)
	st.Wts[2][0], st.Wts[2][1] = 1, -1
	st.Sigma[2] = 2
	res := cons.NewResolver(rand.NewSource(3))
	res.RescaleRows(st, 2, 3, HarmonyScale(st))
	if st.Wts[2][0] != 1 || st.Wts[2][1] != -1 {
		t.Errorf("constrained weights: %v", st.Wts[2])
	}
	var cp CSParams
	cp.Defaults()
	cp.Mode = Harmony
	cp.NInputs = 2
	cp.Kappa = 0.5
	ss := NewState(3)
	ss.Ext[0], ss.Ext[1] = 1, -1
	smp := NewSampler(rand.NewSource(3))
	cp.Update(st, ss, 0, 0, smp)
	cp.Update(st, ss, 1, 0, smp)
	cp.Update(st, ss, 2, 0, smp)
	if ss.Act[0] != 1 || ss.Act[1] != -1 || ss.Act[2] != 1 {
		t.Errorf("harmony acts: %v", ss.Act)
	}
	// 1*1*1 + -1*1*-1 - 0.5*2
	if h := cp.Goodness(st, ss); abs(h-1) > difTol {
		t.Errorf("harmony: %g", h)
	}
}
