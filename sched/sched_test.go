// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"bytes"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"golang.org/x/exp/rand"
)

// testModel returns pss[pat] scaled down by 2 every epoch it learns
type testModel struct {
	pss     []float32
	ncycles int
	seen    []int
	learned int
	runaway int // pattern that reports a runaway, -1 for none
}

func newTestModel(pss ...float32) *testModel {
	return &testModel{pss: pss, ncycles: 2, runaway: -1}
}

func (tm *testModel) NPatterns() int { return len(tm.pss) }

func (tm *testModel) Trial(sc *Scheduler, pat int, learn bool) (float32, error) {
	tm.seen = append(tm.seen, pat)
	for c := 0; c < tm.ncycles; c++ {
		if sc.CycleStart() {
			return 0, ErrBreak
		}
		if sc.UpdateEnd() || sc.CycleEnd() {
			return 0, ErrBreak
		}
	}
	if sc.Settled() {
		return 0, ErrBreak
	}
	if pat == tm.runaway {
		return 0, errs.New(errs.RuntimeNumericWarning, "cycle", "activation runaway")
	}
	p := tm.pss[pat]
	if learn {
		tm.pss[pat] /= 2
		tm.learned++
	}
	return p, nil
}

// testCtrl records refreshes and answers asks from a script
type testCtrl struct {
	refresh map[StepGrain]int
	asks    []StepGrain
	causes  []error
	answers []Decision
	pushes  int
}

func newTestCtrl(answers ...Decision) *testCtrl {
	return &testCtrl{refresh: map[StepGrain]int{}, answers: answers}
}

func (tc *testCtrl) Refresh(grain StepGrain) { tc.refresh[grain]++ }

func (tc *testCtrl) Ask(grain StepGrain, cause error) Decision {
	tc.asks = append(tc.asks, grain)
	tc.causes = append(tc.causes, cause)
	if len(tc.answers) == 0 {
		return Continue
	}
	d := tc.answers[0]
	tc.answers = tc.answers[1:]
	return d
}

func (tc *testCtrl) Push() { tc.pushes++ }

func TestTrainSequential(t *testing.T) {
	tm := newTestModel(1, 2, 3)
	sc := New(tm, rand.New(rand.NewSource(1)), nil)
	sc.NEpochs = 3
	if err := sc.Train(Sequential); err != nil {
		t.Fatal(err)
	}
	if sc.State != Idle {
		t.Errorf("state: %v", sc.State)
	}
	want := []int{0, 1, 2, 0, 1, 2, 0, 1, 2}
	for i, p := range want {
		if tm.seen[i] != p {
			t.Fatalf("order: %v", tm.seen)
		}
	}
	if sc.TSS != 1.5 {
		t.Errorf("last epoch tss: %g", sc.TSS)
	}
	if sc.Time.Epoch.Cur != 3 || sc.EpochLog.Rows != 3 {
		t.Errorf("epochs: %d rows: %d", sc.Time.Epoch.Cur, sc.EpochLog.Rows)
	}
	if sc.Time.CycleTot != 18 {
		t.Errorf("cycles: %d", sc.Time.CycleTot)
	}
	var b bytes.Buffer
	if err := sc.WriteEpochLog(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "TSS") || strings.Count(b.String(), "\n") != 4 {
		t.Errorf("epoch log csv:\n%s", b.String())
	}
}

func TestShuffledIsPermutation(t *testing.T) {
	tm := newTestModel(1, 1, 1, 1, 1, 1, 1, 1)
	sc := New(tm, rand.New(rand.NewSource(7)), nil)
	sc.NEpochs = 4
	sc.Train(Shuffled)
	inorder := true
	for ep := 0; ep < 4; ep++ {
		got := append([]int(nil), tm.seen[ep*8:(ep+1)*8]...)
		for i, p := range got {
			if p != i {
				inorder = false
			}
		}
		sort.Ints(got)
		for i, p := range got {
			if p != i {
				t.Fatalf("epoch %d is not a permutation: %v", ep, tm.seen[ep*8:(ep+1)*8])
			}
		}
	}
	if inorder {
		t.Errorf("shuffled order never differed from sequential")
	}
}

func TestConvergence(t *testing.T) {
	tm := newTestModel(1, 1)
	sc := New(tm, nil, nil)
	sc.NEpochs = 100
	sc.ECrit = 0.2
	sc.Train(Sequential)
	// tss per epoch: 2, 1, .5, .25, .125
	if sc.State != Converged || sc.Time.Epoch.Cur != 5 {
		t.Errorf("state %v after %d epochs", sc.State, sc.Time.Epoch.Cur)
	}
	sc.ECrit = 0
	sc.NEpochs = 1
	sc.Train(Sequential)
	if sc.Time.Epoch.Cur != 6 {
		t.Errorf("epochs should accumulate across Train calls: %d", sc.Time.Epoch.Cur)
	}
}

func TestTestAll(t *testing.T) {
	tm := newTestModel(1, 2)
	sc := New(tm, rand.New(rand.NewSource(1)), nil)
	sc.Order = Shuffled
	if err := sc.TestAll(); err != nil {
		t.Fatal(err)
	}
	if tm.learned != 0 || sc.TSS != 3 {
		t.Errorf("test all learned %d, tss %g", tm.learned, sc.TSS)
	}
	if tm.seen[0] != 0 || tm.seen[1] != 1 {
		t.Errorf("test all should be sequential: %v", tm.seen)
	}
	if !sc.Learn {
		t.Errorf("learn flag should be untouched")
	}
	pss, err := sc.Test(1)
	if err != nil || pss != 2 {
		t.Errorf("test: %g %v", pss, err)
	}
	if _, err := sc.Test(5); err == nil {
		t.Errorf("testing a missing pattern should fail")
	}
}

func TestInterrupt(t *testing.T) {
	tm := newTestModel(1, 1, 1)
	sc := New(tm, nil, nil)
	ctrl := newTestCtrl(Push, Break)
	sc.Step.Ctrl = ctrl
	sc.NEpochs = 2
	sc.Intr.Set()
	if err := sc.Train(Sequential); err != nil {
		t.Fatal(err)
	}
	if sc.State != Interrupted {
		t.Errorf("state: %v", sc.State)
	}
	if len(tm.seen) != 0 || tm.learned != 0 {
		t.Errorf("no pattern should have started: %v", tm.seen)
	}
	if ctrl.pushes != 1 || len(ctrl.asks) != 2 || ctrl.asks[0] != StepPattern {
		t.Errorf("pushes %d asks %v", ctrl.pushes, ctrl.asks)
	}
	if sc.Intr.IsInterrupted() {
		t.Errorf("flag should be cleared")
	}

	// continue resumes with nothing lost
	ctrl = newTestCtrl(Continue)
	sc.Step.Ctrl = ctrl
	sc.Intr.Set()
	sc.Train(Sequential)
	if tm.learned != 6 || sc.State != Idle {
		t.Errorf("learned %d state %v", tm.learned, sc.State)
	}
}

func TestSingleStep(t *testing.T) {
	tm := newTestModel(1, 1, 1)
	sc := New(tm, nil, nil)
	ctrl := newTestCtrl(Continue, Continue, Break)
	sc.Step.Ctrl = ctrl
	sc.Step.StartStepping(StepPattern, 1)
	sc.NEpochs = 10
	sc.Train(Sequential)
	if len(tm.seen) != 3 || sc.State != Interrupted {
		t.Errorf("seen %v state %v", tm.seen, sc.State)
	}
	for _, g := range ctrl.asks {
		if g != StepPattern {
			t.Errorf("asked at %v", g)
		}
	}
	if ctrl.refresh[StepCycle] != 0 || ctrl.refresh[StepPattern] != 3 {
		t.Errorf("refresh: %v", ctrl.refresh)
	}
}

func TestRunaway(t *testing.T) {
	tm := newTestModel(1, 1, 1)
	tm.runaway = 1
	sc := New(tm, nil, nil)
	ctrl := newTestCtrl(Break)
	sc.Step.Ctrl = ctrl
	sc.NEpochs = 5
	err := sc.Train(Sequential)
	if !errors.Is(err, errs.Runaway) {
		t.Fatalf("expected runaway warning, got %v", err)
	}
	if len(ctrl.causes) != 1 || ctrl.causes[0] == nil {
		t.Errorf("controller should see the cause: %v", ctrl.causes)
	}
	tm = newTestModel(1, 1, 1)
	tm.runaway = 1
	sc = New(tm, nil, nil)
	sc.Step.Ctrl = newTestCtrl()
	sc.NEpochs = 2
	if err := sc.Train(Sequential); err != nil {
		t.Errorf("continued runaway should not end the run: %v", err)
	}
	if len(tm.seen) != 6 {
		t.Errorf("seen %v", tm.seen)
	}
}
