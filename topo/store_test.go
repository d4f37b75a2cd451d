// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dagfinndybvig/renewedPDP/errs"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestSetWindow(t *testing.T) {
	st := NewStore(4)
	if err := st.SetWindow(1, 1, 3); err != nil {
		t.Fatal(err)
	}
	if err := st.SetWindow(0, 2, 3); !errors.Is(err, errs.Topo) {
		t.Errorf("window past NUnits should be a topology error, got %v", err)
	}
	if err := st.SetWindow(4, 0, 1); !errors.Is(err, errs.Topo) {
		t.Errorf("receiver out of range should be a topology error, got %v", err)
	}
	if err := st.SetWindow(2, -1, 1); !errors.Is(err, errs.Topo) {
		t.Errorf("negative first sender should be a topology error, got %v", err)
	}
	first, n := st.Window(1)
	if first != 1 || n != 3 {
		t.Errorf("window: got %d %d", first, n)
	}
	if _, ok := st.Get(1, 0); ok {
		t.Errorf("sender 0 is outside the window of unit 1")
	}
	st.Wts[1][2] = 0.5
	c, ok := st.Get(1, 3)
	if !ok || c.Wt != 0.5 || c.Loc != WtLoc(1, 2) {
		t.Errorf("get: got %+v %v", c, ok)
	}
	if n := st.NCons(); n != 3 {
		t.Errorf("NCons: got %d", n)
	}
}

func TestForEachConnectionWindow(t *testing.T) {
	st := NewStore(5)
	st.SetWindow(0, 0, 5)
	st.SetWindow(2, 3, 2)
	st.SetWindow(4, 1, 0)
	for ri := 0; ri < st.NUnits; ri++ {
		first, n := st.Window(ri)
		if first < 0 || first+n > st.NUnits {
			t.Errorf("unit %d: window [%d, %d) out of range", ri, first, first+n)
		}
		cnt := 0
		st.ForEachConnection(ri, func(si, k int, wt float32) {
			if si < first || si >= first+n || si != first+k {
				t.Errorf("unit %d: sender %d at row index %d outside window", ri, si, k)
			}
			cnt++
		})
		if cnt != n {
			t.Errorf("unit %d: visited %d cells, want %d", ri, cnt, n)
		}
	}
}

func TestStaleRow(t *testing.T) {
	st := NewStore(3)
	st.SetWindow(0, 0, 3)
	ref := st.Row(0)
	if _, err := st.RowWts(ref); err != nil {
		t.Errorf("fresh row ref should be valid: %v", err)
	}
	st.SetWindow(0, 1, 2)
	if _, err := st.RowWts(ref); !errors.Is(err, errs.Topo) {
		t.Errorf("re-windowed row ref should be stale, got %v", err)
	}
}

func TestChangeLrate(t *testing.T) {
	st := NewStore(2)
	st.SetWindow(0, 0, 2)
	st.Lrates[0][0] = 0.5
	st.BLrates[1] = 0.5
	st.ChangeLrate(0.1)
	if st.Lrates[0][0] != 0.1 || st.Lrates[0][1] != 0 {
		t.Errorf("weight lrates: got %v", st.Lrates[0])
	}
	if st.BLrates[1] != 0.1 || st.BLrates[0] != 0 {
		t.Errorf("bias lrates: got %v", st.BLrates)
	}
}

func TestWtsFile(t *testing.T) {
	st := NewStore(3)
	st.SetWindow(0, 0, 3)
	st.SetWindow(2, 1, 2)
	st.HasBias = true
	st.HasSigma = true
	vals := []float32{0.1, -0.25, 0.3333, 1.5, -2}
	copy(st.Wts[0], vals[:3])
	copy(st.Wts[2], vals[3:])
	st.Bias[1] = 0.75
	st.Sigma[2] = 3
	var buf bytes.Buffer
	if err := st.WriteWts(&buf); err != nil {
		t.Fatal(err)
	}
	if n := len(strings.Fields(buf.String())); n != 5+3+3 {
		t.Errorf("token count: got %d", n)
	}

	cp := NewStore(3)
	cp.SetWindow(0, 0, 3)
	cp.SetWindow(2, 1, 2)
	cp.HasBias = true
	cp.HasSigma = true
	if err := cp.ReadWts(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatal(err)
	}
	for ri := 0; ri < 3; ri++ {
		for k := range st.Wts[ri] {
			if dif := st.Wts[ri][k] - cp.Wts[ri][k]; dif > difTol || dif < -difTol {
				t.Errorf("wt[%d][%d]: got %g want %g", ri, k, cp.Wts[ri][k], st.Wts[ri][k])
			}
		}
	}
	if cp.Bias[1] != 0.75 || cp.Sigma[2] != 3 || cp.Sigma[0] != DefSigma {
		t.Errorf("bias / sigma not restored: %v %v", cp.Bias, cp.Sigma)
	}
}

func TestWtsFileShort(t *testing.T) {
	st := NewStore(2)
	st.SetWindow(0, 0, 2)
	st.SetWindow(1, 0, 2)
	err := st.ReadWts(strings.NewReader("0.5 0.25 0.125"))
	if !errors.Is(err, errs.IO) {
		t.Fatalf("short file should be an io error, got %v", err)
	}
	// restore is not atomic: cells before the failure are overwritten
	if st.Wts[0][0] != 0.5 || st.Wts[1][0] != 0.125 || st.Wts[1][1] != 0 {
		t.Errorf("partial restore: got %v %v", st.Wts[0], st.Wts[1])
	}
	if err := st.ReadWts(strings.NewReader("0.5 x")); !errors.Is(err, errs.IO) {
		t.Errorf("bad token should be an io error, got %v", err)
	}
}

func TestWtsJSON(t *testing.T) {
	st := NewStore(3)
	st.SetWindow(1, 0, 2)
	st.SetWindow(2, 0, 3)
	st.HasBias = true
	st.Wts[1][1] = 0.5
	st.Wts[2][2] = -0.75
	st.Bias[0] = 0.25
	var buf bytes.Buffer
	if err := st.WriteWtsJSON(&buf, "test"); err != nil {
		t.Fatal(err)
	}
	cp := NewStore(3)
	cp.SetWindow(1, 0, 2)
	cp.SetWindow(2, 0, 3)
	cp.HasBias = true
	if err := cp.ReadWtsJSON(&buf); err != nil {
		t.Fatal(err)
	}
	if cp.Wts[1][1] != 0.5 || cp.Wts[2][2] != -0.75 || cp.Bias[0] != 0.25 {
		t.Errorf("json restore: got %v %v %v", cp.Wts[1], cp.Wts[2], cp.Bias)
	}
}

type rowCounter struct {
	rows, biases int
}

func (rc *rowCounter) EmitWeightRow(unit, first int, row []float32) {
	rc.rows++
	for i := range row {
		row[i] = 99 // copies only
	}
}

func (rc *rowCounter) EmitBias(unit int, bias float32) { rc.biases++ }

func TestExpose(t *testing.T) {
	st := NewStore(2)
	st.SetWindow(0, 0, 2)
	rc := &rowCounter{}
	st.Expose(rc)
	if rc.rows != 2 || rc.biases != 2 {
		t.Errorf("expose counts: %+v", rc)
	}
	if st.Wts[0][0] != 0 {
		t.Errorf("inspector modified the store")
	}
	if !strings.Contains(st.SizeReport(true), "Cons: 2") {
		t.Errorf("size report: %s", st.SizeReport(true))
	}
}
