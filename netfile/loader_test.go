// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netfile

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dagfinndybvig/renewedPDP/cons"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/topo"
	"github.com/dagfinndybvig/renewedPDP/vars"
	"golang.org/x/exp/rand"
)

type testDefs struct {
	*vars.Table
	nunits int
}

func (td *testDefs) NUnits() int { return td.nunits }

func newTestLoader(seed uint64) *Loader {
	td := &testDefs{Table: vars.NewTable()}
	td.Install("nunits", &td.nunits, "number of units")
	return NewLoader(td, cons.NewResolver(rand.NewSource(seed)), nil)
}

func load(t *testing.T, seed uint64, desc string) (*topo.Store, *Loader, error) {
	t.Helper()
	ld := newTestLoader(seed)
	st, err := ld.Load(strings.NewReader(desc))
	return st, ld, err
}

const dense3 = `definitions:
nunits 3
end
constraints:
end
network:
rrr
rrr
rrr
end
`

func TestDense(t *testing.T) {
	st, _, err := load(t, 5, dense3)
	if err != nil {
		t.Fatal(err)
	}
	if st.NUnits != 3 {
		t.Fatalf("nunits: %d", st.NUnits)
	}
	for ri := 0; ri < 3; ri++ {
		first, n := st.Window(ri)
		if first != 0 || n != 3 {
			t.Errorf("unit %d window [%d, %d)", ri, first, first+n)
		}
		for k := 0; k < 3; k++ {
			if st.Codes[ri][k] != 'r' {
				t.Errorf("code [%d][%d] = %q", ri, k, st.Codes[ri][k])
			}
			if w := st.Wts[ri][k]; w < -0.5 || w >= 0.5 {
				t.Errorf("r draw out of range: %g", w)
			}
			if st.Lrates[ri][k] != cons.DefLrate {
				t.Errorf("lowercase cell should be trainable: %g", st.Lrates[ri][k])
			}
		}
	}
}

func TestReproducible(t *testing.T) {
	a, _, _ := load(t, 11, dense3)
	b, _, _ := load(t, 11, dense3)
	c, _, _ := load(t, 12, dense3)
	same := true
	for ri := 0; ri < 3; ri++ {
		fa, na := a.Window(ri)
		fb, nb := b.Window(ri)
		if fa != fb || na != nb {
			t.Errorf("windows differ for unit %d", ri)
		}
		for k := range a.Wts[ri] {
			if a.Wts[ri][k] != b.Wts[ri][k] || a.Codes[ri][k] != b.Codes[ri][k] {
				t.Errorf("loads with same seed differ at [%d][%d]", ri, k)
			}
			if a.Wts[ri][k] != c.Wts[ri][k] {
				same = false
			}
		}
	}
	if same {
		t.Errorf("different seeds produced identical draws")
	}
}

func TestBlocks(t *testing.T) {
	desc := `definitions:
nunits 4
end
constraints:
w 0.5
f -1
end
network:
%w 2 2 0 2
% 0 2 2 2
F.
.W
end
biases:
% 2 2 n
end
`
	st, ld, err := load(t, 1, desc)
	if err != nil {
		t.Fatal(err)
	}
	if ld.Blocks() != 2 {
		t.Errorf("blocks: %d", ld.Blocks())
	}
	if f, n := st.Window(2); f != 0 || n != 2 {
		t.Errorf("unit 2 window [%d, %d)", f, f+n)
	}
	if f, n := st.Window(1); f != 2 || n != 2 {
		t.Errorf("unit 1 window [%d, %d)", f, f+n)
	}
	if st.Wts[3][1] != 0.5 || st.Lrates[3][1] == 0 {
		t.Errorf("fill w cell: %g %g", st.Wts[3][1], st.Lrates[3][1])
	}
	if st.Wts[0][0] != -1 || st.Lrates[0][0] != 0 {
		t.Errorf("frozen F cell: %g %g", st.Wts[0][0], st.Lrates[0][0])
	}
	if st.Wts[0][1] != 0 || st.Codes[0][1] != '.' {
		t.Errorf("skipped cell: %g %q", st.Wts[0][1], st.Codes[0][1])
	}
	if _, ok := st.Get(1, 0); ok {
		t.Errorf("unit 1 should not receive from unit 0")
	}
	if !st.HasBias || st.Bias[0] != 0 || st.Bias[2] >= 0 || st.Bias[3] >= 0 {
		t.Errorf("biases: %v", st.Bias)
	}
	if st.Bias[2] < -1 {
		t.Errorf("negative pool bias out of range: %g", st.Bias[2])
	}
	if n := ld.Res.Reg.Pools[cons.NegPool].Len(); n != 2 {
		t.Errorf("negative pool size: %d", n)
	}
}

func TestLinked(t *testing.T) {
	desc := `definitions:
nunits 2
end
constraints:
a random linked
end
network:
a.
.a
end
`
	st, ld, err := load(t, 3, desc)
	if err != nil {
		t.Fatal(err)
	}
	if st.Wts[0][0] != st.Wts[1][1] {
		t.Errorf("linked cells differ after load: %g %g", st.Wts[0][0], st.Wts[1][1])
	}
	st.Wts[0][0] = 0.73
	ld.Res.Touch(topo.WtLoc(0, 0))
	ld.Res.Sync(st)
	if st.Wts[1][1] != 0.73 {
		t.Errorf("linked cell after resync: %g", st.Wts[1][1])
	}
}

func TestSigmas(t *testing.T) {
	desc := `definitions:
nunits 3
end
constraints:
s 2
m -1
end
sigmas:
.s.
end
`
	st, _, err := load(t, 1, desc)
	if err != nil {
		t.Fatal(err)
	}
	if st.Sigma[0] != topo.DefSigma || st.Sigma[1] != 2 || !st.HasSigma {
		t.Errorf("sigmas: %v", st.Sigma)
	}
	_, _, err = load(t, 1, strings.Replace(desc, ".s.", ".m.", 1))
	if !errors.Is(err, errs.Load) {
		t.Errorf("negative sigma should be a load error: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		desc string
		kind errs.Kind
	}{
		{"bad char", "definitions: nunits 2 end network: r# rr end", errs.LoadError},
		{"short row", "definitions: nunits 2 end network: r rr end", errs.LoadError},
		{"premature end", "definitions: nunits 2 end network: rr", errs.LoadError},
		{"end in rows", "definitions: nunits 2 end network: rr end", errs.LoadError},
		{"row range", "definitions: nunits 2 end network: %r 1 2 0 2 end", errs.LoadError},
		{"col range", "definitions: nunits 2 end network: %r 0 2 1 2 end", errs.LoadError},
		{"second block without %", "definitions: nunits 2 end network: rr rr ab end", errs.LoadError},
		{"unknown name", "definitions: nhidden 2 end", errs.NameNotFound},
		{"no nunits", "network: rr rr end", errs.LoadError},
		{"unknown section", "weights: end", errs.LoadError},
	}
	for _, c := range cases {
		_, _, err := load(t, 1, c.desc)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if k, _ := errs.KindOf(err); k != c.kind {
			t.Errorf("%s: kind %v, want %v (%v)", c.name, k, c.kind, err)
		}
	}
	_, _, err := load(t, 1, "constraints:\na sideways\nend\n")
	if !errors.Is(err, errs.Load) {
		t.Errorf("unknown keyword should be a load error: %v", err)
	}
}

func TestSectionIsolation(t *testing.T) {
	desc := `definitions:
nunits 2
end
constraints:
w 0.25
end
network:
ww
w#
end
biases:
ww
end
`
	st, _, err := load(t, 1, desc)
	if !errors.Is(err, errs.Load) {
		t.Fatalf("expected load error, got %v", err)
	}
	if st == nil {
		t.Fatal("store should exist")
	}
	if st.Wts[0][0] != 0.25 {
		t.Errorf("rows before the failure should stand: %v", st.Wts[0])
	}
	if st.Bias[0] != 0.25 || st.Bias[1] != 0.25 {
		t.Errorf("biases after a failed section should load: %v", st.Bias)
	}
}

func TestPoolKeywords(t *testing.T) {
	desc := `definitions:
nunits 2
end
constraints:
a 0.5 positive
b random positive
c random negative
d negative
end
network:
ab
cd
end
`
	st, ld, err := load(t, 1, desc)
	if err != nil {
		t.Fatal(err)
	}
	if p := ld.Res.Table.Policy('a'); p.Kind != cons.Fixed || p.Val != 0.5 {
		t.Errorf("a 0.5 positive should be Fixed(0.5): %v", p)
	}
	if p := ld.Res.Table.Policy('d'); p.Kind != cons.Fixed || p.Val != 0 {
		t.Errorf("negative without random should be Fixed(0): %v", p)
	}
	if st.Wts[0][0] != 0.5 || st.Wts[1][1] != 0 {
		t.Errorf("fixed cells: %g %g", st.Wts[0][0], st.Wts[1][1])
	}
	if w := st.Wts[0][1]; w < 0 || w >= 1 {
		t.Errorf("random positive out of [0, 1): %g", w)
	}
	if w := st.Wts[1][0]; w < -1 || w >= 0 {
		t.Errorf("random negative out of [-1, 0): %g", w)
	}
	if n := ld.Res.Reg.Pools[cons.PosPool].Len(); n != 1 {
		t.Errorf("positive pool size: %d", n)
	}
	if n := ld.Res.Reg.Pools[cons.NegPool].Len(); n != 1 {
		t.Errorf("negative pool size: %d", n)
	}
}

func TestStrayEnd(t *testing.T) {
	st, _, err := load(t, 5, dense3+"end\n")
	if err != nil {
		t.Errorf("top-level end should be skipped: %v", err)
	}
	if st == nil || st.NUnits != 3 {
		t.Errorf("store not loaded")
	}
}

func TestRewindowPool(t *testing.T) {
	desc := `definitions:
nunits 3
end
network:
%p 0 3 0 3
% 0 1 0 2 rr
end
`
	st, ld, err := load(t, 1, desc)
	if err != nil {
		t.Fatal(err)
	}
	if f, n := st.Window(0); f != 0 || n != 2 {
		t.Errorf("unit 0 window [%d, %d)", f, f+n)
	}
	if n := ld.Res.Reg.Pools[cons.PosPool].Len(); n != 6 {
		t.Errorf("re-windowed row should leave the pool: %d", n)
	}
	for _, lc := range ld.Res.Reg.Pools[cons.PosPool].Locs {
		if lc.Unit == 0 {
			t.Errorf("stale pool entry %v", lc)
		}
	}
}

func TestLargePoolLoad(t *testing.T) {
	if testing.Short() {
		t.Skip("large load")
	}
	n := 1000
	desc := fmt.Sprintf("definitions:\nnunits %d\nend\nnetwork:\n%%p 0 %d 0 %d\n%% 0 1 0 %d r\nend\n", n, n, n, n)
	stt := time.Now()
	_, ld, err := load(t, 1, desc)
	if err != nil {
		t.Fatal(err)
	}
	if d := time.Since(stt); d > 10*time.Second {
		t.Errorf("pooled load of %d rows took %v", n, d)
	}
	if pl := ld.Res.Reg.Pools[cons.PosPool].Len(); pl != n*n-n {
		t.Errorf("pool size: %d, want %d", pl, n*n-n)
	}
}
