// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package topo is the sparse topology store shared by every model.

Connectivity is held on the receiver side: each receiving unit has a
contiguous sender window (RConSt, RConN) in the global unit index space,
and its weight row is a dense array aligned to that window, so row index
k is sender RConSt[ri]+k. Windows may overlap, be empty, or leave units
uncovered. Each weight cell has a parallel learning-rate cell (zero is
frozen) and an origin code letter. Every unit also has one bias cell and
one sigma cell.

The store is rebuilt from scratch on every network load.
*/
package topo

import (
	"github.com/dagfinndybvig/renewedPDP/errs"
)

// DefSigma is the default sigma value for every unit
const DefSigma = 1.0

// Store holds receiver-side connection windows, weight rows and the
// per-unit bias and sigma cells.
type Store struct {
	NUnits   int         `desc:"number of units in the network"`
	RConSt   []int       `desc:"[NUnits] first sender of each receiving unit's window"`
	RConN    []int       `desc:"[NUnits] number of senders in each receiving unit's window"`
	Wts      [][]float32 `desc:"[NUnits][RConN] weight rows aligned to each window"`
	Lrates   [][]float32 `desc:"[NUnits][RConN] learning rate cells parallel to Wts -- zero is frozen"`
	Codes    [][]byte    `desc:"[NUnits][RConN] description-language code that produced each cell, 0 for no connection"`
	Bias     []float32   `desc:"[NUnits] bias cells"`
	BLrates  []float32   `desc:"[NUnits] bias learning rate cells"`
	BCodes   []byte      `desc:"[NUnits] code that produced each bias"`
	Sigma    []float32   `desc:"[NUnits] sigma strength cells, used by harmony mode"`
	SCodes   []byte      `desc:"[NUnits] code that produced each sigma"`
	HasBias  bool        `desc:"biases were specified and are part of the persisted state"`
	HasSigma bool        `desc:"sigmas were specified and are part of the persisted state"`
	Gen      []uint32    `desc:"[NUnits] row generation, incremented on every re-window"`
}

// NewStore returns a new store allocated for n units
func NewStore(n int) *Store {
	st := &Store{}
	st.Allocate(n)
	return st
}

// Allocate discards all existing state and allocates n units with empty
// windows, zero biases and default sigmas.
func (st *Store) Allocate(n int) {
	if n < 0 {
		n = 0
	}
	st.NUnits = n
	st.RConSt = make([]int, n)
	st.RConN = make([]int, n)
	st.Wts = make([][]float32, n)
	st.Lrates = make([][]float32, n)
	st.Codes = make([][]byte, n)
	st.Bias = make([]float32, n)
	st.BLrates = make([]float32, n)
	st.BCodes = make([]byte, n)
	st.Sigma = make([]float32, n)
	st.SCodes = make([]byte, n)
	st.Gen = make([]uint32, n)
	for i := range st.Sigma {
		st.Sigma[i] = DefSigma
	}
	st.HasBias = false
	st.HasSigma = false
}

// InRange returns true if unit index is in [0, NUnits)
func (st *Store) InRange(unit int) bool {
	return unit >= 0 && unit < st.NUnits
}

// SetWindow sets the sender window of receiving unit ri to
// [first, first+n) and allocates a fresh zeroed row for it.
// Any RowRef previously taken on ri becomes stale.
func (st *Store) SetWindow(ri, first, n int) error {
	if !st.InRange(ri) {
		return errs.New(errs.TopologyError, "set window", "receiving unit %d out of range [0, %d)", ri, st.NUnits)
	}
	if first < 0 || n < 0 || first+n > st.NUnits {
		return errs.New(errs.TopologyError, "set window", "window [%d, %d) for unit %d exceeds [0, %d)", first, first+n, ri, st.NUnits)
	}
	st.RConSt[ri] = first
	st.RConN[ri] = n
	st.Wts[ri] = make([]float32, n)
	st.Lrates[ri] = make([]float32, n)
	st.Codes[ri] = make([]byte, n)
	st.Gen[ri]++
	return nil
}

// Window returns the window of receiving unit ri
func (st *Store) Window(ri int) (first, n int) {
	return st.RConSt[ri], st.RConN[ri]
}

// Index returns the row index of sender si in receiving unit ri's row,
// and false if si is outside the window.
func (st *Store) Index(ri, si int) (int, bool) {
	if !st.InRange(ri) {
		return 0, false
	}
	k := si - st.RConSt[ri]
	if k < 0 || k >= st.RConN[ri] {
		return 0, false
	}
	return k, true
}

// Cell is a read-only view of one weight cell
type Cell struct {
	Loc   Loc
	Wt    float32
	Lrate float32
	Code  byte
}

// Get returns the cell connecting sender si to receiver ri, if si
// falls within ri's window.
func (st *Store) Get(ri, si int) (Cell, bool) {
	k, ok := st.Index(ri, si)
	if !ok {
		return Cell{}, false
	}
	return Cell{Loc: WtLoc(ri, k), Wt: st.Wts[ri][k], Lrate: st.Lrates[ri][k], Code: st.Codes[ri][k]}, true
}

// Wt returns the weight from si to ri, 0 and false outside the window
func (st *Store) Wt(ri, si int) (float32, bool) {
	k, ok := st.Index(ri, si)
	if !ok {
		return 0, false
	}
	return st.Wts[ri][k], true
}

// ForEachConnection calls fun for every cell in ri's window, in sender
// order, with the global sender index, the row index and the weight.
func (st *Store) ForEachConnection(ri int, fun func(si, k int, wt float32)) {
	first := st.RConSt[ri]
	for k, wt := range st.Wts[ri] {
		fun(first+k, k, wt)
	}
}

// ChangeLrate sets every nonzero learning rate cell (weights and biases)
// to lrate. Frozen cells stay frozen.
func (st *Store) ChangeLrate(lrate float32) {
	for ri := 0; ri < st.NUnits; ri++ {
		lrs := st.Lrates[ri]
		for k := range lrs {
			if lrs[k] != 0 {
				lrs[k] = lrate
			}
		}
		if st.BLrates[ri] != 0 {
			st.BLrates[ri] = lrate
		}
	}
}

// NCons returns the total number of weight cells over all rows
func (st *Store) NCons() int {
	n := 0
	for _, c := range st.RConN {
		n += c
	}
	return n
}

// RowRef is a reference to a unit's weight row that detects re-windowing
type RowRef struct {
	Unit int
	Gen  uint32
}

// Row returns a reference to ri's current row
func (st *Store) Row(ri int) RowRef {
	return RowRef{Unit: ri, Gen: st.Gen[ri]}
}

// RowWts returns the weight row behind ref, or a TopologyError if the
// row was re-windowed after the reference was taken.
func (st *Store) RowWts(ref RowRef) ([]float32, error) {
	if !st.InRange(ref.Unit) {
		return nil, errs.New(errs.TopologyError, "row", "unit %d out of range", ref.Unit)
	}
	if st.Gen[ref.Unit] != ref.Gen {
		return nil, errs.New(errs.TopologyError, "row", "row of unit %d was re-windowed after the reference was taken", ref.Unit)
	}
	return st.Wts[ref.Unit], nil
}

// Inspector receives read-only copies of rows and biases
type Inspector interface {
	EmitWeightRow(unit, first int, row []float32)
	EmitBias(unit int, bias float32)
}

// Expose sends copies of every row and bias to insp
func (st *Store) Expose(insp Inspector) {
	for ri := 0; ri < st.NUnits; ri++ {
		row := make([]float32, len(st.Wts[ri]))
		copy(row, st.Wts[ri])
		insp.EmitWeightRow(ri, st.RConSt[ri], row)
		insp.EmitBias(ri, st.Bias[ri])
	}
}
