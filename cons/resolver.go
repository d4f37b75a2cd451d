// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cons

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/topo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default load-time parameters
const (
	DefLrate  = 0.5
	DefWrange = 1.0
)

// Resolver materializes cells from codes and keeps linked groups in sync.
// It is owned by one session and rebuilt on every network load.
type Resolver struct {
	Table  *Table       `desc:"code letter to policy table"`
	Reg    Registry     `desc:"pools and linked groups"`
	Wrange float32      `def:"1" desc:"range of random initial values"`
	Lrate  float32      `def:"0.5" desc:"learning rate given to trainable cells at load time"`
	Log    *slog.Logger `view:"-" desc:"logger for group write conflicts"`

	unif    distuv.Uniform
	touched map[int]topo.Loc
}

// NewResolver returns a resolver drawing from src
func NewResolver(src rand.Source) *Resolver {
	rs := &Resolver{Wrange: DefWrange, Lrate: DefLrate}
	rs.SetSource(src)
	rs.Reset()
	return rs
}

// SetSource sets the random source used for all draws
func (rs *Resolver) SetSource(src rand.Source) {
	rs.unif = distuv.Uniform{Min: 0, Max: 1, Src: src}
}

// Reset restores the predefined code table and empties the registry
func (rs *Resolver) Reset() {
	if rs.Table == nil {
		rs.Table = NewTable()
	} else {
		rs.Table.Reset()
	}
	rs.Reg.Reset()
	rs.touched = make(map[int]topo.Loc)
	if rs.Log == nil {
		rs.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// DefineCode sets the policy for letter
func (rs *Resolver) DefineCode(letter byte, pol Policy) error {
	return rs.Table.Define(letter, pol)
}

// Draw returns an initial value for pol
func (rs *Resolver) Draw(pol Policy) float32 {
	rng := pol.Range
	if rng == 0 {
		rng = rs.Wrange
	}
	switch pol.Kind {
	case Random:
		return rng * float32(rs.unif.Rand()-0.5)
	case Positive:
		return rng * float32(rs.unif.Rand())
	case Negative:
		return rng * float32(rs.unif.Rand()-1)
	}
	return pol.Val
}

// Materialize initializes the weight or bias cell at lc from description
// character ch: draws its value, sets its learning rate from the case of
// ch, records the code, and registers the cell in its pool and group.
func (rs *Resolver) Materialize(st *topo.Store, lc topo.Loc, ch byte) error {
	cd, ok := ParseCode(ch)
	if !ok {
		return errs.New(errs.LoadError, "materialize", "code %q is not a letter", ch)
	}
	if !st.Valid(lc) {
		return errs.New(errs.TopologyError, "materialize", "cell %v does not exist", lc)
	}
	pol := rs.Table.Policy(cd.Letter)
	st.SetValue(lc, rs.Draw(pol))
	if cd.Trainable {
		st.SetLrate(lc, rs.Lrate)
	} else {
		st.SetLrate(lc, 0)
	}
	st.SetCode(lc, ch)
	if pt, ok := pol.Pooled(); ok {
		rs.Reg.AddPool(pt, lc)
	}
	if pol.Linked() {
		rs.Reg.Link(lc, pol.Link)
	}
	return nil
}

// MaterializeSigma sets unit's sigma to the value of ch's policy,
// used verbatim. A negative value is a load error.
func (rs *Resolver) MaterializeSigma(st *topo.Store, unit int, ch byte) error {
	cd, ok := ParseCode(ch)
	if !ok {
		return errs.New(errs.LoadError, "sigmas", "code %q is not a letter", ch)
	}
	pol := rs.Table.Policy(cd.Letter)
	if pol.Val < 0 {
		return errs.New(errs.LoadError, "sigmas", "sigma for unit %d from code %q is negative (%g)", unit, ch, pol.Val)
	}
	lc := topo.SigmaLoc(unit)
	st.SetValue(lc, pol.Val)
	st.SetCode(lc, ch)
	return nil
}

// Forget drops registry entries for unit's row, which is about to be
// re-windowed.
func (rs *Resolver) Forget(unit int) {
	rs.Reg.Forget(unit)
	for id, lc := range rs.touched {
		if lc.Kind == topo.WtCell && lc.Unit == unit {
			delete(rs.touched, id)
		}
	}
}

// ResyncGroup overwrites every member of group id with the value at from
func (rs *Resolver) ResyncGroup(st *topo.Store, id int, from topo.Loc) error {
	if id <= 0 || id > len(rs.Reg.Groups) {
		return errs.New(errs.TopologyError, "resync", "no linked group %d", id)
	}
	if !st.Valid(from) {
		return errs.New(errs.TopologyError, "resync", "cell %v does not exist", from)
	}
	val := st.Value(from)
	for _, lc := range rs.Reg.Groups[id-1].Locs {
		st.SetValue(lc, val)
	}
	return nil
}

// SyncAll sets every group to the value of its first member.
// Called after a load so linked random cells start out equal.
func (rs *Resolver) SyncAll(st *topo.Store) error {
	var serrs []error
	for i := range rs.Reg.Groups {
		gp := &rs.Reg.Groups[i]
		if gp.Len() == 0 {
			continue
		}
		if err := rs.ResyncGroup(st, gp.ID, gp.Locs[0]); err != nil {
			serrs = append(serrs, err)
		}
	}
	return errors.Join(serrs...)
}

// Touch records that a learning rule wrote the cell at lc this step.
// Cells outside any group are ignored. The touched cell becomes its
// group's writer of record; a second distinct writer in the same step is
// logged at debug level, and the last one touched wins.
func (rs *Resolver) Touch(lc topo.Loc) {
	if len(rs.Reg.Groups) == 0 {
		return
	}
	id, has := rs.Reg.GroupOf[lc]
	if !has {
		return
	}
	if prev, was := rs.touched[id]; was && prev != lc {
		rs.Log.Debug("linked group written by more than one member in one step", "group", id, "first", prev.String(), "second", lc.String())
	}
	rs.touched[id] = lc
}

// Sync broadcasts the writer of record of each touched group to all of
// its members, then clears the touched set.
func (rs *Resolver) Sync(st *topo.Store) {
	for id, lc := range rs.touched {
		if err := rs.ResyncGroup(st, id, lc); err != nil {
			rs.Log.Error("linked group resync", "group", id, "err", err)
		}
		delete(rs.touched, id)
	}
}

// RescalePool replaces the value of every cell in pool pt with fn(value)
func (rs *Resolver) RescalePool(st *topo.Store, pt PoolType, fn func(val float32) float32) {
	for _, lc := range rs.Reg.Pools[pt].Locs {
		st.SetValue(lc, fn(st.Value(lc)))
	}
}

// RescaleRows replaces each nonzero weight in the rows of units [from, to)
// with fn(unit, nonzero count, value).
func (rs *Resolver) RescaleRows(st *topo.Store, from, to int, fn func(unit, ncons int, val float32) float32) {
	for ri := from; ri < to; ri++ {
		row := st.Wts[ri]
		ncons := 0
		for _, wt := range row {
			if wt != 0 {
				ncons++
			}
		}
		if ncons == 0 {
			continue
		}
		for k, wt := range row {
			if wt != 0 {
				row[k] = fn(ri, ncons, wt)
			}
		}
	}
}
