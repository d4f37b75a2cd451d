// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cons

import (
	"github.com/dagfinndybvig/renewedPDP/topo"
	"github.com/goki/ki/kit"
)

// GrowIncr is the minimum capacity added each time a pool or group fills
// up. Capacity at least doubles, so it stays a multiple of GrowIncr.
const GrowIncr = 100

// PoolType selects one of the two random pools
type PoolType int

//go:generate stringer -type=PoolType

var KiT_PoolType = kit.Enums.AddEnum(PoolTypeN, kit.NotBitFlag, nil)

func (ev PoolType) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PoolType) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// PosPool holds cells drawn from [0, range)
	PosPool PoolType = iota

	// NegPool holds cells drawn from [-range, 0)
	NegPool

	PoolTypeN
)

// LocList is an unordered, growable list of cell locations
type LocList struct {
	Locs []topo.Loc
}

// Add appends lc, growing capacity when full
func (ll *LocList) Add(lc topo.Loc) {
	if len(ll.Locs) == cap(ll.Locs) {
		incr := cap(ll.Locs)
		if incr < GrowIncr {
			incr = GrowIncr
		}
		nl := make([]topo.Loc, len(ll.Locs), cap(ll.Locs)+incr)
		copy(nl, ll.Locs)
		ll.Locs = nl
	}
	ll.Locs = append(ll.Locs, lc)
}

// Len returns the number of locations
func (ll *LocList) Len() int { return len(ll.Locs) }

// forgetUnit removes all weight cell locations in unit's row, keeping order
func (ll *LocList) forgetUnit(unit int) {
	n := 0
	for _, lc := range ll.Locs {
		if lc.Kind == topo.WtCell && lc.Unit == unit {
			continue
		}
		ll.Locs[n] = lc
		n++
	}
	ll.Locs = ll.Locs[:n]
}

// Group is a linked equivalence class of cells sharing one value
type Group struct {
	ID int `desc:"group id, as handed out by Table.NewLink"`
	LocList
}

// rowIndex records which lists hold weight cells of one unit's row
type rowIndex struct {
	pools  [PoolTypeN]bool
	groups map[int]bool
	linked []topo.Loc
}

// Registry holds the pools and linked groups built during a load
type Registry struct {
	Pools   [PoolTypeN]LocList `desc:"positive and negative random pools"`
	Groups  []Group            `desc:"linked groups, Groups[id-1] has id"`
	GroupOf map[topo.Loc]int   `desc:"group id of each linked cell"`

	rows map[int]*rowIndex
}

// Reset empties all pools and groups
func (rg *Registry) Reset() {
	for i := range rg.Pools {
		rg.Pools[i] = LocList{}
	}
	rg.Groups = nil
	rg.GroupOf = make(map[topo.Loc]int)
	rg.rows = make(map[int]*rowIndex)
}

// row returns the index of lc's row, nil for bias and sigma cells
func (rg *Registry) row(lc topo.Loc) *rowIndex {
	if lc.Kind != topo.WtCell {
		return nil
	}
	if rg.rows == nil {
		rg.rows = make(map[int]*rowIndex)
	}
	ri := rg.rows[lc.Unit]
	if ri == nil {
		ri = &rowIndex{groups: make(map[int]bool)}
		rg.rows[lc.Unit] = ri
	}
	return ri
}

// AddPool adds lc to pool pt
func (rg *Registry) AddPool(pt PoolType, lc topo.Loc) {
	rg.Pools[pt].Add(lc)
	if ri := rg.row(lc); ri != nil {
		ri.pools[pt] = true
	}
}

// HasRow returns true if any pool or group holds a cell of unit's row
func (rg *Registry) HasRow(unit int) bool {
	_, has := rg.rows[unit]
	return has
}

// Group returns the group with given id, creating it and any missing
// lower ids as needed.
func (rg *Registry) Group(id int) *Group {
	for len(rg.Groups) < id {
		rg.Groups = append(rg.Groups, Group{ID: len(rg.Groups) + 1})
	}
	return &rg.Groups[id-1]
}

// Link adds lc to group id. A cell belongs to at most one group: a cell
// already linked elsewhere is moved.
func (rg *Registry) Link(lc topo.Loc, id int) {
	if rg.GroupOf == nil {
		rg.GroupOf = make(map[topo.Loc]int)
	}
	if old, has := rg.GroupOf[lc]; has {
		if old == id {
			return
		}
		gp := rg.Group(old)
		n := 0
		for _, l := range gp.Locs {
			if l != lc {
				gp.Locs[n] = l
				n++
			}
		}
		gp.Locs = gp.Locs[:n]
	}
	rg.Group(id).Add(lc)
	rg.GroupOf[lc] = id
	if ri := rg.row(lc); ri != nil {
		ri.groups[id] = true
		ri.linked = append(ri.linked, lc)
	}
}

// Forget drops every pool and group entry that points into unit's row.
// Only the lists that hold cells of that row are scanned.
func (rg *Registry) Forget(unit int) {
	ri := rg.rows[unit]
	if ri == nil {
		return
	}
	for pt, has := range ri.pools {
		if has {
			rg.Pools[pt].forgetUnit(unit)
		}
	}
	for id := range ri.groups {
		rg.Groups[id-1].forgetUnit(unit)
	}
	for _, lc := range ri.linked {
		delete(rg.GroupOf, lc)
	}
	delete(rg.rows, unit)
}
