// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// CellKind says which array a Loc addresses
type CellKind int

//go:generate stringer -type=CellKind

var KiT_CellKind = kit.Enums.AddEnum(CellKindN, kit.NotBitFlag, nil)

func (ev CellKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *CellKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// WtCell is a weight cell at (Unit, Slot) in the unit's row
	WtCell CellKind = iota

	// BiasCell is the unit's bias
	BiasCell

	// SigmaCell is the unit's sigma
	SigmaCell

	CellKindN
)

// Loc is an index-based cell location, resolved through the Store at use
// time. It stays meaningful across reallocations of other rows.
type Loc struct {
	Kind CellKind
	Unit int
	Slot int
}

// WtLoc returns the location of row index k of unit ri
func WtLoc(ri, k int) Loc { return Loc{Kind: WtCell, Unit: ri, Slot: k} }

// BiasLoc returns the location of unit ri's bias
func BiasLoc(ri int) Loc { return Loc{Kind: BiasCell, Unit: ri, Slot: -1} }

// SigmaLoc returns the location of unit ri's sigma
func SigmaLoc(ri int) Loc { return Loc{Kind: SigmaCell, Unit: ri, Slot: -1} }

func (lc Loc) String() string {
	switch lc.Kind {
	case WtCell:
		return fmt.Sprintf("wt[%d][%d]", lc.Unit, lc.Slot)
	case BiasCell:
		return fmt.Sprintf("bias[%d]", lc.Unit)
	default:
		return fmt.Sprintf("sigma[%d]", lc.Unit)
	}
}

// Valid returns true if loc addresses an existing cell
func (st *Store) Valid(lc Loc) bool {
	if !st.InRange(lc.Unit) {
		return false
	}
	if lc.Kind == WtCell {
		return lc.Slot >= 0 && lc.Slot < st.RConN[lc.Unit]
	}
	return true
}

// Value returns the value at loc, which must be Valid
func (st *Store) Value(lc Loc) float32 {
	switch lc.Kind {
	case WtCell:
		return st.Wts[lc.Unit][lc.Slot]
	case BiasCell:
		return st.Bias[lc.Unit]
	default:
		return st.Sigma[lc.Unit]
	}
}

// SetValue sets the value at loc, which must be Valid
func (st *Store) SetValue(lc Loc, val float32) {
	switch lc.Kind {
	case WtCell:
		st.Wts[lc.Unit][lc.Slot] = val
	case BiasCell:
		st.Bias[lc.Unit] = val
	default:
		st.Sigma[lc.Unit] = val
	}
}

// Lrate returns the learning rate at loc. Sigma cells never learn.
func (st *Store) Lrate(lc Loc) float32 {
	switch lc.Kind {
	case WtCell:
		return st.Lrates[lc.Unit][lc.Slot]
	case BiasCell:
		return st.BLrates[lc.Unit]
	default:
		return 0
	}
}

// SetLrate sets the learning rate at loc; no-op for sigma cells
func (st *Store) SetLrate(lc Loc, lrate float32) {
	switch lc.Kind {
	case WtCell:
		st.Lrates[lc.Unit][lc.Slot] = lrate
	case BiasCell:
		st.BLrates[lc.Unit] = lrate
	}
}

// Code returns the origin code at loc
func (st *Store) Code(lc Loc) byte {
	switch lc.Kind {
	case WtCell:
		return st.Codes[lc.Unit][lc.Slot]
	case BiasCell:
		return st.BCodes[lc.Unit]
	default:
		return st.SCodes[lc.Unit]
	}
}

// SetCode records the origin code at loc
func (st *Store) SetCode(lc Loc, code byte) {
	switch lc.Kind {
	case WtCell:
		st.Codes[lc.Unit][lc.Slot] = code
	case BiasCell:
		st.BCodes[lc.Unit] = code
	default:
		st.SCodes[lc.Unit] = code
	}
}
