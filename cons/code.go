// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cons is the constraint resolver: it maps the single-letter codes
of the network description language to value policies, draws initial
values, and keeps the positive / negative random pools and the linked
groups that tie cells to one shared value.

Pool and group members are stored as topo.Loc indices and resolved
through the topo.Store at use time.
*/
package cons

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// ValueKind is how a code's initial value is produced
type ValueKind int

//go:generate stringer -type=ValueKind

var KiT_ValueKind = kit.Enums.AddEnum(ValueKindN, kit.NotBitFlag, nil)

func (ev ValueKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ValueKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Fixed uses Policy.Val as is
	Fixed ValueKind = iota

	// Random draws uniformly from [-range/2, range/2)
	Random

	// Positive draws uniformly from [0, range) and joins the positive pool
	Positive

	// Negative draws uniformly from [-range, 0) and joins the negative pool
	Negative

	ValueKindN
)

// Policy is the value policy attached to one code letter.
// Trainability is not part of the policy: it comes from the case of the
// letter at each use site.
type Policy struct {
	Kind  ValueKind `desc:"how the initial value is produced"`
	Val   float32   `desc:"value for Fixed, also used verbatim as a sigma magnitude"`
	Range float32   `desc:"range for the random kinds, 0 = use the resolver's Wrange"`
	Link  int       `desc:"linked group id, 0 = not linked"`
}

// Fix returns a Fixed policy with value val
func Fix(val float32) Policy { return Policy{Kind: Fixed, Val: val} }

// Linked returns true if cells with this policy share one value
func (pl *Policy) Linked() bool { return pl.Link > 0 }

// Pooled returns the pool used by this policy, and false if none
func (pl *Policy) Pooled() (PoolType, bool) {
	switch pl.Kind {
	case Positive:
		return PosPool, true
	case Negative:
		return NegPool, true
	}
	return PoolTypeN, false
}

func (pl Policy) String() string {
	s := pl.Kind.String()
	if pl.Kind == Fixed {
		s = fmt.Sprintf("%s(%g)", s, pl.Val)
	}
	if pl.Linked() {
		s += fmt.Sprintf(" linked(%d)", pl.Link)
	}
	return s
}

// Code is a use-site character split into its letter and trainability.
type Code struct {
	Letter    byte `desc:"lowercase code letter"`
	Trainable bool `desc:"lowercase at the use site: the cell gets the current learning rate"`
}

// ParseCode splits a description character into letter and trainability.
// Returns false for anything that is not an ASCII letter.
func ParseCode(ch byte) (Code, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return Code{Letter: ch, Trainable: true}, true
	case ch >= 'A' && ch <= 'Z':
		return Code{Letter: ch - 'A' + 'a', Trainable: false}, true
	}
	return Code{}, false
}

// Char returns the description character for the code
func (cd Code) Char() byte {
	if cd.Trainable {
		return cd.Letter
	}
	return cd.Letter - 'a' + 'A'
}
