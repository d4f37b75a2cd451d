// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cons

import (
	"fmt"
	"strings"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/goki/kigen/ordmap"
)

// Table maps code letters to policies, in definition order.
// Letters that were never defined resolve to Fixed(0).
type Table struct {
	Codes  *ordmap.Map[byte, Policy] `desc:"code letter to policy, in definition order"`
	NLinks int                       `desc:"number of linked group ids handed out"`
}

// NewTable returns a table holding the predefined codes
func NewTable() *Table {
	tb := &Table{}
	tb.Reset()
	return tb
}

// Reset clears all user definitions and restores the predefined codes:
// r (random), p (positive pool) and n (negative pool).
func (tb *Table) Reset() {
	tb.Codes = ordmap.New[byte, Policy]()
	tb.NLinks = 0
	tb.Codes.Add('r', Policy{Kind: Random})
	tb.Codes.Add('p', Policy{Kind: Positive})
	tb.Codes.Add('n', Policy{Kind: Negative})
}

// Define sets the policy for letter, replacing any earlier definition.
// Either case may be given; definitions are stored by lowercase letter.
func (tb *Table) Define(letter byte, pol Policy) error {
	cd, ok := ParseCode(letter)
	if !ok {
		return errs.New(errs.LoadError, "constraints", "constraint code %q is not a letter", letter)
	}
	if idx, has := tb.Codes.Map[cd.Letter]; has {
		tb.Codes.Order[idx].Val = pol
		return nil
	}
	tb.Codes.Add(cd.Letter, pol)
	return nil
}

// NewLink hands out the next unused linked group id, starting at 1
func (tb *Table) NewLink() int {
	tb.NLinks++
	return tb.NLinks
}

// Policy returns the policy for a lowercase letter, Fixed(0) if undefined
func (tb *Table) Policy(letter byte) Policy {
	if idx, has := tb.Codes.Map[letter]; has {
		return tb.Codes.Order[idx].Val
	}
	return Fix(0)
}

// Defined returns true if letter has an explicit or predefined policy
func (tb *Table) Defined(letter byte) bool {
	_, has := tb.Codes.Map[letter]
	return has
}

// String lists the table in definition order
func (tb *Table) String() string {
	var b strings.Builder
	for i := 0; i < tb.Codes.Len(); i++ {
		kv := tb.Codes.Order[i]
		fmt.Fprintf(&b, "%c\t%v\n", kv.Key, kv.Val)
	}
	return b.String()
}
