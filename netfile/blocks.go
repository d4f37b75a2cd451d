// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netfile

import (
	"strconv"

	"github.com/dagfinndybvig/renewedPDP/cons"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/topo"
)

// definitions reads name value pairs until end
func (ld *Loader) definitions() error {
	for {
		name, err := ld.token("definitions")
		if err != nil {
			return err
		}
		if name == "end" {
			ld.blockEnd = true
			return nil
		}
		val, err := ld.token("definitions")
		if err != nil {
			return err
		}
		if val == "end" {
			ld.blockEnd = true
			return errs.AtLine(errs.LoadError, "definitions", ld.sc.line(), "no value given for %q", name)
		}
		if err := ld.Defs.SetNamedScalar(name, val); err != nil {
			return err
		}
	}
}

// constraints reads one code definition per line until end:
// letter [value] [random [positive|negative]] [linked]
func (ld *Loader) constraints() error {
	for {
		tok, err := ld.token("constraints")
		if err != nil {
			return err
		}
		if tok == "end" {
			ld.blockEnd = true
			return nil
		}
		if len(tok) != 1 {
			return errs.AtLine(errs.LoadError, "constraints", ld.sc.line(), "constraint code %q must be a single letter", tok)
		}
		pol := cons.Fix(0)
		random, pos, neg := false, false, false
		for _, kw := range ld.sc.restOfLine() {
			switch kw {
			case "random":
				random = true
			case "positive":
				pos = true
			case "negative":
				neg = true
			case "linked":
				pol.Link = ld.Res.Table.NewLink()
			default:
				v, err := strconv.ParseFloat(kw, 32)
				if err != nil {
					return errs.AtLine(errs.LoadError, "constraints", ld.sc.line(), "unknown constraint keyword %q", kw)
				}
				pol.Val = float32(v)
			}
		}
		// positive and negative only select a pool for random codes
		switch {
		case random && pos:
			pol.Kind = cons.Positive
		case random && neg:
			pol.Kind = cons.Negative
		case random:
			pol.Kind = cons.Random
		}
		if err := ld.Res.DefineCode(tok[0], pol); err != nil {
			return err
		}
	}
}

// network reads one or more blocks of rows. The first block may start
// directly with rows covering the whole network; every later block must
// start with a % directive.
func (ld *Loader) network() error {
	st, err := ld.store("network")
	if err != nil {
		return err
	}
	n := st.NUnits
	for block := 0; ; block++ {
		tok, err := ld.token("network")
		if err != nil {
			return err
		}
		if tok == "end" {
			ld.blockEnd = true
			if block == 0 {
				return errs.AtLine(errs.LoadError, "network", ld.sc.line(), "empty network section")
			}
			ld.nblocks += block
			return nil
		}
		rstart, rnum, sstart, snum := 0, n, 0, n
		var fill byte
		first := ""
		if tok[0] == '%' {
			vals, err := ld.ints("network", 4)
			if err != nil {
				return err
			}
			rstart, rnum, sstart, snum = vals[0], vals[1], vals[2], vals[3]
			fill = ld.fill(tok)
			if err := ld.checkRange("network", "row", rstart, rnum); err != nil {
				return err
			}
			if err := ld.checkRange("network", "column", sstart, snum); err != nil {
				return err
			}
		} else {
			if block > 0 {
				return errs.AtLine(errs.LoadError, "network", ld.sc.line(), "block %d must start with a %% directive", block)
			}
			first = tok
		}
		for r := rstart; r < rstart+rnum; r++ {
			row := first
			if row == "" {
				row, err = ld.codeString("network", fill, snum)
				if err != nil {
					return err
				}
			}
			first = ""
			if err := ld.checkChars("network", row, snum); err != nil {
				return err
			}
			if err := ld.row(st, r, sstart, snum, row); err != nil {
				return err
			}
		}
	}
}

// row re-windows unit r and materializes its cells from s
func (ld *Loader) row(st *topo.Store, r, sstart, snum int, s string) error {
	ld.Res.Forget(r)
	if err := st.SetWindow(r, sstart, snum); err != nil {
		return err
	}
	for k := 0; k < snum; k++ {
		ch := s[k]
		lc := topo.WtLoc(r, k)
		if ch == '.' {
			st.SetCode(lc, '.')
			continue
		}
		if err := ld.Res.Materialize(st, lc, ch); err != nil {
			return err
		}
	}
	return nil
}

// unitBlocks reads per-unit code strings for biases and sigmas, each
// optionally narrowed by % row_start row_count, and applies fun to each
// non-. character.
func (ld *Loader) unitBlocks(sect string, fun func(st *topo.Store, unit int, ch byte) error) error {
	st, err := ld.store(sect)
	if err != nil {
		return err
	}
	for {
		tok, err := ld.token(sect)
		if err != nil {
			return err
		}
		if tok == "end" {
			ld.blockEnd = true
			return nil
		}
		rstart, rnum := 0, st.NUnits
		s := tok
		if tok[0] == '%' {
			vals, err := ld.ints(sect, 2)
			if err != nil {
				return err
			}
			rstart, rnum = vals[0], vals[1]
			fill := ld.fill(tok)
			if err := ld.checkRange(sect, "unit", rstart, rnum); err != nil {
				return err
			}
			s, err = ld.codeString(sect, fill, rnum)
			if err != nil {
				return err
			}
		}
		if err := ld.checkChars(sect, s, rnum); err != nil {
			return err
		}
		for j := 0; j < rnum; j++ {
			if s[j] == '.' {
				continue
			}
			if err := fun(st, rstart+j, s[j]); err != nil {
				return err
			}
		}
	}
}

func (ld *Loader) biases() error {
	err := ld.unitBlocks("biases", func(st *topo.Store, unit int, ch byte) error {
		return ld.Res.Materialize(st, topo.BiasLoc(unit), ch)
	})
	if ld.st != nil {
		ld.st.HasBias = true
	}
	return err
}

func (ld *Loader) sigmas() error {
	err := ld.unitBlocks("sigmas", func(st *topo.Store, unit int, ch byte) error {
		return ld.Res.MaterializeSigma(st, unit, ch)
	})
	if ld.st != nil {
		ld.st.HasSigma = true
	}
	return err
}
