// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package netfile loads network descriptions: block-structured text with
definitions:, constraints:, network:, biases: and sigmas: sections, each
closed by a line "end".

	definitions:
	nunits 4
	end
	constraints:
	a linked
	w 0.5
	end
	network:
	%r 2 2 0 2
	end
	biases:
	..nn
	end

A malformed section is abandoned at its first error and reported as a
LoadError; sections loaded before or after it stand.
*/
package netfile

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dagfinndybvig/renewedPDP/cons"
	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/topo"
)

// Defs is the collaborator that owns named configuration scalars.
// The definitions block sets them by name and the loader reads the unit
// count back when it allocates the store.
type Defs interface {
	SetNamedScalar(name, val string) error
	NUnits() int
}

// Loader parses network descriptions into a topo.Store, using Res for
// code policies, pools and linked groups.
type Loader struct {
	Defs Defs           `desc:"named scalar collaborator"`
	Res  *cons.Resolver `desc:"constraint resolver, reset at the start of each load"`
	Log  *slog.Logger   `desc:"logger for section progress and errors"`

	sc       *scanner
	st       *topo.Store
	nblocks  int
	blockEnd bool
}

// NewLoader returns a loader for the given collaborators
func NewLoader(defs Defs, res *cons.Resolver, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{Defs: defs, Res: res, Log: log}
}

// Load reads a whole description. It returns the store built (nil if no
// topology section was loaded) and all section errors joined.
func (ld *Loader) Load(r io.Reader) (*topo.Store, error) {
	sc, err := newScanner(r)
	if err != nil {
		return nil, err
	}
	ld.sc = sc
	ld.st = nil
	ld.nblocks = 0
	ld.Res.Reset()

	var lerrs []error
	for {
		tok, ok := sc.next()
		if !ok {
			break
		}
		sect := strings.TrimSuffix(tok, ":")
		var fun func() error
		switch sect {
		case "end":
			continue
		case "definitions":
			fun = ld.definitions
		case "constraints":
			fun = ld.constraints
		case "network":
			fun = ld.network
		case "biases":
			fun = ld.biases
		case "sigmas":
			fun = ld.sigmas
		default:
			e := errs.AtLine(errs.LoadError, "description", sc.line(), "unknown section %q", tok)
			ld.Log.Error("network load", "err", e)
			lerrs = append(lerrs, e)
			continue
		}
		ld.blockEnd = false
		if err := fun(); err != nil {
			ld.Log.Error("network load", "section", sect, "err", err)
			lerrs = append(lerrs, err)
			if !ld.blockEnd {
				sc.skipTo("end")
			}
			continue
		}
		ld.Log.Debug("network load", "section", sect, "line", sc.line())
	}
	if ld.st != nil {
		if err := ld.Res.SyncAll(ld.st); err != nil {
			lerrs = append(lerrs, err)
		}
	}
	return ld.st, errors.Join(lerrs...)
}

// OpenFile loads the description in the named file
func (ld *Loader) OpenFile(filename string) (*topo.Store, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "read network", err)
	}
	defer fp.Close()
	return ld.Load(fp)
}

// store returns the store, allocating it from the current unit count on
// first use.
func (ld *Loader) store(sect string) (*topo.Store, error) {
	if ld.st != nil {
		return ld.st, nil
	}
	n := ld.Defs.NUnits()
	if n <= 0 {
		return nil, errs.AtLine(errs.LoadError, sect, ld.sc.line(), "nunits must be defined before %s", sect)
	}
	ld.st = topo.NewStore(n)
	return ld.st, nil
}

// token returns the next token in a section, or a premature end error
func (ld *Loader) token(sect string) (string, error) {
	tok, ok := ld.sc.next()
	if !ok {
		return "", errs.AtLine(errs.LoadError, sect, ld.sc.line(), "premature end of input")
	}
	return tok, nil
}

// ints reads n integer tokens
func (ld *Loader) ints(sect string, n int) ([]int, error) {
	vals := make([]int, n)
	for i := range vals {
		tok, err := ld.token(sect)
		if err != nil {
			return nil, err
		}
		if tok == "end" {
			ld.blockEnd = true
			return nil, errs.AtLine(errs.LoadError, sect, ld.sc.line(), "premature end of %s directive", sect)
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errs.AtLine(errs.LoadError, sect, ld.sc.line(), "expected integer, got %q", tok)
		}
		vals[i] = v
	}
	return vals, nil
}

// fill returns the fill character of a % directive: attached to the %
// (as in %r) or as a single trailing token on the same line.
func (ld *Loader) fill(dir string) byte {
	if len(dir) > 1 {
		return dir[1]
	}
	if tok, ok := ld.sc.peekSameLine(); ok && len(tok) == 1 {
		ld.sc.sameLine()
		return tok[0]
	}
	return 0
}

// checkRange validates a [start, start+num) unit range
func (ld *Loader) checkRange(sect, what string, start, num int) error {
	n := ld.st.NUnits
	if start < 0 || num < 0 || start+num > n {
		return errs.AtLine(errs.LoadError, sect, ld.sc.line(), "%s range [%d, %d) out of range [0, %d)", what, start, start+num, n)
	}
	return nil
}

// codeString returns the per-unit string for num units: synthesized
// from fill, or the next token.
func (ld *Loader) codeString(sect string, fill byte, num int) (string, error) {
	if fill != 0 {
		return strings.Repeat(string(fill), num), nil
	}
	tok, err := ld.token(sect)
	if err != nil {
		return "", err
	}
	if tok == "end" {
		ld.blockEnd = true
		return "", errs.AtLine(errs.LoadError, sect, ld.sc.line(), "premature end of %s block", sect)
	}
	return tok, nil
}

// checkChars validates that s has num code characters
func (ld *Loader) checkChars(sect, s string, num int) error {
	if len(s) < num {
		return errs.AtLine(errs.LoadError, sect, ld.sc.line(), "insufficient characters: %q has %d, need %d", s, len(s), num)
	}
	for i := 0; i < num; i++ {
		ch := s[i]
		if ch == '.' {
			continue
		}
		if _, ok := cons.ParseCode(ch); !ok {
			return errs.AtLine(errs.LoadError, sect, ld.sc.line(), "non-alphabetic character %q in %q", ch, s)
		}
	}
	return nil
}

// Blocks returns the number of network blocks read by the last Load
func (ld *Loader) Blocks() int {
	return ld.nblocks
}
