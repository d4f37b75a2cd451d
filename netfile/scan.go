// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package netfile

import (
	"bufio"
	"io"
	"strings"

	"github.com/dagfinndybvig/renewedPDP/errs"
)

// scanner yields whitespace-delimited tokens while keeping track of
// line boundaries, which the constraints block and trailing fill
// characters depend on.
type scanner struct {
	lines  [][]string
	ln, fi int
	last   int
}

func newScanner(r io.Reader) (*scanner, error) {
	sc := &scanner{last: -1}
	bs := bufio.NewScanner(r)
	bs.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for bs.Scan() {
		sc.lines = append(sc.lines, strings.Fields(bs.Text()))
	}
	if err := bs.Err(); err != nil {
		return nil, errs.Wrap(errs.IoError, "read network", err)
	}
	return sc, nil
}

// next returns the next token on any line
func (sc *scanner) next() (string, bool) {
	for sc.ln < len(sc.lines) {
		if sc.fi < len(sc.lines[sc.ln]) {
			tok := sc.lines[sc.ln][sc.fi]
			sc.last = sc.ln
			sc.fi++
			return tok, true
		}
		sc.ln++
		sc.fi = 0
	}
	return "", false
}

// sameLine returns the next token only if it is on the line of the last
// token returned.
func (sc *scanner) sameLine() (string, bool) {
	tok, ok := sc.peekSameLine()
	if ok {
		sc.fi++
	}
	return tok, ok
}

// peekSameLine is sameLine without consuming the token
func (sc *scanner) peekSameLine() (string, bool) {
	if sc.ln != sc.last || sc.ln >= len(sc.lines) || sc.fi >= len(sc.lines[sc.ln]) {
		return "", false
	}
	return sc.lines[sc.ln][sc.fi], true
}

// restOfLine returns the remaining tokens on the line of the last token
func (sc *scanner) restOfLine() []string {
	var toks []string
	for {
		tok, ok := sc.sameLine()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

// line returns the 1-based line of the last token returned
func (sc *scanner) line() int {
	return sc.last + 1
}

// skipTo consumes tokens up to and including tok; false at end of input
func (sc *scanner) skipTo(tok string) bool {
	for {
		t, ok := sc.next()
		if !ok {
			return false
		}
		if t == tok {
			return true
		}
	}
}
