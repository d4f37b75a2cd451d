// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pats holds named pattern sets: one input vector per pattern and,
for the pattern associator, one target vector. Pattern files are
whitespace-delimited: a name followed by the input values, then the
target values when targets are read. A value is "+" (1), "-" (-1),
"." (0) or a number.
*/
package pats

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/emer/etable/etensor"
)

// Set is a named pattern set backed by etensor rows
type Set struct {
	Names  []string         `desc:"pattern names"`
	Input  *etensor.Float32 `desc:"[NPats][NInputs] input vectors"`
	Target *etensor.Float32 `desc:"[NPats][NOutputs] target vectors, nil when the set has no targets"`
}

// NewSet returns a set of npats zero patterns named p0, p1, ...
// noutputs of 0 makes a set without targets.
func NewSet(npats, ninputs, noutputs int) *Set {
	ps := &Set{Names: make([]string, npats)}
	for i := range ps.Names {
		ps.Names[i] = "p" + strconv.Itoa(i)
	}
	ps.Input = etensor.NewFloat32([]int{npats, ninputs}, nil, []string{"Pat", "Input"})
	if noutputs > 0 {
		ps.Target = etensor.NewFloat32([]int{npats, noutputs}, nil, []string{"Pat", "Target"})
	}
	return ps
}

// NPats returns the number of patterns
func (ps *Set) NPats() int {
	if ps == nil {
		return 0
	}
	return len(ps.Names)
}

// NInputs returns the length of each input vector
func (ps *Set) NInputs() int { return ps.Input.Dim(1) }

// NOutputs returns the length of each target vector, 0 without targets
func (ps *Set) NOutputs() int {
	if ps.Target == nil {
		return 0
	}
	return ps.Target.Dim(1)
}

// In returns the input vector of pattern i, sharing storage with the set
func (ps *Set) In(i int) []float32 {
	n := ps.NInputs()
	return ps.Input.Values[i*n : (i+1)*n]
}

// Targ returns the target vector of pattern i, nil without targets
func (ps *Set) Targ(i int) []float32 {
	if ps.Target == nil {
		return nil
	}
	n := ps.NOutputs()
	return ps.Target.Values[i*n : (i+1)*n]
}

// Index returns the index of the pattern with the given name, or of the
// given pattern number, and -1 if there is none.
func (ps *Set) Index(name string) int {
	for i, nm := range ps.Names {
		if nm == name {
			return i
		}
	}
	if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < ps.NPats() {
		return i
	}
	return -1
}

// ParseValue parses one pattern value
func ParseValue(tok string) (float32, bool) {
	switch tok {
	case "+":
		return 1, true
	case "-":
		return -1, true
	case ".":
		return 0, true
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, false
	}
	return float32(v), true
}

// Read reads patterns of ninputs inputs and noutputs targets (0 for
// none). On a malformed or truncated pattern it returns the complete
// patterns read before it along with a LoadError.
func Read(r io.Reader, ninputs, noutputs int) (*Set, error) {
	bs := bufio.NewScanner(r)
	bs.Buffer(make([]byte, 64*1024), 16*1024*1024)
	bs.Split(bufio.ScanWords)
	var names []string
	var in, targ []float32
	vals := func(n int, dst []float32, name string) ([]float32, error) {
		for j := 0; j < n; j++ {
			if !bs.Scan() {
				return dst, errs.New(errs.LoadError, "patterns", "pattern %q has %d values, need %d", name, j, n)
			}
			v, ok := ParseValue(bs.Text())
			if !ok {
				return dst, errs.New(errs.LoadError, "patterns", "pattern %q: bad value %q", name, bs.Text())
			}
			dst = append(dst, v)
		}
		return dst, nil
	}
	var rerr error
	for bs.Scan() {
		name := bs.Text()
		ni, nt := len(in), len(targ)
		var err error
		in, err = vals(ninputs, in, name)
		if err == nil && noutputs > 0 {
			targ, err = vals(noutputs, targ, name)
		}
		if err != nil {
			in, targ = in[:ni], targ[:nt]
			rerr = err
			break
		}
		names = append(names, name)
	}
	if err := bs.Err(); err != nil && rerr == nil {
		rerr = errs.Wrap(errs.IoError, "patterns", err)
	}
	ps := NewSet(len(names), ninputs, noutputs)
	copy(ps.Names, names)
	copy(ps.Input.Values, in)
	if ps.Target != nil {
		copy(ps.Target.Values, targ)
	}
	return ps, rerr
}

// Open reads the patterns in the named file
func Open(filename string, ninputs, noutputs int) (*Set, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, errs.Wrap(errs.IoError, "patterns", err)
	}
	defer fp.Close()
	return Read(fp, ninputs, noutputs)
}
