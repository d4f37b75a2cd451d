// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pats

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/policy"
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
)

// Flip copies src into dst, negating each value with probability pflip
func Flip(dst, src []float32, pflip float32, smp *policy.Sampler) {
	for i, v := range src {
		if smp.Float() > pflip {
			dst[i] = v
		} else {
			dst[i] = -v
		}
	}
}

// Noise copies src into dst, adding uniform noise in (-noise, noise]
func Noise(dst, src []float32, noise float32, smp *policy.Sampler) {
	for i, v := range src {
		dst[i] = v + (1-2*smp.Float())*noise
	}
}

// MakeRandom sets every input to +1 with probability frac, else -1
func (ps *Set) MakeRandom(frac float32, smp *policy.Sampler) {
	for i := range ps.Input.Values {
		if smp.Float() < frac {
			ps.Input.Values[i] = 1
		} else {
			ps.Input.Values[i] = -1
		}
	}
}

// MakePermuted gives every input and target row exactly nOn on values,
// at randomly permuted positions. Positions are drawn from a source
// seeded with seed, so the same seed gives the same set.
func (ps *Set) MakePermuted(nOn int, onVal, offVal float32, seed int64) {
	rnd := erand.NewSysRand(seed)
	permutedRows(ps.Input, nOn, onVal, offVal, rnd)
	if ps.Target != nil {
		permutedRows(ps.Target, nOn, onVal, offVal, rnd)
	}
}

// permutedRows sets nOn cells of each row to onVal and the rest to offVal,
// reshuffling the on positions from rnd for every row
func permutedRows(tsr *etensor.Float32, nOn int, onVal, offVal float32, rnd erand.Rand) {
	rows, cells := tsr.RowCellSize()
	if rows == 0 || cells == 0 {
		return
	}
	pord := rnd.Perm(cells, -1)
	for rw := 0; rw < rows; rw++ {
		row := tsr.Values[rw*cells : (rw+1)*cells]
		for i, ci := range pord {
			if i < nOn {
				row[ci] = onVal
			} else {
				row[ci] = offVal
			}
		}
		erand.PermuteInts(pord, rnd)
	}
}

// Write writes the set in the pattern file format
func (ps *Set) Write(w io.Writer) error {
	for i, nm := range ps.Names {
		line := nm
		for _, v := range ps.In(i) {
			line += " " + formatValue(v)
		}
		for _, v := range ps.Targ(i) {
			line += " " + formatValue(v)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return errs.Wrap(errs.IoError, "patterns", err)
		}
	}
	return nil
}

func formatValue(v float32) string {
	switch v {
	case 1:
		return "+"
	case -1:
		return "-"
	case 0:
		return "."
	}
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
