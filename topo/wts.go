// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/dagfinndybvig/renewedPDP/errs"
)

// errWtsFile is the message for any restore from a file that does not
// match the current network.
const errWtsFile = "weight file is not correct for this network"

// WriteWts writes every weight in row-major order (receiving unit, then
// window position), then one bias per unit if HasBias, then one sigma
// per unit if HasSigma, one value per line.
func (st *Store) WriteWts(w io.Writer) error {
	bw := bufio.NewWriter(w)
	put := func(v float32) {
		bw.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		bw.WriteByte('\n')
	}
	for ri := 0; ri < st.NUnits; ri++ {
		for _, wt := range st.Wts[ri] {
			put(wt)
		}
	}
	if st.HasBias {
		for _, b := range st.Bias {
			put(b)
		}
	}
	if st.HasSigma {
		for _, s := range st.Sigma {
			put(s)
		}
	}
	if err := bw.Flush(); err != nil {
		return errs.Wrap(errs.IoError, "save weights", err)
	}
	return nil
}

// ReadWts restores values written by WriteWts. Restore is not atomic:
// if the file runs short or holds a non-numeric token, cells read before
// the failure keep their new values and an IoError is returned.
func (st *Store) ReadWts(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	next := func() (float32, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, errs.Wrap(errs.IoError, "restore weights", err)
			}
			return 0, errs.New(errs.IoError, "restore weights", errWtsFile)
		}
		v, err := strconv.ParseFloat(sc.Text(), 32)
		if err != nil {
			return 0, errs.New(errs.IoError, "restore weights", "%s: bad value %q", errWtsFile, sc.Text())
		}
		return float32(v), nil
	}
	for ri := 0; ri < st.NUnits; ri++ {
		row := st.Wts[ri]
		for k := range row {
			v, err := next()
			if err != nil {
				return err
			}
			row[k] = v
		}
	}
	if st.HasBias {
		for i := range st.Bias {
			v, err := next()
			if err != nil {
				return err
			}
			st.Bias[i] = v
		}
	}
	if st.HasSigma {
		for i := range st.Sigma {
			v, err := next()
			if err != nil {
				return err
			}
			st.Sigma[i] = v
		}
	}
	return nil
}

// SaveWts saves weights to the named file
func (st *Store) SaveWts(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "save weights", err)
	}
	defer fp.Close()
	return st.WriteWts(fp)
}

// OpenWts restores weights from the named file
func (st *Store) OpenWts(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "restore weights", err)
	}
	defer fp.Close()
	return st.ReadWts(bufio.NewReader(fp))
}
