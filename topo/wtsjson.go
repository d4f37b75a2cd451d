// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/emer/emergent/weights"
	"github.com/goki/ki/indent"
)

// Names used in the emergent weights JSON layout. The whole store is one
// layer receiving one projection from itself, plus pseudo-projections
// holding biases and sigmas as one-cell receivers.
const (
	JSONLayer = "Units"
	JSONBias  = "Bias"
	JSONSigma = "Sigma"
)

// WriteWtsJSON writes the store in the emergent weights JSON format,
// under the given network name.
func (st *Store) WriteWtsJSON(w io.Writer, name string) error {
	depth := 0
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Network\": %q,\n", name)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"MetaData\": {\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"NUnits\": \"%d\"\n", st.NUnits)))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("},\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Layers\": [\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Layer\": %q,\n", JSONLayer)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Prjns\": [\n"))
	depth++
	st.writePrjnJSON(w, depth, JSONLayer, func(ri int) (int, []float32) {
		return st.RConSt[ri], st.Wts[ri]
	})
	if st.HasBias {
		w.Write([]byte(",\n"))
		st.writePrjnJSON(w, depth, JSONBias, func(ri int) (int, []float32) {
			return ri, st.Bias[ri : ri+1]
		})
	}
	if st.HasSigma {
		w.Write([]byte(",\n"))
		st.writePrjnJSON(w, depth, JSONSigma, func(ri int) (int, []float32) {
			return ri, st.Sigma[ri : ri+1]
		})
	}
	w.Write([]byte("\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	_, err := w.Write([]byte("}\n"))
	if err != nil {
		return errs.Wrap(errs.IoError, "save weights", err)
	}
	return nil
}

// writePrjnJSON writes one projection, with row giving the first sender
// and the values for each receiving unit.
func (st *Store) writePrjnJSON(w io.Writer, depth int, from string, row func(ri int) (int, []float32)) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"From\": %q,\n", from)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Rs\": [\n"))
	depth++
	for ri := 0; ri < st.NUnits; ri++ {
		first, vals := row(ri)
		nc := len(vals)
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("{\n"))
		depth++
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"Ri\": %v,\n", ri)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte(fmt.Sprintf("\"N\": %v,\n", nc)))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Si\": [ "))
		for ci := 0; ci < nc; ci++ {
			w.Write([]byte(fmt.Sprintf("%v", first+ci)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("],\n"))
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("\"Wt\": [ "))
		for ci := 0; ci < nc; ci++ {
			w.Write([]byte(strconv.FormatFloat(float64(vals[ci]), 'g', weights.Prec, 32)))
			if ci == nc-1 {
				w.Write([]byte(" "))
			} else {
				w.Write([]byte(", "))
			}
		}
		w.Write([]byte("]\n"))
		depth--
		w.Write(indent.TabBytes(depth))
		if ri == st.NUnits-1 {
			w.Write([]byte("}\n"))
		} else {
			w.Write([]byte("},\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}"))
}

// ReadWtsJSON reads weights in the emergent weights JSON format and
// applies them with SetWts.
func (st *Store) ReadWtsJSON(r io.Reader) error {
	nw, err := weights.NetReadJSON(r)
	if err != nil {
		return errs.Wrap(errs.IoError, "restore weights", err)
	}
	return st.SetWts(nw)
}

// SetWts sets values from decoded weights. Receivers or senders that fall
// outside the current windows produce an IoError after all valid values
// have been applied.
func (st *Store) SetWts(nw *weights.Network) error {
	var err error
	for li := range nw.Layers {
		lw := &nw.Layers[li]
		if lw.Layer != JSONLayer {
			continue
		}
		for pi := range lw.Prjns {
			pw := &lw.Prjns[pi]
			for i := range pw.Rs {
				pr := &pw.Rs[i]
				if !st.InRange(pr.Ri) {
					err = errs.New(errs.IoError, "restore weights", "%s: unit %d", errWtsFile, pr.Ri)
					continue
				}
				for ci := range pr.Si {
					if ci >= len(pr.Wt) {
						break
					}
					var lc Loc
					switch pw.From {
					case JSONBias:
						lc = BiasLoc(pr.Ri)
					case JSONSigma:
						lc = SigmaLoc(pr.Ri)
					default:
						k, ok := st.Index(pr.Ri, pr.Si[ci])
						if !ok {
							err = errs.New(errs.IoError, "restore weights", "%s: sender %d to unit %d", errWtsFile, pr.Si[ci], pr.Ri)
							continue
						}
						lc = WtLoc(pr.Ri, k)
					}
					st.SetValue(lc, pr.Wt[ci])
				}
			}
		}
	}
	return err
}

// SaveWtsJSON saves weights to the named file in JSON format
func (st *Store) SaveWtsJSON(filename, name string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "save weights", err)
	}
	defer fp.Close()
	bw := bufio.NewWriter(fp)
	err = st.WriteWtsJSON(bw, name)
	bw.Flush()
	return err
}

// OpenWtsJSON restores weights from the named JSON file
func (st *Store) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "restore weights", err)
	}
	defer fp.Close()
	return st.ReadWtsJSON(bufio.NewReader(fp))
}
