// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"errors"
	"io"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/dagfinndybvig/renewedPDP/topo"
)

// resetActs sets every activation to rest and clears net inputs,
// internal inputs and errors
func (ss *Session) resetActs(rest float32) {
	us := ss.State
	for i := range us.Act {
		us.Act[i] = rest
		us.Net[i] = 0
		us.IntIn[i] = 0
		us.Err[i] = 0
	}
}

// buildDefault builds the topology of a model that can run without a
// network description: AA is fully connected with zero weights, CL
// connects every output to every input with random weights normalized
// per output. The other models need a description.
func (ss *Session) buildDefault() error {
	ss.reseed()
	ss.Res.Reset()
	ss.Res.Lrate = ss.Lrate
	ss.Res.Wrange = ss.Wrange
	n := ss.NUnits()
	if n <= 0 {
		return errs.New(errs.LoadError, "network", "nunits must be set to build a default network")
	}
	st := topo.NewStore(n)
	switch ss.Type {
	case AA:
		for ri := 0; ri < n; ri++ {
			if err := st.SetWindow(ri, 0, n); err != nil {
				return err
			}
			for k := 0; k < n; k++ {
				if err := ss.Res.Materialize(st, topo.WtLoc(ri, k), 'w'); err != nil {
					return err
				}
			}
		}
	case CL:
		ss.Store = st
		if err := ss.checkSizes(); err != nil {
			ss.Store = nil
			return err
		}
		nin := ss.Inputs
		for ri := nin; ri < nin+ss.Outputs; ri++ {
			if err := st.SetWindow(ri, 0, nin); err != nil {
				ss.Store = nil
				return err
			}
			sum := float32(0)
			for k := 0; k < nin; k++ {
				if err := ss.Res.Materialize(st, topo.WtLoc(ri, k), 'r'); err != nil {
					ss.Store = nil
					return err
				}
				st.Wts[ri][k] = ss.Smp.Float()
				sum += st.Wts[ri][k]
			}
			if sum > 0 {
				for k := range st.Wts[ri] {
					st.Wts[ri][k] /= sum
				}
			}
		}
	default:
		return errs.New(errs.LoadError, "network", "%s needs a network description", ss.Type)
	}
	ss.Store = st
	ss.Log.Info("default network", "model", ss.Type.String(), "nunits", n, "ncons", st.NCons())
	ss.allocState()
	return nil
}

// ResetWeights rebuilds the network from the loaded description (or the
// default network) with the current seed, and resets the scheduler.
// The same seed gives the same initial weights.
func (ss *Session) ResetWeights() error {
	var err error
	switch {
	case ss.desc != nil:
		err = ss.buildFromDesc()
	case ss.Store != nil:
		err = ss.buildDefault()
	}
	ss.Sched.Reset()
	return err
}

// NewStart draws a new seed and then resets the weights with it
func (ss *Session) NewStart() error {
	ss.Seed = ss.Smp.Rand.Uint64()
	ss.Log.Info("new start", "seed", ss.Seed)
	return ss.ResetWeights()
}

func (ss *Session) needNetwork(op string) error {
	if ss.Store == nil {
		return errs.New(errs.TopologyError, op, "no network")
	}
	return nil
}

// SaveWeights writes every weight, bias and sigma value in text form
func (ss *Session) SaveWeights(w io.Writer) error {
	if err := ss.needNetwork("save weights"); err != nil {
		return err
	}
	return ss.Store.WriteWts(w)
}

// RestoreWeights reads values written by SaveWeights into the current
// network, then brings linked groups back in sync
func (ss *Session) RestoreWeights(r io.Reader) error {
	if err := ss.needNetwork("restore weights"); err != nil {
		return err
	}
	err := ss.Store.ReadWts(r)
	return errors.Join(err, ss.Res.SyncAll(ss.Store))
}

// SaveWeightsJSON writes the network in the emergent weights JSON format
func (ss *Session) SaveWeightsJSON(w io.Writer) error {
	if err := ss.needNetwork("save weights"); err != nil {
		return err
	}
	return ss.Store.WriteWtsJSON(w, ss.Type.String())
}

// RestoreWeightsJSON reads weights written by SaveWeightsJSON
func (ss *Session) RestoreWeightsJSON(r io.Reader) error {
	if err := ss.needNetwork("restore weights"); err != nil {
		return err
	}
	err := ss.Store.ReadWtsJSON(r)
	return errors.Join(err, ss.Res.SyncAll(ss.Store))
}

// Inspect sends read-only copies of every weight row and bias to insp
func (ss *Session) Inspect(insp topo.Inspector) error {
	if err := ss.needNetwork("inspect"); err != nil {
		return err
	}
	ss.Store.Expose(insp)
	return nil
}

// SizeReport describes the size of the network, per unit if perUnit
func (ss *Session) SizeReport(perUnit bool) string {
	if ss.Store == nil {
		return "no network\n"
	}
	return ss.Store.SizeReport(perUnit)
}
