// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vars is a minimal table of named, typed scalars that a session
// installs so the definitions block of a network description can set
// unit counts and other parameters by name.
package vars

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/goki/kigen/ordmap"
	"github.com/goki/ki/kit"
)

// Var is one installed scalar
type Var struct {
	Name string `desc:"name used in definitions blocks"`
	Ptr  any    `desc:"pointer to the scalar"`
	Desc string `desc:"description"`
}

// Value returns the current value of the scalar
func (vr *Var) Value() any {
	return reflect.ValueOf(vr.Ptr).Elem().Interface()
}

// Table holds installed scalars in installation order
type Table struct {
	Vars *ordmap.Map[string, *Var]
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{Vars: ordmap.New[string, *Var]()}
}

// Install adds a scalar under name. ptr must be a pointer to a numeric,
// bool or string value.
func (vt *Table) Install(name string, ptr any, desc string) {
	if idx, has := vt.Vars.Map[name]; has {
		vt.Vars.Order[idx].Val = &Var{Name: name, Ptr: ptr, Desc: desc}
		return
	}
	vt.Vars.Add(name, &Var{Name: name, Ptr: ptr, Desc: desc})
}

// Var returns the named scalar, and false if not installed
func (vt *Table) Var(name string) (*Var, bool) {
	idx, has := vt.Vars.Map[name]
	if !has {
		return nil, false
	}
	return vt.Vars.Order[idx].Val, true
}

// SetNamedScalar parses val into the named scalar.
// Returns a NameNotFound error for unknown names and a LoadError for
// values that do not convert.
func (vt *Table) SetNamedScalar(name, val string) error {
	vr, ok := vt.Var(name)
	if !ok {
		return errs.New(errs.NameNotFound, "definitions", "no variable named %q", name)
	}
	if !kit.SetRobust(vr.Ptr, val) {
		return errs.New(errs.LoadError, "definitions", "cannot set %s to %q", name, val)
	}
	return nil
}

// String lists every scalar with its current value
func (vt *Table) String() string {
	var b strings.Builder
	for i := 0; i < vt.Vars.Len(); i++ {
		vr := vt.Vars.Order[i].Val
		fmt.Fprintf(&b, "%-12s %v\n", vr.Name, vr.Value())
	}
	return b.String()
}
