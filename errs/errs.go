// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package errs defines the error taxonomy shared by the topology store,
the network description loader, the scheduler and the update policies.

Every error carries a machine-distinguishable Kind plus a human-readable
message, so callers can branch with errors.Is against the Kind sentinels
(errs.Load, errs.Topology, ...) or with KindOf.
*/
package errs

import (
	"errors"
	"fmt"

	"github.com/goki/ki/kit"
)

// Kind is the machine-distinguishable category of an Error
type Kind int

//go:generate stringer -type=Kind

var KiT_Kind = kit.Enums.AddEnum(KindN, kit.NotBitFlag, nil)

func (ev Kind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Kind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// LoadError is malformed description syntax, an unknown constraint code,
	// a negative sigma or a row / column range outside the network.
	LoadError Kind = iota

	// TopologyError is a connection window that exceeds the unit count,
	// or use of a row reference after the row was re-windowed.
	TopologyError

	// RuntimeNumericWarning is activation runaway in unclamped mode.
	// It is recoverable: the scheduler pauses and asks the controller.
	RuntimeNumericWarning

	// NameNotFound is a definitions entry naming an unknown scalar.
	NameNotFound

	// IoError is a missing file or a weight file shorter than the network.
	IoError

	KindN
)

// Error is the structured error value used throughout the module.
type Error struct {
	Kind Kind   `desc:"category of the error"`
	Op   string `desc:"operation or section in which the error occurred, e.g. network, restore"`
	Line int    `desc:"1-based input line, 0 if not applicable"`
	Msg  string `desc:"human-readable message"`
	Err  error  `desc:"underlying cause, if any"`
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	switch {
	case e.Op != "" && e.Line > 0:
		return fmt.Sprintf("%s: %s (line %d): %s", e.Kind, e.Op, e.Line, msg)
	case e.Op != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, errs.Load) matches any load error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

// Sentinels for errors.Is
var (
	Load    = &Error{Kind: LoadError}
	Topo    = &Error{Kind: TopologyError}
	Runaway = &Error{Kind: RuntimeNumericWarning}
	NoName  = &Error{Kind: NameNotFound}
	IO      = &Error{Kind: IoError}
)

// New returns a new Error of given kind with a formatted message
func New(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// AtLine returns a new Error of given kind tagged with an input line
func AtLine(kind Kind, op string, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Wrap wraps err as the given kind; nil stays nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain,
// and false if there is none.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindN, false
}

// IsRecoverable returns true for errors that pause a run rather than end it
func IsRecoverable(err error) bool {
	k, ok := KindOf(err)
	return ok && k == RuntimeNumericWarning
}
