// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/dagfinndybvig/renewedPDP/sched"
	"github.com/dagfinndybvig/renewedPDP/sim"
)

// termCtrl is the terminal controller of a run: it prints a status line
// at refresh checkpoints and prompts when the run pauses.
type termCtrl struct {
	ss  *sim.Session
	in  *bufio.Reader
	out io.Writer
}

func newTermCtrl(ss *sim.Session, in io.Reader, out io.Writer) *termCtrl {
	return &termCtrl{ss: ss, in: bufio.NewReader(in), out: out}
}

func (tc *termCtrl) Refresh(grain sched.StepGrain) {
	fmt.Fprintln(tc.out, tc.status(grain))
}

func (tc *termCtrl) status(grain sched.StepGrain) string {
	sc := tc.ss.Sched
	tm := &sc.Time
	s := fmt.Sprintf("%-11s epoch %d pattern %d cycle %d tss %.4f", grain, tm.Epoch.Cur, tm.PatNo, tm.Cycle.Cur, sc.TSS)
	switch tc.ss.Type {
	case sim.AA, sim.PA:
		s += fmt.Sprintf(" pss %.4f", tc.ss.Stats.PSS)
	case sim.CS:
		s += fmt.Sprintf(" goodness %.4f", tc.ss.Goodness)
	case sim.CL:
		s += fmt.Sprintf(" winner %d", tc.ss.Winner)
	}
	return s
}

func (tc *termCtrl) readLine() (string, bool) {
	line, err := tc.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func (tc *termCtrl) Ask(grain sched.StepGrain, cause error) sched.Decision {
	if cause != nil {
		fmt.Fprintf(tc.out, "%v\n", cause)
	}
	fmt.Fprintf(tc.out, "%s: p to push, b to break, <cr> to continue: ", tc.status(grain))
	line, ok := tc.readLine()
	if !ok {
		return sched.Break
	}
	switch {
	case strings.HasPrefix(line, "p"):
		return sched.Push
	case strings.HasPrefix(line, "b"):
		return sched.Break
	}
	return sched.Continue
}

// Push runs a nested command session until exit or end of input
func (tc *termCtrl) Push() {
	ss := tc.ss
	for {
		fmt.Fprint(tc.out, "pdp> ")
		line, ok := tc.readLine()
		if !ok {
			return
		}
		flds := strings.Fields(line)
		if len(flds) == 0 {
			continue
		}
		var err error
		switch flds[0] {
		case "exit", "quit":
			return
		case "set":
			if len(flds) != 3 {
				err = fmt.Errorf("usage: set <name> <value>")
				break
			}
			err = ss.SetNamedScalar(flds[1], flds[2])
			ss.Update()
		case "lrate":
			var lr float64
			if len(flds) != 2 {
				err = fmt.Errorf("usage: lrate <value>")
				break
			}
			if lr, err = strconv.ParseFloat(flds[1], 32); err == nil {
				ss.ChangeLrate(float32(lr))
			}
		case "vars":
			fmt.Fprint(tc.out, ss.Vars.String())
		case "status":
			fmt.Fprintln(tc.out, tc.status(ss.Sched.Step.Grain))
		case "size":
			fmt.Fprint(tc.out, ss.SizeReport(false))
		case "save":
			if len(flds) != 2 {
				err = fmt.Errorf("usage: save <file>")
				break
			}
			err = saveFile(ss, flds[1])
		default:
			err = fmt.Errorf("commands: set, lrate, vars, status, size, save, exit")
		}
		if err != nil {
			fmt.Fprintln(tc.out, err)
		}
	}
}

// attach installs a terminal controller and routes interrupt signals to
// the session's interrupt flag while fun runs
func attach(ss *sim.Session, fun func() error) error {
	ss.Sched.Step.Ctrl = newTermCtrl(ss, os.Stdin, os.Stdout)
	ch := make(chan os.Signal, 1)
	notifySignals(ch)
	defer signal.Stop(ch)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-ch:
				ss.Intr().Set()
			case <-done:
				return
			}
		}
	}()
	return fun()
}
