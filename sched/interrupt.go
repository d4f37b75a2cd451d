// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import "sync/atomic"

// Interrupt is the flag set by an asynchronous signal source and observed
// by the scheduler at pattern and cycle checkpoints only.
type Interrupt struct {
	flag atomic.Bool
}

// Set raises the flag. Safe to call from a signal handling goroutine.
func (in *Interrupt) Set() { in.flag.Store(true) }

// IsInterrupted reports whether the flag is raised
func (in *Interrupt) IsInterrupted() bool { return in.flag.Load() }

// ClearInterrupt lowers the flag
func (in *Interrupt) ClearInterrupt() { in.flag.Store(false) }
