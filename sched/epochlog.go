// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sched

import (
	"io"
	"os"

	"github.com/dagfinndybvig/renewedPDP/errs"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// NewEpochLog returns an empty epoch log table
func NewEpochLog() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "EpochLog")
	dt.SetMetaData("desc", "Record of performance over epochs of training")
	sch := etable.Schema{
		{"Epoch", etensor.INT64, nil, nil},
		{"TSS", etensor.FLOAT64, nil, nil},
		{"NPats", etensor.INT64, nil, nil},
		{"Secs", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
	return dt
}

// logEpoch adds a row for the epoch just finished
func (sc *Scheduler) logEpoch() {
	dt := sc.EpochLog
	row := dt.Rows
	dt.SetNumRows(row + 1)
	secs := sc.Timer.TotalSecs()
	dt.SetCellFloat("Epoch", row, float64(sc.Time.Epoch.Cur))
	dt.SetCellFloat("TSS", row, float64(sc.TSS))
	dt.SetCellFloat("NPats", row, float64(sc.NPats))
	dt.SetCellFloat("Secs", row, secs)
	sc.Log.Info("epoch", "epoch", sc.Time.Epoch.Cur, "tss", sc.TSS, "npats", sc.NPats, "secs", secs)
}

// WriteEpochLog writes the epoch log as CSV with headers
func (sc *Scheduler) WriteEpochLog(w io.Writer) error {
	if err := sc.EpochLog.WriteCSV(w, etable.Comma, etable.Headers); err != nil {
		return errs.Wrap(errs.IoError, "epoch log", err)
	}
	return nil
}

// SaveEpochLog writes the epoch log to the named CSV file
func (sc *Scheduler) SaveEpochLog(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		return errs.Wrap(errs.IoError, "epoch log", err)
	}
	defer fp.Close()
	return sc.WriteEpochLog(fp)
}
