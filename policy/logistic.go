// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"github.com/goki/mat32"
)

// Logistic saturation: beyond +/- LogisticSat the result is clamped to
// LogisticMax / LogisticMin.
const (
	LogisticSat = 11.5129
	LogisticMax = 0.99999
	LogisticMin = 0.00001
)

// Logistic returns 1 / (1 + exp(-net / temp)). A temperature <= 0 is a
// hard step at 0.
func Logistic(net, temp float32) float32 {
	if temp <= 0 {
		if net > 0 {
			return 1
		}
		return 0
	}
	x := net / temp
	switch {
	case x > LogisticSat:
		return LogisticMax
	case x < -LogisticSat:
		return LogisticMin
	}
	return 1 / (1 + mat32.Exp(-x))
}
