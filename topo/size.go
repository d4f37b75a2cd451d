// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package topo

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
)

// SizeReport returns a string reporting the size of each row and the
// total memory used by the store.
func (st *Store) SizeReport(perUnit bool) string {
	var b strings.Builder
	cons := 0
	conMem := 0
	for ri := 0; ri < st.NUnits; ri++ {
		nc := st.RConN[ri]
		cmem := nc * (4 + 4 + 1) // wt, lrate, code
		cons += nc
		conMem += cmem
		if perUnit && nc > 0 {
			fmt.Fprintf(&b, "%8d:\t Window: [%d, %d)\t ConMem: %v\n", ri, st.RConSt[ri], st.RConSt[ri]+nc, (datasize.ByteSize)(cmem).HumanReadable())
		}
	}
	unitMem := st.NUnits * (4 + 4 + 4 + 1 + 1 + 4*2 + 4) // bias, blrate, sigma, codes, window, gen
	fmt.Fprintf(&b, "%8s:\t Units: %d\t UnitMem: %v \t Cons: %d \t ConMem: %v\n", "Total", st.NUnits, (datasize.ByteSize)(unitMem).HumanReadable(), cons, (datasize.ByteSize)(conMem).HumanReadable())
	return b.String()
}
