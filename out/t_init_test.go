// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// grid3x3 returns a 3×3 snapshot centred at the origin with unit cells
//  q[0] = 1 + i, q[1] = 2 + j, q[2] = i - j, q[3] = 10 i + j
func grid3x3() *Snapshot {
	s := NewSnapshot(4, 3, 3, -1.5, -1.5, 1, 1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s.Q[0][i][j] = 1 + float64(i)
			s.Q[1][i][j] = 2 + float64(j)
			s.Q[2][i][j] = float64(i - j)
			s.Q[3][i][j] = float64(10*i + j)
		}
	}
	return s
}
