// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/io"
)

// Family selects an experiment family; each family has its own naming and builder
type Family string

// families
const (
	Hump  Family = "hump"  // steady state over a bathymetry hump
	Storm Family = "storm" // pressure storm moving over a flat basin
)

// family holds the per-family strategies
type family struct {
	prefix  func(o *Job) string      // job key built from the varying parameters only
	check   func(p JobPrms) error    // checks that non-varying parameters hold fixed values
	build   func(rd *RunData, o *Job) // applies overrides to a copy of the template
	summary func(o *Job) []string    // lines describing the varying parameters
}

// families holds all available experiment families
var families = map[Family]*family{
	Hump: {
		prefix: func(o *Job) string {
			return io.Sf("%s_%s_%s", boolTag(o.split), boolTag(o.dimensional), o.testType)
		},
		check: func(p JobPrms) error {
			if p.Ratio != 1 {
				return &ConfigError{Field: "ratio", Value: io.Sf("%d", p.Ratio), Msg: "hump jobs do not vary the resolution"}
			}
			if p.Depth != 0 {
				return &ConfigError{Field: "depth", Value: io.Sf("%g", p.Depth), Msg: "hump jobs do not vary the basin depth"}
			}
			return nil
		},
		build: func(rd *RunData, o *Job) {
			rd.Splitting.SplitForcing = o.split
			rd.Splitting.TestType = string(o.testType)
		},
		summary: func(o *Job) []string {
			return []string{
				io.Sf("Split: %v", o.split),
				io.Sf("Test: %s", o.testType),
				io.Sf("Dimensional: %v", o.dimensional),
			}
		},
	},
	Storm: {
		prefix: func(o *Job) string {
			return io.Sf("%s_n%d_d%d", boolTag(o.split), o.ratio, int(math.Abs(o.depth)))
		},
		check: func(p JobPrms) error {
			if !p.Dimensional {
				return &ConfigError{Field: "dimensional", Value: "false", Msg: "storm jobs are always dimensional"}
			}
			if p.TestType != Pressure {
				return &ConfigError{Field: "test_type", Value: string(p.TestType), Msg: "storm jobs are always pressure driven"}
			}
			if p.Depth == 0 {
				return &ConfigError{Field: "depth", Value: "0", Msg: "storm jobs require a basin depth"}
			}
			if p.Depth != math.Trunc(p.Depth) {
				return &ConfigError{Field: "depth", Value: io.Sf("%g", p.Depth), Msg: "storm depths are encoded as integers and must be whole numbers"}
			}
			return nil
		},
		build: func(rd *RunData, o *Job) {
			rd.Splitting.SplitForcing = o.split
			rd.Claw.NumCells[0] *= o.ratio
			rd.Claw.NumCells[1] *= o.ratio
			rd.Topo.BasinDepth = -math.Abs(o.depth)
		},
		summary: func(o *Job) []string {
			return []string{
				io.Sf("Split: %v", o.split),
				io.Sf("Resolution: %d", o.ratio),
				io.Sf("Depth: %d", int(o.depth)),
			}
		},
	},
}

// Families returns the names of all families in alphabetical order
func Families() (names []Family) {
	for name := range families {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return
}

// get returns the family strategies or a configuration error
func (o Family) get() (*family, error) {
	if fam, ok := families[o]; ok {
		return fam, nil
	}
	return nil, &ConfigError{Field: "family", Value: string(o), Msg: "unknown experiment family"}
}

// Valid returns an error if the family is not known
func (o Family) Valid() error {
	_, err := o.get()
	return err
}
