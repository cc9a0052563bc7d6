// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// Physics holds a set of physical constants
type Physics struct {
	Gravity float64
	Rho     float64
}

// constant sets
var (
	Dimensional    = Physics{Gravity: 9.81, Rho: 1025.0} // SI values
	NonDimensional = Physics{Gravity: 1.0, Rho: 1.0}     // unit values
)

// PhysicsFor selects the constant set
func PhysicsFor(dimensional bool) Physics {
	if dimensional {
		return Dimensional
	}
	return NonDimensional
}

// Apply sets the constants into run data
func (o Physics) Apply(rd *RunData) {
	rd.Geo.Gravity = o.Gravity
	rd.Geo.Rho = o.Rho
}

// Build returns the run data of a job: a deep copy of the template with the
// physical constants of the job and the overrides of the family builder
//  Note: template is not modified
func Build(template *RunData, job *Job) (rd *RunData, err error) {
	if template == nil {
		return nil, chk.Err("cannot build run data of job %q without a template", job.Prefix())
	}
	fam, err := job.family.get()
	if err != nil {
		return
	}
	rd = template.Clone()
	PhysicsFor(job.dimensional).Apply(rd)
	fam.build(rd, job)
	if err = rd.PostProcess(); err != nil {
		return nil, fmt.Errorf("run data of job %q is invalid: %w", job.Prefix(), err)
	}
	return
}
