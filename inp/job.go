// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the job descriptors and run data of the
// well-balanced pressure experiments
package inp

import (
	"bytes"
	"path/filepath"

	"github.com/cpmech/gosl/io"
)

// TestType selects which forcing term drives an experiment
type TestType string

// test types
const (
	Pressure   TestType = "pressure"   // forcing by an atmospheric pressure field
	Bathymetry TestType = "bathymetry" // equivalent forcing by a bathymetry perturbation
)

// Valid returns an error if the test type is not known
func (o TestType) Valid() error {
	switch o {
	case Pressure, Bathymetry:
		return nil
	}
	return &ConfigError{Field: "test_type", Value: string(o), Msg: "unknown test type"}
}

// Job holds the varying parameters of one experiment and its derived identity
//  Note: Job values are immutable once created by NewJob; use the accessors
type Job struct {
	family      Family   // experiment family; e.g. "hump" or "storm"
	split       bool     // split forcing term
	testType    TestType // forcing term tested
	dimensional bool     // use physical constants; otherwise g=rho=1
	ratio       int      // resolution ratio w.r.t template grid
	depth       float64  // basin depth magnitude; 0 => template value
	basePath    string   // directory holding all job outputs

	// derived
	prefix string // unique job key
}

// JobPrms collects the parameters given to NewJob
type JobPrms struct {
	Split       bool
	TestType    TestType
	Dimensional bool
	Ratio       int
	Depth       float64
	BasePath    string
}

// NewJob validates the parameters against the family and returns a new job
//  Note: parameters the family does not vary must hold the family's fixed values,
//        otherwise two different parameter sets could share the same prefix
func NewJob(family Family, p JobPrms) (o *Job, err error) {
	fam, err := family.get()
	if err != nil {
		return
	}
	if err = p.TestType.Valid(); err != nil {
		return
	}
	if p.Ratio < 1 {
		return nil, &ConfigError{Field: "ratio", Value: io.Sf("%d", p.Ratio), Msg: "resolution ratio must be at least 1"}
	}
	if p.Depth < 0 {
		return nil, &ConfigError{Field: "depth", Value: io.Sf("%g", p.Depth), Msg: "basin depth must be given as a positive magnitude"}
	}
	if err = fam.check(p); err != nil {
		return
	}
	if p.BasePath == "" {
		p.BasePath = "."
	}
	o = &Job{
		family:      family,
		split:       p.Split,
		testType:    p.TestType,
		dimensional: p.Dimensional,
		ratio:       p.Ratio,
		depth:       p.Depth,
		basePath:    p.BasePath,
	}
	o.prefix = fam.prefix(o)
	return
}

// NewHumpJob returns a job of the steady-state hump family
func NewHumpJob(split bool, testType TestType, dimensional bool, basePath string) (*Job, error) {
	return NewJob(Hump, JobPrms{
		Split:       split,
		TestType:    testType,
		Dimensional: dimensional,
		Ratio:       1,
		BasePath:    basePath,
	})
}

// NewStormJob returns a job of the moving storm family
func NewStormJob(split bool, ratio int, depth float64, basePath string) (*Job, error) {
	return NewJob(Storm, JobPrms{
		Split:       split,
		TestType:    Pressure,
		Dimensional: true,
		Ratio:       ratio,
		Depth:       depth,
		BasePath:    basePath,
	})
}

// accessors ///////////////////////////////////////////////////////////////////////////////////////

func (o *Job) Family() Family     { return o.family }
func (o *Job) Split() bool        { return o.split }
func (o *Job) TestType() TestType { return o.testType }
func (o *Job) Dimensional() bool  { return o.dimensional }
func (o *Job) Ratio() int         { return o.ratio }
func (o *Job) Depth() float64     { return o.depth }
func (o *Job) BasePath() string   { return o.basePath }

// Prefix returns the key identifying this job; e.g. T_F_pressure
func (o *Job) Prefix() string { return o.prefix }

// OutputPath returns the directory where the solver writes results
func (o *Job) OutputPath() string {
	return filepath.Join(o.basePath, o.prefix+"_output")
}

// DataPath returns the directory where the run data of this job is written
func (o *Job) DataPath() string {
	return filepath.Join(o.basePath, o.prefix+"_data")
}

// String returns a summary of this job
func (o *Job) String() string {
	fam, _ := o.family.get()
	var b bytes.Buffer
	io.Ff(&b, "Job %s (%s)\n", o.prefix, o.family)
	io.Ff(&b, "  Output: %s\n", o.OutputPath())
	for i, l := range fam.summary(o) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  " + l)
	}
	return b.String()
}

// Label returns the legend label of comparisons; e.g. "T-p" for split pressure
func (o *Job) Label() string {
	return boolTag(o.split) + "-" + string(o.testType)[:1]
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// boolTag encodes a boolean by the first letter of its textual representation
func boolTag(b bool) string {
	if b {
		return "T"
	}
	return "F"
}
