// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
)

// values varied by the job matrices
var (
	TestTypes   = []TestType{Pressure, Bathymetry}
	StormRatios = []int{1, 2, 3}
	StormDepths = []float64{500, 1000, 2000, 3000}
)

// HumpMatrix returns all hump jobs: test type × split × dimensional
func HumpMatrix(basePath string) (jobs []*Job, err error) {
	for _, tt := range TestTypes {
		for _, split := range []bool{true, false} {
			for _, dim := range []bool{true, false} {
				job, err := NewHumpJob(split, tt, dim, basePath)
				if err != nil {
					return nil, err
				}
				jobs = append(jobs, job)
			}
		}
	}
	return
}

// StormMatrix returns all storm jobs: split × ratio × depth
func StormMatrix(basePath string) (jobs []*Job, err error) {
	for _, split := range []bool{true, false} {
		for _, ratio := range StormRatios {
			for _, depth := range StormDepths {
				job, err := NewStormJob(split, ratio, depth, basePath)
				if err != nil {
					return nil, err
				}
				jobs = append(jobs, job)
			}
		}
	}
	return
}

// ComparisonJobs returns the hump jobs compared in one figure: split × test type
func ComparisonJobs(dimensional bool, basePath string) (jobs []*Job, err error) {
	for _, split := range []bool{true, false} {
		for _, tt := range TestTypes {
			job, err := NewHumpJob(split, tt, dimensional, basePath)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}
	return
}

// Matrix returns the job matrix of a family
func Matrix(family Family, basePath string) ([]*Job, error) {
	switch family {
	case Hump:
		return HumpMatrix(basePath)
	case Storm:
		return StormMatrix(basePath)
	}
	return nil, family.Valid()
}

// DataRoot joins parts under the directory given by the DATA_PATH environment
// variable; e.g. DataRoot("well-balanced-pressure", "hump")
//  Note: existence is not checked here; readers fail when files are missing
func DataRoot(parts ...string) (string, error) {
	root := os.Getenv("DATA_PATH")
	if root == "" {
		return "", chk.Err("DATA_PATH environment variable is not set")
	}
	return filepath.Join(append([]string{root}, parts...)...), nil
}
