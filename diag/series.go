// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package diag implements the reading of conservation diagnostics written by the solver
package diag

import (
	"errors"
	"fmt"

	"github.com/cpmech/gosl/chk"
)

// ErrTruncated is reported when a log stops in the middle of a (mass, KE, PE) triplet
var ErrTruncated = errors.New("diagnostic log truncated mid-triplet")

// Series holds the time series of conserved quantities in order of appearance in the log
type Series struct {
	T         []float64 // time of each diagnostic step
	Mass      []float64 // total mass
	KE        []float64 // kinetic energy
	PE        []float64 // potential energy
	MassDrift []float64 // mass deviation from initial value
	KEDrift   []float64 // kinetic energy deviation
	PEDrift   []float64 // potential energy deviation
}

// Len returns the number of complete time steps
func (o *Series) Len() int {
	return len(o.T)
}

// Check returns an error wrapping ErrTruncated if the series do not have equal lengths
func (o *Series) Check() error {
	n := len(o.T)
	lens := []int{len(o.Mass), len(o.KE), len(o.PE), len(o.MassDrift), len(o.KEDrift), len(o.PEDrift)}
	for _, l := range lens {
		if l != n {
			return fmt.Errorf("%w: len(t)=%d, len(mass)=%d, len(KE)=%d, len(PE)=%d", ErrTruncated, n, len(o.Mass), len(o.KE), len(o.PE))
		}
	}
	return nil
}

// Energy returns KE + PE
func (o *Series) Energy() (E []float64) {
	E = make([]float64, len(o.KE))
	for i := range o.KE {
		E[i] = o.KE[i] + o.PE[i]
	}
	return
}

// Nondim holds a series rescaled by reference time and energy
type Nondim struct {
	T  []float64 // t / T0
	E  []float64 // (KE + PE) / E0
	KE []float64 // KE / E0
	PE []float64 // PE / E0
}

// Nondim rescales time by T0 and energies by E0
func (o *Series) Nondim(T0, E0 float64) (res *Nondim, err error) {
	if T0 <= 0 || E0 <= 0 {
		return nil, chk.Err("reference scales must be positive: T0=%g, E0=%g", T0, E0)
	}
	if err = o.Check(); err != nil {
		return
	}
	n := o.Len()
	res = &Nondim{
		T:  make([]float64, n),
		E:  make([]float64, n),
		KE: make([]float64, n),
		PE: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		res.T[i] = o.T[i] / T0
		res.KE[i] = o.KE[i] / E0
		res.PE[i] = o.PE[i] / E0
		res.E[i] = (o.KE[i] + o.PE[i]) / E0
	}
	return
}
