// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements the reading of solver output and the extraction of transects
package out

import (
	"errors"

	"github.com/cpmech/gosl/io"
)

// constants
var (
	DryTol = 1e-3 // default depth below which velocities are taken as zero
	Frame  = 10   // default frame for comparisons
)

// ErrNotFound is wrapped by every LookupError
var ErrNotFound = errors.New("not found")

// LookupError reports a missing row, frame or field
type LookupError struct {
	What  string  // kind of item; e.g. "row", "frame"
	Value float64 // requested value
	Where string  // context; e.g. output directory or axis range
}

func (o *LookupError) Error() string {
	if o.Where == "" {
		return io.Sf("%s %g not found", o.What, o.Value)
	}
	return io.Sf("%s %g not found in %s", o.What, o.Value, o.Where)
}

func (o *LookupError) Unwrap() error { return ErrNotFound }
