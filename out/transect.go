// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Row returns the first row j, in increasing order, with |Y[j]-y0| ≤ tol
//  tol -- tolerance; use a non-positive value to select dy/2
func (o *Snapshot) Row(y0, tol float64) (int, error) {
	if tol <= 0 {
		tol = o.Dy / 2.0
	}
	for j, y := range o.Y {
		if math.Abs(y-y0) <= tol {
			return j, nil
		}
	}
	where := "empty grid"
	if len(o.Y) > 0 {
		where = io.Sf("y ∈ [%g, %g]", o.Y[0], o.Y[len(o.Y)-1])
	}
	return -1, &LookupError{What: "row at y", Value: y0, Where: where}
}

// Line holds one labelled transect
type Line struct {
	Label string    // legend label; e.g. "T-p"
	X     []float64 // cell centres
	V     []float64 // values
}

// Scale multiplies all values by 1/ref; e.g. to show the surface relative to the storm amplitude
func (o *Line) Scale(ref float64) error {
	if ref == 0 {
		return chk.Err("reference value must be non-zero")
	}
	for i := range o.V {
		o.V[i] /= ref
	}
	return nil
}

// Limits returns the minimum and maximum over all values of all lines
func Limits(lines ...*Line) (vmin, vmax float64, err error) {
	first := true
	for _, l := range lines {
		for _, v := range l.V {
			if first {
				vmin, vmax = v, v
				first = false
				continue
			}
			vmin = math.Min(vmin, v)
			vmax = math.Max(vmax, v)
		}
	}
	if first {
		err = chk.Err("cannot compute limits without values")
	}
	return
}

// Source is a labelled snapshot to be compared
type Source struct {
	Label string
	Snap  *Snapshot
}

// Comparison holds one transect per source and the limits over all of them
type Comparison struct {
	Field Field   // compared field
	Y0    float64 // y-coordinate of transects
	Lines []*Line // one line per source
	Vmin  float64 // minimum over all lines
	Vmax  float64 // maximum over all lines
}

// Compare extracts the same transect from all sources
func (o *Extractor) Compare(field Field, y0, tol float64, sources ...Source) (res *Comparison, err error) {
	res = &Comparison{Field: field, Y0: y0}
	for _, src := range sources {
		x, v, err := o.Transect(src.Snap, y0, tol, field)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Label, err)
		}
		res.Lines = append(res.Lines, &Line{Label: src.Label, X: x, V: v})
	}
	res.Vmin, res.Vmax, err = Limits(res.Lines...)
	if err != nil {
		return nil, err
	}
	return
}

// Print writes a table with one column per line
//  Note: lines must share the same x-coordinates
func (o *Comparison) Print() string {
	if len(o.Lines) == 0 {
		return ""
	}
	l := io.Sf("%14s", "x")
	for _, line := range o.Lines {
		l += io.Sf("%14s", line.Label)
	}
	l += "\n"
	for i, x := range o.Lines[0].X {
		l += io.Sf("%14.6e", x)
		for _, line := range o.Lines {
			if i < len(line.V) {
				l += io.Sf("%14.6e", line.V[i])
			} else {
				l += io.Sf("%14s", "")
			}
		}
		l += "\n"
	}
	l += io.Sf("# %s at y = %g: min = %g, max = %g\n", o.Field, o.Y0, o.Vmin, o.Vmax)
	return l
}
