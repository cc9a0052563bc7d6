// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Field selects a quantity from a snapshot
//  Note: non-negative values index the state directly;
//        a negative value -k means velocity q[k]/h computed from momentum k
type Field int

// fields of the shallow water state
const (
	Depth     Field = 0
	MomentumX Field = 1
	MomentumY Field = 2
	Surface   Field = 3
	VelocityX Field = -1
	VelocityY Field = -2
)

// fieldnames holds names used in reports and by the command line
var fieldnames = map[Field]string{
	Depth:     "depth",
	MomentumX: "momentum_x",
	MomentumY: "momentum_y",
	Surface:   "surface",
	VelocityX: "velocity_x",
	VelocityY: "velocity_y",
}

func (o Field) String() string {
	if name, ok := fieldnames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseField returns the field with the given name
func ParseField(name string) (Field, error) {
	for f, n := range fieldnames {
		if n == name {
			return f, nil
		}
	}
	return 0, chk.Err("field %q is not available", name)
}

// extractor computes the value of a field at cell (i,j)
type extractor func(s *Snapshot, i, j int) float64

// Extractor computes fields from snapshots
type Extractor struct {
	DryTol float64           // depth below which velocities are zero
	Meqn   int               // number of equations of snapshots
	fcns   map[Field]extractor // extraction functions
}

// NewExtractor returns an extractor for snapshots with meqn equations
//  dryTol -- depth tolerance; use a non-positive value to select DryTol
func NewExtractor(meqn int, dryTol float64) (o *Extractor, err error) {
	if meqn < 1 {
		return nil, chk.Err("number of equations must be positive; meqn=%d", meqn)
	}
	if dryTol <= 0 {
		dryTol = DryTol
	}
	o = &Extractor{DryTol: dryTol, Meqn: meqn, fcns: make(map[Field]extractor)}
	for f := range fieldnames {
		k := int(f)
		if f >= 0 {
			if k < meqn {
				o.fcns[f] = func(s *Snapshot, i, j int) float64 { return s.Q[k][i][j] }
			}
			continue
		}
		k = -k
		if k < meqn {
			o.fcns[f] = func(s *Snapshot, i, j int) float64 {
				return Velocity(s.Q[0][i][j], s.Q[k][i][j], o.DryTol)
			}
		}
	}
	return
}

// Velocity returns momentum/depth if the depth is above dryTol; otherwise zero
func Velocity(h, hu, dryTol float64) float64 {
	if h > dryTol {
		return hu / h
	}
	return 0
}

// get returns the extraction function of a field
func (o *Extractor) get(s *Snapshot, field Field) (fcn extractor, err error) {
	fcn, ok := o.fcns[field]
	if !ok {
		return nil, chk.Err("field %d is not available with meqn=%d", field, o.Meqn)
	}
	if s.Meqn != o.Meqn {
		return nil, chk.Err("snapshot has meqn=%d but extractor was created with meqn=%d", s.Meqn, o.Meqn)
	}
	return
}

// Value returns the field value at cell (i,j)
func (o *Extractor) Value(s *Snapshot, field Field, i, j int) (float64, error) {
	fcn, err := o.get(s, field)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= s.Mx || j < 0 || j >= s.My {
		return 0, chk.Err("cell (%d,%d) is outside of %d×%d grid", i, j, s.Mx, s.My)
	}
	return fcn(s, i, j), nil
}

// Transect returns the cell centres and field values along the row nearest to y0
//  tol -- tolerance to match y0; use a non-positive value to select dy/2
func (o *Extractor) Transect(s *Snapshot, y0, tol float64, field Field) (x, v []float64, err error) {
	fcn, err := o.get(s, field)
	if err != nil {
		return
	}
	j, err := s.Row(y0, tol)
	if err != nil {
		return
	}
	x = make([]float64, s.Mx)
	v = make([]float64, s.Mx)
	copy(x, s.X)
	for i := 0; i < s.Mx; i++ {
		v[i] = fcn(s, i, j)
	}
	return
}

// MaxAbs returns the maximum absolute value of a field and the cell where it happens
func (o *Extractor) MaxAbs(s *Snapshot, field Field) (vmax float64, imax, jmax int, err error) {
	fcn, err := o.get(s, field)
	if err != nil {
		return
	}
	for i := 0; i < s.Mx; i++ {
		for j := 0; j < s.My; j++ {
			if v := math.Abs(fcn(s, i, j)); v > vmax {
				vmax, imax, jmax = v, i, j
			}
		}
	}
	return
}
