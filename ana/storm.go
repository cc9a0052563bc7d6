// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical reference solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/integrate/quad"
)

// Storm implements the reference energy of a radially symmetric pressure storm
//
//   Δp(r) = Δp (1 - exp(-R/r))
//
//   E0(t) = ½/(ρ g) Δp² ∫∫ (1 - exp(-R/|x - U t|))² dx dy  over [-R,R]×[-R,R]
//
type Storm struct {
	Rho   float64 // water density
	G     float64 // gravity
	Dp    float64 // pressure deficit
	R     float64 // radius of maximum winds
	U     float64 // translation speed along x
	Nodes int     // number of Gauss-Legendre nodes per axis; must be even
}

// NewStorm returns a storm with the pressure deficit of a surface anomaly eta0
//  Dp = eta0 ρ g
func NewStorm(rho, g, eta0, R, U float64) (o *Storm, err error) {
	o = &Storm{Rho: rho, G: g, Dp: eta0 * rho * g, R: R, U: U, Nodes: 64}
	if err = o.Check(); err != nil {
		return nil, err
	}
	return
}

// DefaultStorm returns the storm of the energy example
//  ρ=1025, g=9.81, η0=0.04, R=10 km and U=0
func DefaultStorm() *Storm {
	o, _ := NewStorm(1025, 9.81, 0.04, 10e3, 0)
	return o
}

// Check validates parameters
func (o *Storm) Check() error {
	if o.Rho <= 0 || o.G <= 0 {
		return chk.Err("density and gravity must be positive: rho=%g, g=%g", o.Rho, o.G)
	}
	if o.R <= 0 {
		return chk.Err("storm radius must be positive: R=%g", o.R)
	}
	if o.Nodes < 2 || o.Nodes%2 != 0 {
		return chk.Err("number of quadrature nodes must be even and positive: n=%d", o.Nodes)
	}
	return nil
}

// Kernel returns (1 - exp(-R/r))² at a distance r from the storm centre
//  Note: the limit as r → 0 is 1
func (o *Storm) Kernel(r float64) float64 {
	if r == 0 {
		return 1
	}
	f := 1 - math.Exp(-o.R/r)
	return f * f
}

// E0 computes the reference energy at time t
func (o *Storm) E0(t float64) (float64, error) {
	if err := o.Check(); err != nil {
		return 0, err
	}
	xc := o.U * t
	inner := func(x float64) float64 {
		return quad.Fixed(func(y float64) float64 {
			return o.Kernel(math.Hypot(x-xc, y))
		}, -o.R, o.R, o.Nodes, quad.Legendre{}, 0)
	}
	res := quad.Fixed(inner, -o.R, o.R, o.Nodes, quad.Legendre{}, 0)
	return 0.5 / (o.Rho * o.G) * o.Dp * o.Dp * res, nil
}

// T0 returns the time scale R/√(g d) for a basin depth d
func (o *Storm) T0(d float64) float64 {
	return o.R / math.Sqrt(o.G*math.Abs(d))
}

// Speed returns the translation speed U = Fr √(g d) for a Froude number Fr
func Speed(Fr, g, d float64) float64 {
	return Fr * math.Sqrt(g*math.Abs(d))
}

// Box returns the square [-R,R]² moved with the storm up to time t
func (o *Storm) Box(t float64) (xmin, xmax, ymin, ymax float64) {
	return -o.R + o.U*t, o.R + o.U*t, -o.R, o.R
}

// Sample computes E0 at n equally spaced times in [0, tf]
func (o *Storm) Sample(tf float64, n int) (t, E []float64, err error) {
	if n < 2 {
		return nil, nil, chk.Err("at least two times are required; n=%d", n)
	}
	t = utl.LinSpace(0, tf, n)
	E = make([]float64, n)
	for i, ti := range t {
		if E[i], err = o.E0(ti); err != nil {
			return nil, nil, err
		}
	}
	return
}
