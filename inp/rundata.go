// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"fmt"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// ClawData holds the grid and time stepping data
type ClawData struct {
	NumDim         int        `yaml:"num_dim" json:"num_dim"`                   // space dimension
	Lower          [2]float64 `yaml:"lower" json:"lower"`                       // lower corner of domain
	Upper          [2]float64 `yaml:"upper" json:"upper"`                       // upper corner of domain
	NumCells       [2]int     `yaml:"num_cells" json:"num_cells"`               // number of cells along x and y
	NumEqn         int        `yaml:"num_eqn" json:"num_eqn"`                   // number of equations
	NumAux         int        `yaml:"num_aux" json:"num_aux"`                   // number of auxiliary fields
	Tfinal         float64    `yaml:"tfinal" json:"tfinal"`                     // final time
	NumOutputTimes int        `yaml:"num_output_times" json:"num_output_times"` // number of output frames
	OutputFormat   string     `yaml:"output_format" json:"output_format"`       // "ascii" or "binary"
}

// GeoData holds the physical constants
type GeoData struct {
	Gravity          float64 `yaml:"gravity" json:"gravity"`                     // gravitational acceleration
	Rho              float64 `yaml:"rho" json:"rho"`                             // water density
	RhoAir           float64 `yaml:"rho_air" json:"rho_air"`                     // air density
	AmbientPressure  float64 `yaml:"ambient_pressure" json:"ambient_pressure"`   // far field pressure
	SeaLevel         float64 `yaml:"sea_level" json:"sea_level"`                 // initial sea level
	DryTolerance     float64 `yaml:"dry_tolerance" json:"dry_tolerance"`         // solver dry tolerance
	CoordinateSystem int     `yaml:"coordinate_system" json:"coordinate_system"` // 1 => Cartesian
	FrictionForcing  bool    `yaml:"friction_forcing" json:"friction_forcing"`   // bottom friction
	Manning          float64 `yaml:"manning" json:"manning"`                     // Manning's n
}

// TopoData holds the bathymetry description
type TopoData struct {
	BasinDepth float64 `yaml:"basin_depth" json:"basin_depth"` // depth of flat basin (negative elevation)
	HumpHeight float64 `yaml:"hump_height" json:"hump_height"` // height of hump above basin; 0 => no hump
	HumpWidth  float64 `yaml:"hump_width" json:"hump_width"`   // width of hump
}

// SplittingData holds the switches tested by the experiments
type SplittingData struct {
	SplitForcing bool   `yaml:"split_forcing" json:"split_forcing"` // apply forcing by splitting
	TestType     string `yaml:"test_type" json:"test_type"`         // "pressure" or "bathymetry"
}

// SurgeData holds the storm description
type SurgeData struct {
	PressureForcing bool    `yaml:"pressure_forcing" json:"pressure_forcing"` // apply pressure field
	WindForcing     bool    `yaml:"wind_forcing" json:"wind_forcing"`         // apply wind stress
	StormRadius     float64 `yaml:"storm_radius" json:"storm_radius"`         // radius of maximum winds R
	Eta0            float64 `yaml:"eta0" json:"eta0"`                         // inverse barometer surface anomaly
	Froude          float64 `yaml:"froude" json:"froude"`                     // storm speed over √(g d)
}

// RunData holds all data required to run one job
type RunData struct {

	// input
	Desc       string        `yaml:"desc" json:"desc"`             // description of experiment
	Executable string        `yaml:"executable" json:"executable"` // solver executable; e.g. xgeoclaw
	Args       []string      `yaml:"args" json:"args"`             // arguments; {data}, {output} and {prefix} are replaced
	PlotCmd    []string      `yaml:"plot_cmd" json:"plot_cmd"`     // plotting backend command; {output} is replaced
	Encoder    string        `yaml:"encoder" json:"encoder"`       // encoder for run data files; "json", "yaml" or "gob"
	Claw       ClawData      `yaml:"clawdata" json:"clawdata"`
	Geo        GeoData       `yaml:"geo_data" json:"geo_data"`
	Topo       TopoData      `yaml:"topo_data" json:"topo_data"`
	Splitting  SplittingData `yaml:"splitting_data" json:"splitting_data"`
	Surge      SurgeData     `yaml:"surge_data" json:"surge_data"`
}

// ReadTemplate reads a base template from a YAML file
func ReadTemplate(fnpath string) (o *RunData, err error) {
	b, err := os.ReadFile(os.ExpandEnv(fnpath))
	if err != nil {
		return nil, chk.Err("cannot read template file %q:\n%v", fnpath, err)
	}
	o = new(RunData)
	o.SetDefault()
	err = yaml.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal template file %q:\n%v", fnpath, err)
	}
	err = o.PostProcess()
	if err != nil {
		return nil, fmt.Errorf("template file %q: %w", fnpath, err)
	}
	return
}

// DefaultTemplate returns the built-in template of a family
func DefaultTemplate(family Family) (o *RunData, err error) {
	if err = family.Valid(); err != nil {
		return
	}
	o = new(RunData)
	o.SetDefault()
	switch family {
	case Hump:
		o.Desc = "steady state over a Gaussian hump"
		o.Claw.Lower = [2]float64{-1.5, -1.0}
		o.Claw.Upper = [2]float64{1.5, 1.0}
		o.Claw.NumCells = [2]int{300, 200}
		o.Claw.Tfinal = 10.0
		o.Topo.BasinDepth = -1.0
		o.Topo.HumpHeight = 0.5
		o.Topo.HumpWidth = 0.2
		o.Surge.Eta0 = 0.04
	case Storm:
		o.Desc = "pressure storm translating over a flat basin"
		o.Claw.Lower = [2]float64{-300e3, -100e3}
		o.Claw.Upper = [2]float64{300e3, 100e3}
		o.Claw.NumCells = [2]int{300, 100}
		o.Claw.Tfinal = 4 * 3600.0
		o.Topo.BasinDepth = -1000.0
		o.Surge.StormRadius = 10e3
		o.Surge.Eta0 = 0.04
		o.Surge.Froude = 1.0
	}
	err = o.PostProcess()
	return
}

// Clone returns a deep copy of this run data
func (o *RunData) Clone() *RunData {
	c := *o
	c.Args = append([]string(nil), o.Args...)
	c.PlotCmd = append([]string(nil), o.PlotCmd...)
	return &c
}

// SetDefault sets defaults values
func (o *RunData) SetDefault() {
	o.Executable = "xgeoclaw"
	o.Args = []string{"{data}", "{output}"}
	o.Encoder = "json"
	o.Claw.NumDim = 2
	o.Claw.NumEqn = 4
	o.Claw.NumAux = 3
	o.Claw.NumOutputTimes = 10
	o.Claw.OutputFormat = "ascii"
	Dimensional.Apply(o)
	o.Geo.RhoAir = 1.15
	o.Geo.AmbientPressure = 101.3e3
	o.Geo.DryTolerance = 1e-3
	o.Geo.CoordinateSystem = 1
	o.Surge.PressureForcing = true
	o.Splitting.TestType = string(Pressure)
}

// PostProcess checks and completes the data just read
func (o *RunData) PostProcess() (err error) {
	o.Executable = os.ExpandEnv(o.Executable)
	if o.Encoder != "gob" && o.Encoder != "json" && o.Encoder != "yaml" {
		o.Encoder = "gob"
	}
	if o.Claw.OutputFormat != "ascii" && o.Claw.OutputFormat != "binary" {
		return &ConfigError{Field: "output_format", Value: o.Claw.OutputFormat, Msg: "output format must be ascii or binary"}
	}
	for i := 0; i < 2; i++ {
		if o.Claw.NumCells[i] < 1 {
			return &ConfigError{Field: "num_cells", Value: io.Sf("%v", o.Claw.NumCells), Msg: "cell counts must be positive"}
		}
		if o.Claw.Upper[i] <= o.Claw.Lower[i] {
			return &ConfigError{Field: "upper", Value: io.Sf("%v", o.Claw.Upper), Msg: "upper corner must exceed lower corner"}
		}
	}
	if o.Splitting.TestType != "" {
		err = TestType(o.Splitting.TestType).Valid()
	}
	return
}
