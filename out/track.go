// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// TrackFile is the name of the storm track file inside output directories
const TrackFile = "fort.track"

// Track holds the storm centre at each output frame
type Track struct {
	Frames []int     // frame indices
	T      []float64 // times
	X, Y   []float64 // storm centre coordinates
}

// ReadTrack reads "frame t x y" lines from outdir/fort.track
func ReadTrack(outdir string) (o *Track, err error) {
	fn := filepath.Join(outdir, TrackFile)
	fil, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open track file %q:\n%v", fn, err)
	}
	defer fil.Close()
	o = new(Track)
	sc := bufio.NewScanner(fil)
	nl := 0
	for sc.Scan() {
		nl++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, chk.Err("%s:%d: expected 4 columns, found %d", fn, nl, len(fields))
		}
		var vals [4]float64
		for k := 0; k < 4; k++ {
			if vals[k], err = atof(fields[k]); err != nil {
				return nil, chk.Err("%s:%d: invalid number %q", fn, nl, fields[k])
			}
		}
		if vals[0] != math.Trunc(vals[0]) {
			return nil, chk.Err("%s:%d: frame must be an integer; found %q", fn, nl, fields[0])
		}
		o.Frames = append(o.Frames, int(vals[0]))
		o.T = append(o.T, vals[1])
		o.X = append(o.X, vals[2])
		o.Y = append(o.Y, vals[3])
	}
	if err = sc.Err(); err != nil {
		return nil, chk.Err("cannot read track file %q:\n%v", fn, err)
	}
	return
}

// At returns the time and storm centre at a frame
func (o *Track) At(frame int) (t, x, y float64, err error) {
	for k, f := range o.Frames {
		if f == frame {
			return o.T[k], o.X[k], o.Y[k], nil
		}
	}
	return 0, 0, 0, &LookupError{What: "frame", Value: float64(frame), Where: TrackFile}
}
