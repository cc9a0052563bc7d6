// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bufio"
	"bytes"
	"encoding/binary"
	goio "io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// output formats
const (
	Ascii  = "ascii"  // fort.qNNNN holds header and values
	Binary = "binary" // fort.qNNNN holds header; fort.bNNNN holds float64 values
)

// Snapshot holds the state of a single-patch grid at one output frame
type Snapshot struct {
	Frame  int           // output frame index
	T      float64       // time
	Meqn   int           // number of equations
	Nghost int           // number of ghost cells (binary format only)
	Mx, My int           // number of cells along x and y
	Xlow   float64       // lower x-coordinate of patch
	Ylow   float64       // lower y-coordinate of patch
	Dx, Dy float64       // cell sizes
	X, Y   []float64     // [mx] and [my] cell centres
	Q      [][][]float64 // [meqn][mx][my] state
}

// NewSnapshot allocates a zeroed snapshot and computes cell centres
func NewSnapshot(meqn, mx, my int, xlow, ylow, dx, dy float64) (o *Snapshot) {
	o = &Snapshot{Meqn: meqn, Mx: mx, My: my, Xlow: xlow, Ylow: ylow, Dx: dx, Dy: dy}
	o.init()
	return
}

// init allocates Q and computes X and Y
func (o *Snapshot) init() {
	o.X = make([]float64, o.Mx)
	o.Y = make([]float64, o.My)
	for i := 0; i < o.Mx; i++ {
		o.X[i] = o.Xlow + (float64(i)+0.5)*o.Dx
	}
	for j := 0; j < o.My; j++ {
		o.Y[j] = o.Ylow + (float64(j)+0.5)*o.Dy
	}
	o.Q = make([][][]float64, o.Meqn)
	for m := 0; m < o.Meqn; m++ {
		o.Q[m] = make([][]float64, o.Mx)
		for i := 0; i < o.Mx; i++ {
			o.Q[m][i] = make([]float64, o.My)
		}
	}
}

// FrameFile returns the name of a frame file; e.g. fort.q0010
func FrameFile(kind byte, frame int) string {
	return io.Sf("fort.%c%04d", kind, frame)
}

// ReadSnapshot reads one output frame from an output directory
func ReadSnapshot(outdir string, frame int, format string) (o *Snapshot, err error) {
	if format != Ascii && format != Binary {
		return nil, chk.Err("output format %q is not available; options are %q and %q", format, Ascii, Binary)
	}
	o = &Snapshot{Frame: frame}

	// time header
	tfn := filepath.Join(outdir, FrameFile('t', frame))
	tf, err := os.Open(tfn)
	if err != nil {
		return nil, &LookupError{What: "frame", Value: float64(frame), Where: outdir}
	}
	defer tf.Close()
	hdr, err := read_header(bufio.NewScanner(tf), -1)
	if err != nil {
		return nil, chk.Err("cannot read %q:\n%v", tfn, err)
	}
	var npatch int
	if err = hdr.get(&o.T, "time"); err != nil {
		return nil, chk.Err("%q: %v", tfn, err)
	}
	if err = hdr.geti(&o.Meqn, "meqn", "num_eqn"); err != nil {
		return nil, chk.Err("%q: %v", tfn, err)
	}
	if err = hdr.geti(&npatch, "ngrids", "num_patches"); err != nil {
		return nil, chk.Err("%q: %v", tfn, err)
	}
	if err = hdr.geti(&o.Nghost, "nghost", "num_ghost"); err != nil {
		if format == Binary {
			return nil, chk.Err("%q: %v", tfn, err)
		}
		o.Nghost, err = 0, nil // ascii frames hold no ghost cells
	}
	if npatch != 1 {
		return nil, chk.Err("%q: only single patch output is supported; found %d patches", tfn, npatch)
	}

	// patch header
	qfn := filepath.Join(outdir, FrameFile('q', frame))
	qf, err := os.Open(qfn)
	if err != nil {
		return nil, &LookupError{What: "frame", Value: float64(frame), Where: outdir}
	}
	defer qf.Close()
	sc := bufio.NewScanner(qf)
	if err = o.read_patch_header(sc); err != nil {
		return nil, chk.Err("cannot read %q:\n%v", qfn, err)
	}
	o.init()

	// values
	if format == Ascii {
		if err = o.read_ascii(sc); err != nil {
			return nil, chk.Err("cannot read %q:\n%v", qfn, err)
		}
		return
	}
	bfn := filepath.Join(outdir, FrameFile('b', frame))
	bf, err := os.Open(bfn)
	if err != nil {
		return nil, &LookupError{What: "frame", Value: float64(frame), Where: outdir}
	}
	defer bf.Close()
	if err = o.read_binary(bf); err != nil {
		return nil, chk.Err("cannot read %q:\n%v", bfn, err)
	}
	return
}

// Write writes the snapshot into an output directory using the given format
func (o *Snapshot) Write(outdir, format string) (err error) {
	if format != Ascii && format != Binary {
		return chk.Err("output format %q is not available", format)
	}
	nghost := 0
	if format == Binary {
		nghost = o.Nghost
	}

	// time header
	var b bytes.Buffer
	io.Ff(&b, "%18.8E    time\n", o.T)
	io.Ff(&b, "%18d    meqn\n", o.Meqn)
	io.Ff(&b, "%18d    ngrids\n", 1)
	io.Ff(&b, "%18d    naux\n", 0)
	io.Ff(&b, "%18d    ndim\n", 2)
	io.Ff(&b, "%18d    nghost\n", nghost)
	io.Ff(&b, "%18s    format\n", format)
	if err = os.MkdirAll(outdir, 0777); err != nil {
		return chk.Err("cannot create output directory:\n%v", err)
	}
	if err = os.WriteFile(filepath.Join(outdir, FrameFile('t', o.Frame)), b.Bytes(), 0644); err != nil {
		return chk.Err("cannot write time header:\n%v", err)
	}

	// patch header
	b.Reset()
	io.Ff(&b, "%18d    grid_number\n", 1)
	io.Ff(&b, "%18d    AMR_level\n", 1)
	io.Ff(&b, "%18d    mx\n", o.Mx)
	io.Ff(&b, "%18d    my\n", o.My)
	io.Ff(&b, "%18.8E    xlow\n", o.Xlow)
	io.Ff(&b, "%18.8E    ylow\n", o.Ylow)
	io.Ff(&b, "%18.8E    dx\n", o.Dx)
	io.Ff(&b, "%18.8E    dy\n", o.Dy)
	io.Ff(&b, "\n")

	// values
	if format == Ascii {
		for j := 0; j < o.My; j++ {
			for i := 0; i < o.Mx; i++ {
				for m := 0; m < o.Meqn; m++ {
					io.Ff(&b, "%26.16E", o.Q[m][i][j])
				}
				io.Ff(&b, "\n")
			}
			io.Ff(&b, "\n")
		}
		return os.WriteFile(filepath.Join(outdir, FrameFile('q', o.Frame)), b.Bytes(), 0644)
	}
	if err = os.WriteFile(filepath.Join(outdir, FrameFile('q', o.Frame)), b.Bytes(), 0644); err != nil {
		return chk.Err("cannot write patch header:\n%v", err)
	}
	nx, ny := o.Mx+2*nghost, o.My+2*nghost
	vals := make([]float64, o.Meqn*nx*ny)
	k := 0
	for jj := 0; jj < ny; jj++ {
		for ii := 0; ii < nx; ii++ {
			i, j := ii-nghost, jj-nghost
			for m := 0; m < o.Meqn; m++ {
				if i >= 0 && i < o.Mx && j >= 0 && j < o.My {
					vals[k] = o.Q[m][i][j]
				}
				k++
			}
		}
	}
	b.Reset()
	if err = binary.Write(&b, binary.LittleEndian, vals); err != nil {
		return chk.Err("cannot encode values:\n%v", err)
	}
	return os.WriteFile(filepath.Join(outdir, FrameFile('b', o.Frame)), b.Bytes(), 0644)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

// header maps names to values of "value name" lines
type header map[string]string

// read_header reads n non-empty "value name" lines; n < 0 reads until the end or an empty line
func read_header(sc *bufio.Scanner, n int) (h header, err error) {
	h = make(header)
	for count := 0; n < 0 || count < n; {
		if !sc.Scan() {
			if err = sc.Err(); err != nil {
				return
			}
			if n > 0 {
				return nil, chk.Err("header has %d lines; %d are required", count, n)
			}
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			if n < 0 && count > 0 {
				return
			}
			continue
		}
		if len(fields) < 2 {
			return nil, chk.Err("invalid header line %q", sc.Text())
		}
		h[fields[1]] = fields[0]
		count++
	}
	return
}

// get parses a float under the first available name
func (o header) get(v *float64, names ...string) (err error) {
	for _, name := range names {
		if s, ok := o[name]; ok {
			*v, err = atof(s)
			if err != nil {
				return chk.Err("invalid %s %q", name, s)
			}
			return
		}
	}
	return chk.Err("header entry %q is missing", names[0])
}

// geti parses an integer under the first available name
func (o header) geti(v *int, names ...string) (err error) {
	for _, name := range names {
		if s, ok := o[name]; ok {
			*v, err = strconv.Atoi(s)
			if err != nil {
				return chk.Err("invalid %s %q", name, s)
			}
			return
		}
	}
	return chk.Err("header entry %q is missing", names[0])
}

func (o *Snapshot) read_patch_header(sc *bufio.Scanner) (err error) {
	hdr, err := read_header(sc, 8)
	if err != nil {
		return
	}
	if err = hdr.geti(&o.Mx, "mx"); err != nil {
		return
	}
	if err = hdr.geti(&o.My, "my"); err != nil {
		return
	}
	for _, p := range []struct {
		v    *float64
		name string
	}{{&o.Xlow, "xlow"}, {&o.Ylow, "ylow"}, {&o.Dx, "dx"}, {&o.Dy, "dy"}} {
		if err = hdr.get(p.v, p.name); err != nil {
			return
		}
	}
	if o.Mx < 1 || o.My < 1 || o.Meqn < 1 {
		return chk.Err("invalid patch dimensions: meqn=%d, mx=%d, my=%d", o.Meqn, o.Mx, o.My)
	}
	return
}

// read_ascii reads one line of meqn values per cell with i running fastest
func (o *Snapshot) read_ascii(sc *bufio.Scanner) (err error) {
	i, j := 0, 0
	for j < o.My && sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != o.Meqn {
			return chk.Err("cell (%d,%d): expected %d values, found %d", i, j, o.Meqn, len(fields))
		}
		for m := 0; m < o.Meqn; m++ {
			if o.Q[m][i][j], err = atof(fields[m]); err != nil {
				return chk.Err("cell (%d,%d): invalid value %q", i, j, fields[m])
			}
		}
		i++
		if i == o.Mx {
			i, j = 0, j+1
		}
	}
	if err = sc.Err(); err != nil {
		return
	}
	if j < o.My {
		return chk.Err("file ended after %d of %d cells", j*o.Mx+i, o.Mx*o.My)
	}
	return
}

// read_binary reads little-endian float64 values ordered as q(meqn, mx+2g, my+2g)
func (o *Snapshot) read_binary(r goio.Reader) (err error) {
	g := o.Nghost
	nx, ny := o.Mx+2*g, o.My+2*g
	vals := make([]float64, o.Meqn*nx*ny)
	if err = binary.Read(r, binary.LittleEndian, vals); err != nil {
		return chk.Err("expected %d values:\n%v", len(vals), err)
	}
	for j := 0; j < o.My; j++ {
		for i := 0; i < o.Mx; i++ {
			k := ((j+g)*nx + (i + g)) * o.Meqn
			for m := 0; m < o.Meqn; m++ {
				o.Q[m][i][j] = vals[k+m]
			}
		}
	}
	return
}

// atof parses a number, accepting Fortran's D exponent
func atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, "D", "E", 1), 64)
}
