// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_snapshot01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("snapshot01. cell centres and file names")

	s := grid3x3()
	chk.Array(tst, "x", 1e-15, s.X, []float64{-1, 0, 1})
	chk.Array(tst, "y", 1e-15, s.Y, []float64{-1, 0, 1})
	chk.String(tst, FrameFile('q', 10), "fort.q0010")
	chk.String(tst, FrameFile('b', 3), "fort.b0003")
}

func Test_snapshot02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("snapshot02. ascii and binary frames")

	for _, format := range []string{Ascii, Binary} {
		dir := tst.TempDir()
		s := grid3x3()
		s.Frame = 10
		s.T = 7.5
		s.Nghost = 2
		require.NoError(tst, s.Write(dir, format))

		r, err := ReadSnapshot(dir, 10, format)
		require.NoError(tst, err)
		io.Pforan("%s: t=%g meqn=%d mx=%d my=%d\n", format, r.T, r.Meqn, r.Mx, r.My)
		chk.Float64(tst, "t", 1e-15, r.T, 7.5)
		chk.Int(tst, "meqn", r.Meqn, 4)
		chk.Int(tst, "mx", r.Mx, 3)
		chk.Int(tst, "my", r.My, 3)
		chk.Array(tst, "x", 1e-15, r.X, s.X)
		chk.Array(tst, "y", 1e-15, r.Y, s.Y)
		for m := 0; m < 4; m++ {
			for i := 0; i < 3; i++ {
				chk.Array(tst, io.Sf("%s: q[%d][%d]", format, m, i), 1e-15, r.Q[m][i], s.Q[m][i])
			}
		}

		// missing frame
		_, err = ReadSnapshot(dir, 11, format)
		require.True(tst, errors.Is(err, ErrNotFound))
	}

	_, err := ReadSnapshot(tst.TempDir(), 0, "netcdf")
	require.Error(tst, err)
}

func Test_snapshot03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("snapshot03. invalid frames")

	dir := tst.TempDir()
	s := grid3x3()
	require.NoError(tst, s.Write(dir, Ascii))

	// truncated values
	qfn := filepath.Join(dir, FrameFile('q', 0))
	b, err := os.ReadFile(qfn)
	require.NoError(tst, err)
	require.NoError(tst, os.WriteFile(qfn, b[:len(b)/2], 0644))
	_, err = ReadSnapshot(dir, 0, Ascii)
	require.Error(tst, err)
	io.Pforan("%v\n", err)

	// multiple patches
	tfn := filepath.Join(dir, FrameFile('t', 0))
	require.NoError(tst, os.WriteFile(tfn, []byte("0.0 time\n4 meqn\n2 ngrids\n"), 0644))
	_, err = ReadSnapshot(dir, 0, Ascii)
	require.Error(tst, err)

	// ghost cells are required by binary frames only
	for _, format := range []string{Ascii, Binary} {
		dir = tst.TempDir()
		s.Nghost = 2
		require.NoError(tst, s.Write(dir, format))
		tfn = filepath.Join(dir, FrameFile('t', 0))
		b, err = os.ReadFile(tfn)
		require.NoError(tst, err)
		var keep []string
		for _, l := range strings.Split(string(b), "\n") {
			if !strings.Contains(l, "nghost") {
				keep = append(keep, l)
			}
		}
		require.NoError(tst, os.WriteFile(tfn, []byte(strings.Join(keep, "\n")), 0644))
		r, err := ReadSnapshot(dir, 0, format)
		if format == Binary {
			require.Error(tst, err)
			io.Pforan("%v\n", err)
			continue
		}
		require.NoError(tst, err)
		chk.Int(tst, "nghost", r.Nghost, 0)
		chk.Array(tst, "surface", 1e-15, r.Q[3][2], s.Q[3][2])
	}
}
