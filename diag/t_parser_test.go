// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

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

// step returns the three diagnostic lines of one time step
func step(t, mass, ke, pe float64) string {
	return io.Sf(" time t = %.6E, total mass = %.6E diff: = %.3E\n", t, mass, 0.0) +
		io.Sf(" time t = %.6E, total KE = %.6E diff: = %.3E\n", t, ke, ke-1) +
		io.Sf(" time t = %.6E, total PE = %.6E diff: = %.3E\n", t, pe, pe-2)
}

func Test_parse01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("parse01")

	var b strings.Builder
	b.WriteString("AMR level 1  grids: 1\n")
	for i := 0; i < 3; i++ {
		b.WriteString(step(float64(i)*10, 100, float64(i+1), float64(2*i+2)))
		b.WriteString("  regridding at level 1\n")
	}

	s, err := Parse(strings.NewReader(b.String()))
	require.NoError(tst, err)
	io.Pforan("t  = %v\n", s.T)
	io.Pforan("KE = %v\n", s.KE)

	chk.Int(tst, "len", s.Len(), 3)
	chk.Array(tst, "t", 1e-15, s.T, []float64{0, 10, 20})
	chk.Array(tst, "mass", 1e-15, s.Mass, []float64{100, 100, 100})
	chk.Array(tst, "KE", 1e-15, s.KE, []float64{1, 2, 3})
	chk.Array(tst, "PE", 1e-15, s.PE, []float64{2, 4, 6})
	chk.Array(tst, "KE drift", 1e-15, s.KEDrift, []float64{0, 1, 2})
	chk.Array(tst, "E", 1e-15, s.Energy(), []float64{3, 6, 9})
	require.NoError(tst, s.Check())
}

func Test_parse02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("parse02. malformed logs")

	var perr *ParseError

	// unknown quantity
	log := step(0, 1, 1, 1) + " time t = 1.0E+00, total vorticity = 1.0E+00 diff: = 0.0E+00\n"
	_, err := Parse(strings.NewReader(log))
	require.True(tst, errors.As(err, &perr))
	chk.Int(tst, "line", perr.Line, 4)
	io.Pforan("%v\n", err)

	// truncated at the end
	log = step(0, 1, 1, 1) + " time t = 1.0E+00, total mass = 1.0E+00 diff: = 0.0E+00\n"
	_, err = Parse(strings.NewReader(log))
	require.True(tst, errors.Is(err, ErrTruncated))

	// new step before the previous one is complete
	log = " time t = 0.0E+00, total mass = 1.0E+00 diff: = 0.0E+00\n" + step(1, 1, 1, 1)
	_, err = Parse(strings.NewReader(log))
	require.True(tst, errors.Is(err, ErrTruncated))
	require.True(tst, errors.As(err, &perr))
	chk.Int(tst, "line", perr.Line, 2)

	// energy before mass
	log = " time t = 0.0E+00, total KE = 1.0E+00 diff: = 0.0E+00\n"
	_, err = Parse(strings.NewReader(log))
	require.True(tst, errors.As(err, &perr))
	require.False(tst, errors.Is(err, ErrTruncated))

	// short line
	_, err = Parse(strings.NewReader(" time t = 0.0E+00, total mass\n"))
	require.True(tst, errors.As(err, &perr))

	// invalid number
	_, err = Parse(strings.NewReader(" time t = 0.0E+00, total mass = abc diff: = 0.0E+00\n"))
	require.True(tst, errors.As(err, &perr))
	require.Error(tst, perr.Unwrap())
}

func Test_parse03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("parse03. file and rescaling")

	dir := tst.TempDir()
	fortran := strings.NewReplacer("E+", "D+", "E-", "D-")
	log := fortran.Replace(step(0, 5, 2, 6)) + step(4, 5, 4, 4)
	require.NoError(tst, os.WriteFile(filepath.Join(dir, LogFile), []byte(log), 0644))

	s, err := ReadFile(dir)
	require.NoError(tst, err)
	chk.Array(tst, "KE", 1e-15, s.KE, []float64{2, 4})

	res, err := s.Nondim(2, 4)
	require.NoError(tst, err)
	chk.Array(tst, "t/T0", 1e-15, res.T, []float64{0, 2})
	chk.Array(tst, "E/E0", 1e-15, res.E, []float64{2, 2})
	chk.Array(tst, "KE/E0", 1e-15, res.KE, []float64{0.5, 1})
	chk.Array(tst, "PE/E0", 1e-15, res.PE, []float64{1.5, 1})

	_, err = s.Nondim(0, 1)
	require.Error(tst, err)

	_, err = ReadFile(filepath.Join(dir, "missing"))
	require.Error(tst, err)

	// truncated series cannot be rescaled
	s.PE = s.PE[:1]
	_, err = s.Nondim(1, 1)
	require.True(tst, errors.Is(err, ErrTruncated))
}
