// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/require"
)

func Test_job01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job01")

	job, err := NewHumpJob(true, Pressure, false, "/data/hump")
	require.NoError(tst, err)
	io.Pforan("%v\n", job)

	chk.String(tst, job.Prefix(), "T_F_pressure")
	chk.String(tst, job.OutputPath(), filepath.Join("/data/hump", "T_F_pressure_output"))
	chk.String(tst, job.DataPath(), filepath.Join("/data/hump", "T_F_pressure_data"))

	// pure function of the tuple
	again, err := NewHumpJob(true, Pressure, false, "/data/hump")
	require.NoError(tst, err)
	chk.String(tst, again.Prefix(), job.Prefix())
	chk.String(tst, job.Label(), "T-p")
}

func Test_job02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job02")

	job, err := NewStormJob(false, 2, 1000, "")
	require.NoError(tst, err)
	chk.String(tst, job.Prefix(), "F_n2_d1000")
	chk.String(tst, job.OutputPath(), "F_n2_d1000_output")
	chk.String(tst, job.String(), "Job F_n2_d1000 (storm)\n  Output: F_n2_d1000_output\n  Split: false\n  Resolution: 2\n  Depth: 1000")
}

func Test_job03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job03. configuration errors")

	var cerr *ConfigError

	_, err := NewHumpJob(true, TestType("wind"), true, "")
	require.Error(tst, err)
	require.True(tst, errors.As(err, &cerr))
	chk.String(tst, cerr.Field, "test_type")

	_, err = NewJob(Family("tides"), JobPrms{TestType: Pressure, Ratio: 1})
	require.True(tst, errors.As(err, &cerr))
	chk.String(tst, cerr.Field, "family")

	_, err = NewStormJob(true, 0, 1000, "")
	require.True(tst, errors.As(err, &cerr))
	chk.String(tst, cerr.Field, "ratio")

	// hump does not vary the depth: accepting it would alias prefixes
	_, err = NewJob(Hump, JobPrms{TestType: Pressure, Ratio: 1, Depth: 500})
	require.True(tst, errors.As(err, &cerr))
	chk.String(tst, cerr.Field, "depth")

	// storm does not vary the physics
	_, err = NewJob(Storm, JobPrms{TestType: Pressure, Ratio: 1, Depth: 500})
	require.True(tst, errors.As(err, &cerr))
	chk.String(tst, cerr.Field, "dimensional")

	_, err = NewStormJob(true, 1, 1000.5, "")
	require.True(tst, errors.As(err, &cerr))
	chk.String(tst, cerr.Field, "depth")
}

func Test_job04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job04. unique prefixes")

	for _, fam := range Families() {
		jobs, err := Matrix(fam, "/tmp")
		require.NoError(tst, err)
		seen := make(map[string]bool)
		for _, job := range jobs {
			if seen[job.Prefix()] {
				tst.Errorf("%s: prefix %q is repeated", fam, job.Prefix())
			}
			seen[job.Prefix()] = true
		}
		io.Pforan("%s: %d jobs\n", fam, len(jobs))
	}

	hump, err := HumpMatrix("")
	require.NoError(tst, err)
	chk.Int(tst, "len(hump)", len(hump), 8)
	chk.String(tst, hump[0].Prefix(), "T_T_pressure")
	chk.String(tst, hump[7].Prefix(), "F_F_bathymetry")

	storm, err := StormMatrix("")
	require.NoError(tst, err)
	chk.Int(tst, "len(storm)", len(storm), 24)
	chk.String(tst, storm[0].Prefix(), "T_n1_d500")
	chk.String(tst, storm[23].Prefix(), "F_n3_d3000")

	cmp, err := ComparisonJobs(false, "")
	require.NoError(tst, err)
	var labels []string
	for _, job := range cmp {
		labels = append(labels, job.Label())
	}
	require.Equal(tst, []string{"T-p", "T-b", "F-p", "F-b"}, labels)
	chk.String(tst, cmp[3].Prefix(), "F_F_bathymetry")
}

func Test_job05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("job05. data root")

	tst.Setenv("DATA_PATH", "/scratch/data")
	root, err := DataRoot("well-balanced-pressure", "hump")
	require.NoError(tst, err)
	chk.String(tst, root, filepath.Join("/scratch/data", "well-balanced-pressure", "hump"))

	tst.Setenv("DATA_PATH", "")
	_, err = DataRoot("hump")
	require.Error(tst, err)
}
