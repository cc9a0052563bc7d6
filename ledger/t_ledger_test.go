// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/mandli/well-balanced-pressure/batch"
	"github.com/mandli/well-balanced-pressure/inp"
	"github.com/stretchr/testify/require"
)

func init() {
	io.Verbose = false
}

// okLauncher starts processes that exit successfully
type okLauncher struct{}

func (okLauncher) Start(ctx context.Context, t *batch.Task) (batch.Process, error) { return okProcess{}, nil }

type okProcess struct{}

func (okProcess) Wait() error { return nil }

// nopWriter skips writing run data
type nopWriter struct{}

func (nopWriter) Write(t *batch.Task) (string, error) { return "", nil }

func Test_ledger01(tst *testing.T) {

	chk.PrintTitle("ledger01")

	ctx := context.Background()
	fn := filepath.Join(tst.TempDir(), "records", FileName)
	led, err := Open(fn)
	require.NoError(tst, err)
	defer led.Close()

	tpl, err := inp.DefaultTemplate(inp.Storm)
	require.NoError(tst, err)
	jobs, err := inp.StormMatrix("/data/storm")
	require.NoError(tst, err)

	// two batches, the second without waiting
	var ids []string
	for _, wait := range []bool{true, false} {
		o, err := batch.NewController(tpl, jobs[:3], wait, false)
		require.NoError(tst, err)
		o.Writer = nopWriter{}
		o.Launcher = okLauncher{}
		o.Recorder = led
		require.NoError(tst, o.Run(ctx))
		require.NoError(tst, o.Wait())
		ids = append(ids, o.RunID.String())
	}

	all, err := led.Entries(ctx, "")
	require.NoError(tst, err)
	chk.Int(tst, "number of entries", len(all), 6)

	first, err := led.Entries(ctx, ids[0])
	require.NoError(tst, err)
	chk.Int(tst, "entries of first run", len(first), 3)
	for i, r := range first {
		io.Pforan("%s %s %s %v\n", r.RunID, r.Prefix, r.Status, r.Finished.Sub(r.Started))
		chk.String(tst, r.Prefix, jobs[i].Prefix())
		chk.String(tst, r.Family, "storm")
		chk.String(tst, string(r.Status), "ok")
		chk.Int(tst, "exit code", r.ExitCode, 0)
		chk.String(tst, r.RunID.String(), ids[0])
		require.False(tst, r.Finished.Before(r.Started))
	}

	none, err := led.Entries(ctx, "00000000-0000-0000-0000-000000000000")
	require.NoError(tst, err)
	chk.Int(tst, "unknown run", len(none), 0)

	// reopen
	require.NoError(tst, led.Close())
	led, err = Open(fn)
	require.NoError(tst, err)
	defer led.Close()
	all, err = led.Entries(ctx, "")
	require.NoError(tst, err)
	chk.Int(tst, "entries after reopening", len(all), 6)
}
