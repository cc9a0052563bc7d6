// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/mandli/well-balanced-pressure/inp"
)

func init() {
	io.Verbose = false
}

func verbose() {
	io.Verbose = true
	chk.Verbose = true
}

// events collects what happened to jobs, in order
type events struct {
	mu   sync.Mutex
	list []string
}

func (o *events) add(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.list = append(o.list, io.Sf(format, args...))
}

func (o *events) get() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string{}, o.list...)
}

// memWriter keeps run data in memory
type memWriter struct{ ev *events }

func (o *memWriter) Write(t *Task) (string, error) {
	o.ev.add("write:%s", t.Job.Prefix())
	return inp.RunDataFile(t.Job.DataPath(), t.Data.Encoder), nil
}

// fakeLauncher starts processes that exit with the codes in fail
type fakeLauncher struct {
	ev      *events
	fail    map[string]int // prefix => exit code
	release chan struct{}  // if not nil, processes exit once it is closed
	started chan string    // if not nil, receives prefixes of started processes
}

func (o *fakeLauncher) Start(ctx context.Context, t *Task) (Process, error) {
	o.ev.add("start:%s", t.Job.Prefix())
	if o.started != nil {
		o.started <- t.Job.Prefix()
	}
	return &fakeProcess{l: o, prefix: t.Job.Prefix(), code: o.fail[t.Job.Prefix()]}, nil
}

type fakeProcess struct {
	l      *fakeLauncher
	prefix string
	code   int
}

func (o *fakeProcess) Wait() error {
	if o.l.release != nil {
		<-o.l.release
	}
	o.l.ev.add("end:%s", o.prefix)
	if o.code != 0 {
		return &SolverError{Prefix: o.prefix, ExitCode: o.code, Err: chk.Err("exit status %d", o.code)}
	}
	return nil
}

// fakePlotter records plotted directories
type fakePlotter struct{ ev *events }

func (o *fakePlotter) Plot(ctx context.Context, outdir string) error {
	o.ev.add("plot:%s", outdir)
	return nil
}

// memRecorder keeps records in memory
type memRecorder struct {
	mu   sync.Mutex
	recs map[string]*Record
}

func (o *memRecorder) Record(ctx context.Context, r *Record) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.recs == nil {
		o.recs = make(map[string]*Record)
	}
	cpy := *r
	o.recs[r.Prefix] = &cpy
	return nil
}

// newTestController returns a controller over the hump jobs with fake collaborators
func newTestController(base string, wait bool, fail map[string]int) (*Controller, *events, *memRecorder, error) {
	tpl, err := inp.DefaultTemplate(inp.Hump)
	if err != nil {
		return nil, nil, nil, err
	}
	tpl.PlotCmd = []string{"true"}
	jobs, err := inp.HumpMatrix(base)
	if err != nil {
		return nil, nil, nil, err
	}
	o, err := NewController(tpl, jobs[:4], wait, true)
	if err != nil {
		return nil, nil, nil, err
	}
	ev := new(events)
	rec := new(memRecorder)
	o.Writer = &memWriter{ev}
	o.Launcher = &fakeLauncher{ev: ev, fail: fail}
	o.Plotter = &fakePlotter{ev}
	o.Recorder = rec
	return o, ev, rec, nil
}
