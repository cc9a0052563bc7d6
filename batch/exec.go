// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"context"
	"errors"
	goio "io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/mandli/well-balanced-pressure/inp"
)

// LogFile is the name of the file, inside the data directory, receiving the solver's output
const LogFile = "solver.log"

// Expand replaces the placeholders {data}, {output}, {prefix} and {rundata} in args
//  Note: paths are absolute since the solver runs inside the data directory
func Expand(args []string, t *Task) ([]string, error) {
	data, err := filepath.Abs(t.Job.DataPath())
	if err != nil {
		return nil, chk.Err("cannot resolve data directory of job %s:\n%v", t.Job.Prefix(), err)
	}
	output, err := filepath.Abs(t.Job.OutputPath())
	if err != nil {
		return nil, chk.Err("cannot resolve output directory of job %s:\n%v", t.Job.Prefix(), err)
	}
	r := strings.NewReplacer(
		"{data}", data,
		"{output}", output,
		"{prefix}", t.Job.Prefix(),
		"{rundata}", inp.RunDataFile(data, t.Data.Encoder),
	)
	res := make([]string, len(args))
	for i, a := range args {
		res[i] = r.Replace(a)
	}
	return res, nil
}

// FileWriter saves run data into the data directory of each job
type FileWriter struct {
	Verbose bool // print file names
}

// Write implements Writer
func (o *FileWriter) Write(t *Task) (string, error) {
	return t.Data.Save(t.Job.DataPath(), o.Verbose)
}

// ExecLauncher starts the solver executable named in the run data
//  Note: the process runs in the data directory; the solver creates the output directory
type ExecLauncher struct {
	Output goio.Writer // receives stdout and stderr; nil means {data}/solver.log
	Env    []string    // extra environment variables; e.g. "OMP_NUM_THREADS=4"
}

// Start implements Launcher
func (o *ExecLauncher) Start(ctx context.Context, t *Task) (Process, error) {
	prefix := t.Job.Prefix()
	if t.Data.Executable == "" {
		return nil, &SolverError{Prefix: prefix, ExitCode: -1, Err: chk.Err("executable is not set")}
	}
	args, err := Expand(t.Data.Args, t)
	if err != nil {
		return nil, &SolverError{Prefix: prefix, ExitCode: -1, Err: err}
	}
	cmd := exec.CommandContext(ctx, t.Data.Executable, args...)
	if cmd.Dir, err = filepath.Abs(t.Job.DataPath()); err != nil {
		return nil, &SolverError{Prefix: prefix, ExitCode: -1, Err: err}
	}
	if len(o.Env) > 0 {
		cmd.Env = append(os.Environ(), o.Env...)
	}
	p := &execProcess{cmd: cmd, prefix: prefix}
	if o.Output != nil {
		cmd.Stdout = o.Output
		cmd.Stderr = o.Output
	} else {
		fil, err := os.Create(filepath.Join(cmd.Dir, LogFile))
		if err != nil {
			return nil, &SolverError{Prefix: prefix, ExitCode: -1, Err: err}
		}
		cmd.Stdout = fil
		cmd.Stderr = fil
		p.log = fil
	}
	if err := cmd.Start(); err != nil {
		p.close()
		return nil, &SolverError{Prefix: prefix, ExitCode: -1, Err: err}
	}
	return p, nil
}

// execProcess implements Process for a started command
type execProcess struct {
	cmd    *exec.Cmd
	prefix string
	log    *os.File
}

// Wait implements Process
func (o *execProcess) Wait() error {
	err := o.cmd.Wait()
	o.close()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &SolverError{Prefix: o.prefix, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return &SolverError{Prefix: o.prefix, ExitCode: -1, Err: err}
}

func (o *execProcess) close() {
	if o.log != nil {
		o.log.Close()
		o.log = nil
	}
}

// CommandPlotter runs a plotting command; "{output}" in Cmd is replaced by the output directory
type CommandPlotter struct {
	Cmd    []string    // command and arguments; e.g. {"python", "setplot.py", "{output}"}
	Output goio.Writer // receives stdout and stderr; may be nil
}

// Plot implements Plotter
func (o *CommandPlotter) Plot(ctx context.Context, outdir string) error {
	if len(o.Cmd) == 0 {
		return chk.Err("plot command is empty")
	}
	args := make([]string, len(o.Cmd))
	for i, a := range o.Cmd {
		args[i] = strings.ReplaceAll(a, "{output}", outdir)
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = o.Output
	cmd.Stderr = o.Output
	if err := cmd.Run(); err != nil {
		return chk.Err("plot command %q failed:\n%v", strings.Join(args, " "), err)
	}
	return nil
}
