// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package batch implements the controller that writes run data and launches
// the solver for a list of jobs
package batch

import (
	"context"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"
	"github.com/mandli/well-balanced-pressure/inp"
)

// Policy defines what happens to the queue when a job fails
type Policy int

// failure policies
const (
	AbortOnFailure    Policy = iota // stop at the first failing job and return its error
	ContinueOnFailure               // run all jobs and return all failures joined
)

func (o Policy) String() string {
	switch o {
	case AbortOnFailure:
		return "abort"
	case ContinueOnFailure:
		return "continue"
	}
	return io.Sf("Policy(%d)", int(o))
}

// ParsePolicy returns the policy named "abort" or "continue"
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "abort":
		return AbortOnFailure, nil
	case "continue":
		return ContinueOnFailure, nil
	}
	return 0, chk.Err("failure policy %q is not available; options are \"abort\" and \"continue\"", name)
}

// SolverError reports a solver run that could not start or exited with a non-zero code
type SolverError struct {
	Prefix   string // job prefix
	ExitCode int    // exit code; -1 if the process did not run to completion
	Err      error  // underlying error
}

func (o *SolverError) Error() string {
	return io.Sf("solver failed for job %s (exit code %d): %v", o.Prefix, o.ExitCode, o.Err)
}

func (o *SolverError) Unwrap() error { return o.Err }

// Task pairs a job with the run data owned by it
type Task struct {
	Job  *inp.Job
	Data *inp.RunData
}

// Writer materializes the run data of a task
type Writer interface {
	Write(t *Task) (fnpath string, err error)
}

// Process is a started solver run
type Process interface {
	Wait() error // blocks until the process exits; non-zero exit gives *SolverError
}

// Launcher starts the solver for a task
type Launcher interface {
	Start(ctx context.Context, t *Task) (Process, error)
}

// Plotter post-processes the output directory of a successful job
type Plotter interface {
	Plot(ctx context.Context, outdir string) error
}

// Status of a job execution
type Status string

// statuses
const (
	StatusOK     Status = "ok"     // solver exited with zero
	StatusFailed Status = "failed" // solver exited with non-zero code or could not start
	StatusError  Status = "error"  // run data could not be written
)

// Record holds the outcome of one job execution
type Record struct {
	RunID    uuid.UUID // controller run identifier
	Prefix   string    // job prefix
	Family   string    // job family
	Output   string    // output directory
	Started  time.Time // start time
	Finished time.Time // end time
	ExitCode int       // solver exit code; -1 if unknown
	Status   Status    // outcome
	Message  string    // error message, if any
}

// Recorder stores execution records
type Recorder interface {
	Record(ctx context.Context, r *Record) error
}
