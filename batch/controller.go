// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package batch

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"
	"github.com/mandli/well-balanced-pressure/inp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Controller runs the solver for an ordered list of tasks
type Controller struct {
	Tasks    []*Task     // jobs and their run data, in execution order
	Blocking bool        // block until each job completes before starting the next
	Plot     bool        // plot successful jobs; only when Blocking is set
	Policy   Policy      // failure policy
	RunID    uuid.UUID   // identifier of this batch
	Writer   Writer      // writes run data
	Launcher Launcher    // starts solvers
	Plotter  Plotter     // plots output; may be nil
	Recorder Recorder    // stores execution records; may be nil
	Logger   *zap.Logger // structured logger

	// background solvers
	group *errgroup.Group
	mu    sync.Mutex
	errs  []error
}

// NewController builds the run data of all jobs from a template
//  Note: the template is not modified; each task owns a copy
func NewController(template *inp.RunData, jobs []*inp.Job, wait, plot bool) (o *Controller, err error) {
	if template == nil {
		return nil, chk.Err("controller requires a run data template")
	}
	if plot && wait && len(template.PlotCmd) == 0 {
		return nil, &inp.ConfigError{Field: "plot_cmd", Value: "", Msg: "plotting requires a plot command in the template"}
	}
	o = &Controller{
		Blocking: wait,
		Plot:     plot,
		Policy:   AbortOnFailure,
		RunID:    uuid.New(),
		Writer:   &FileWriter{},
		Launcher: &ExecLauncher{},
		Logger:   zap.NewNop(),
	}
	seen := make(map[string]bool)
	for _, job := range jobs {
		if seen[job.Prefix()] {
			return nil, chk.Err("job %q is repeated", job.Prefix())
		}
		seen[job.Prefix()] = true
		rd, err := inp.Build(template, job)
		if err != nil {
			return nil, err
		}
		o.Tasks = append(o.Tasks, &Task{Job: job, Data: rd})
	}
	if plot && len(template.PlotCmd) > 0 {
		o.Plotter = &CommandPlotter{Cmd: template.PlotCmd}
	}
	return
}

// String returns a summary of the controller and its jobs
func (o *Controller) String() string {
	var b bytes.Buffer
	io.Ff(&b, "Controller %s: %d jobs\n", o.RunID, len(o.Tasks))
	io.Ff(&b, "  Wait: %v\n  Plot: %v\n  Policy: %v\n", o.Blocking, o.Plot, o.Policy)
	for _, t := range o.Tasks {
		io.Ff(&b, "%v\n", t.Job)
	}
	return b.String()
}

// Run processes all tasks in order
//  Note: with Blocking unset, Run returns once all solvers are started;
//        call Controller.Wait to collect their exit status
func (o *Controller) Run(ctx context.Context) error {
	if o.Writer == nil || o.Launcher == nil {
		return chk.Err("controller requires a writer and a launcher")
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if !o.Blocking && o.group == nil {
		o.group = new(errgroup.Group)
	}
	o.Logger.Info("batch started",
		zap.String("run_id", o.RunID.String()),
		zap.Int("jobs", len(o.Tasks)),
		zap.Bool("wait", o.Blocking),
		zap.Stringer("policy", o.Policy))

	var errs []error
	for _, t := range o.Tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := o.run(ctx, t)
		if err == nil {
			continue
		}
		if o.Policy == AbortOnFailure {
			o.Logger.Error("batch aborted", zap.String("prefix", t.Job.Prefix()), zap.Error(err))
			return err
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Wait blocks until all solvers started by Run with Blocking unset have exited
//  Note: with AbortOnFailure, the first failure is returned; otherwise all failures are joined
func (o *Controller) Wait() error {
	if o.group == nil {
		return nil
	}
	err := o.group.Wait()
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Policy == ContinueOnFailure {
		return errors.Join(o.errs...)
	}
	return err
}

// run writes run data, starts the solver and, if waiting, collects its status
func (o *Controller) run(ctx context.Context, t *Task) error {
	log := o.Logger.With(zap.String("prefix", t.Job.Prefix()))
	rec := &Record{
		RunID:    o.RunID,
		Prefix:   t.Job.Prefix(),
		Family:   string(t.Job.Family()),
		Output:   t.Job.OutputPath(),
		Started:  time.Now(),
		ExitCode: -1,
	}

	fnpath, err := o.Writer.Write(t)
	if err != nil {
		err = chk.Err("cannot write run data for job %s:\n%v", t.Job.Prefix(), err)
		o.finish(ctx, rec, StatusError, err)
		return err
	}
	log.Debug("run data written", zap.String("file", fnpath))

	proc, err := o.Launcher.Start(ctx, t)
	if err != nil {
		o.finish(ctx, rec, StatusFailed, err)
		return err
	}
	log.Info("solver started", zap.String("output", t.Job.OutputPath()))

	if !o.Blocking {
		o.group.Go(func() error {
			err := o.reap(ctx, rec, proc)
			if err != nil {
				o.mu.Lock()
				o.errs = append(o.errs, err)
				o.mu.Unlock()
			}
			return err
		})
		return nil
	}

	if err = o.reap(ctx, rec, proc); err != nil {
		return err
	}
	if o.Plot && o.Plotter != nil {
		if err = o.Plotter.Plot(ctx, t.Job.OutputPath()); err != nil {
			log.Warn("plotting failed", zap.Error(err))
			return chk.Err("cannot plot output of job %s:\n%v", t.Job.Prefix(), err)
		}
		log.Debug("output plotted")
	}
	return nil
}

// reap waits for a solver and records its outcome
func (o *Controller) reap(ctx context.Context, rec *Record, proc Process) error {
	err := proc.Wait()
	if err != nil {
		o.finish(ctx, rec, StatusFailed, err)
		return err
	}
	rec.ExitCode = 0
	o.finish(ctx, rec, StatusOK, nil)
	return nil
}

// finish logs and records the outcome of a job
func (o *Controller) finish(ctx context.Context, rec *Record, status Status, err error) {
	rec.Finished = time.Now()
	rec.Status = status
	fields := []zap.Field{
		zap.String("prefix", rec.Prefix),
		zap.String("status", string(status)),
		zap.Duration("elapsed", rec.Finished.Sub(rec.Started)),
	}
	if err != nil {
		rec.Message = err.Error()
		var serr *SolverError
		if errors.As(err, &serr) {
			rec.ExitCode = serr.ExitCode
		}
		o.Logger.Error("job failed", append(fields, zap.Int("exit_code", rec.ExitCode), zap.Error(err))...)
	} else {
		o.Logger.Info("job finished", fields...)
	}
	if o.Recorder == nil {
		return
	}
	if e := o.Recorder.Record(ctx, rec); e != nil {
		o.Logger.Warn("cannot record job", zap.String("prefix", rec.Prefix), zap.Error(e))
	}
}
