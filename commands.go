// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cpmech/gosl/io"
	"github.com/mandli/well-balanced-pressure/ana"
	"github.com/mandli/well-balanced-pressure/batch"
	"github.com/mandli/well-balanced-pressure/diag"
	"github.com/mandli/well-balanced-pressure/inp"
	"github.com/mandli/well-balanced-pressure/ledger"
	"github.com/mandli/well-balanced-pressure/out"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// flags
var (
	family      string  // job family
	base        string  // base path of outputs
	template    string  // template file
	noWait      bool    // do not wait for solvers
	plot        bool    // plot after each job
	policy      string  // failure policy
	encoder     string  // run data encoder
	record      bool    // record executions in the ledger
	ledgerFile  string  // ledger file
	runID       string  // run id filter
	frame       int     // output frame
	y0          float64 // transect position
	ytol        float64 // transect tolerance
	field       string  // field name
	format      string  // snapshot format
	dimensional bool    // dimensional comparison
	scale       float64 // transect scale
	maxAbs      bool    // report maximum absolute value
	depth       float64 // basin depth for reference scales
	nondim      bool    // normalise diagnostics
	tfinal      float64 // final time of energy samples
	nsamples    int     // number of energy samples
)

// storm parameters
var storm = struct {
	rho, g, eta0, R, Fr float64
}{}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List the jobs of a family",
	RunE: func(cmd *cobra.Command, args []string) error {
		fam := inp.Family(family)
		path, err := basePath(base, fam)
		if err != nil {
			path = "."
		}
		jobs, err := inp.Matrix(fam, path)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			io.Pf("%v\n", job)
		}
		io.Pfgreen("%d jobs\n", len(jobs))
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Write run data and launch the solver for all jobs of a family",
	RunE: func(cmd *cobra.Command, args []string) error {
		fam := inp.Family(family)
		path, err := basePath(base, fam)
		if err != nil {
			return err
		}
		tpl, err := readTemplate(fam)
		if err != nil {
			return err
		}
		if encoder != "" {
			tpl.Encoder = encoder
		}
		jobs, err := inp.Matrix(fam, path)
		if err != nil {
			return err
		}
		ctrl, err := batch.NewController(tpl, jobs, !noWait, plot)
		if err != nil {
			return err
		}
		if ctrl.Policy, err = batch.ParsePolicy(policy); err != nil {
			return err
		}
		ctrl.Writer = &batch.FileWriter{Verbose: verbose}
		ctrl.Logger = logger
		if record {
			fn := ledgerFile
			if fn == "" {
				fn = filepath.Join(path, ledger.FileName)
			}
			led, err := ledger.Open(fn)
			if err != nil {
				return err
			}
			defer led.Close()
			ctrl.Recorder = led
		}
		io.Pf("%v\n", ctrl)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err = ctrl.Run(ctx); err != nil {
			return err
		}
		if err = ctrl.Wait(); err != nil {
			return err
		}
		logger.Info("batch finished", zap.String("run_id", ctrl.RunID.String()))
		return nil
	},
}

var diagCmd = &cobra.Command{
	Use:   "diag OUTDIR",
	Short: "Print the conservation diagnostics of an output directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := diag.ReadFile(args[0])
		if err != nil {
			return err
		}
		if !nondim {
			io.Pf("%14s%14s%14s%14s%14s%14s%14s\n", "t", "mass", "KE", "PE", "dmass", "dKE", "dPE")
			for i := 0; i < s.Len(); i++ {
				io.Pf("%14.6e%14.6e%14.6e%14.6e%14.6e%14.6e%14.6e\n", s.T[i], s.Mass[i], s.KE[i], s.PE[i], s.MassDrift[i], s.KEDrift[i], s.PEDrift[i])
			}
			return nil
		}
		sol, err := newStorm()
		if err != nil {
			return err
		}
		E0, err := sol.E0(0)
		if err != nil {
			return err
		}
		res, err := s.Nondim(sol.T0(depth), E0)
		if err != nil {
			return err
		}
		io.Pf("%14s%14s%14s%14s\n", "t/T0", "E/E0", "KE/E0", "PE/E0")
		for i := range res.T {
			io.Pf("%14.6e%14.6e%14.6e%14.6e\n", res.T[i], res.E[i], res.KE[i], res.PE[i])
		}
		return nil
	},
}

var energyCmd = &cobra.Command{
	Use:   "energy",
	Short: "Print the reference energy of a pressure storm",
	RunE: func(cmd *cobra.Command, args []string) error {
		sol, err := newStorm()
		if err != nil {
			return err
		}
		io.Pf("%-20s = %g\n", "density rho", sol.Rho)
		io.Pf("%-20s = %g\n", "gravity g", sol.G)
		io.Pf("%-20s = %g\n", "pressure deficit dp", sol.Dp)
		io.Pf("%-20s = %g\n", "radius R", sol.R)
		io.Pf("%-20s = %g\n", "speed U", sol.U)
		io.Pf("%-20s = %g\n", "time scale T0", sol.T0(depth))
		t, E, err := sol.Sample(tfinal, nsamples)
		if err != nil {
			return err
		}
		io.Pf("%14s%14s\n", "t", "E0")
		for i := range t {
			io.Pf("%14.6e%14.6e\n", t[i], E[i])
		}
		return nil
	},
}

var transectCmd = &cobra.Command{
	Use:   "transect OUTDIR",
	Short: "Print a field along the grid row nearest to y0",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := out.ParseField(field)
		if err != nil {
			return err
		}
		s, err := out.ReadSnapshot(args[0], frame, format)
		if err != nil {
			return err
		}
		ex, err := out.NewExtractor(s.Meqn, out.DryTol)
		if err != nil {
			return err
		}
		if maxAbs {
			v, i, j, err := ex.MaxAbs(s, f)
			if err != nil {
				return err
			}
			io.Pf("max |%s| = %g at (x, y) = (%g, %g)\n", f, v, s.X[i], s.Y[j])
			return nil
		}
		x, v, err := ex.Transect(s, y0, ytol, f)
		if err != nil {
			return err
		}
		line := &out.Line{Label: filepath.Base(args[0]), X: x, V: v}
		if scale != 1 {
			if err = line.Scale(scale); err != nil {
				return err
			}
		}
		cmp := &out.Comparison{Field: f, Y0: y0, Lines: []*out.Line{line}}
		if cmp.Vmin, cmp.Vmax, err = out.Limits(line); err != nil {
			return err
		}
		io.Pf("%s", cmp.Print())
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a field of split and unsplit hump runs along y0",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := out.ParseField(field)
		if err != nil {
			return err
		}
		path, err := basePath(base, inp.Hump)
		if err != nil {
			return err
		}
		jobs, err := inp.ComparisonJobs(dimensional, path)
		if err != nil {
			return err
		}
		var sources []out.Source
		meqn := 0
		for _, job := range jobs {
			s, err := out.ReadSnapshot(job.OutputPath(), frame, format)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Prefix(), err)
			}
			sources = append(sources, out.Source{Label: job.Label(), Snap: s})
			meqn = s.Meqn
		}
		ex, err := out.NewExtractor(meqn, out.DryTol)
		if err != nil {
			return err
		}
		res, err := ex.Compare(f, y0, ytol, sources...)
		if err != nil {
			return err
		}
		title := "Non-Dimensional"
		if dimensional {
			title = "Dimensional"
		}
		io.Pfyel("%s: %s comparison\n", title, f)
		io.Pf("%s", res.Print())
		return nil
	},
}

var trackCmd = &cobra.Command{
	Use:   "track OUTDIR",
	Short: "Print the storm centre and bounding box at a frame",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trk, err := out.ReadTrack(args[0])
		if err != nil {
			return err
		}
		t, x, y, err := trk.At(frame)
		if err != nil {
			return err
		}
		sol, err := newStorm()
		if err != nil {
			return err
		}
		xmin, xmax, ymin, ymax := sol.Box(t)
		io.Pf("frame %d: t = %g, centre = (%g, %g)\n", frame, t, x, y)
		io.Pf("box: x ∈ [%g, %g], y ∈ [%g, %g]\n", xmin, xmax, ymin, ymax)
		return nil
	},
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List recorded job executions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fn := ledgerFile
		if fn == "" {
			path, err := basePath(base, inp.Family(family))
			if err != nil {
				return err
			}
			fn = filepath.Join(path, ledger.FileName)
		}
		led, err := ledger.Open(fn)
		if err != nil {
			return err
		}
		defer led.Close()
		entries, err := led.Entries(cmd.Context(), runID)
		if err != nil {
			return err
		}
		io.Pf("%-38s%-16s%-8s%6s%12s  %s\n", "RUN", "PREFIX", "STATUS", "EXIT", "ELAPSED", "MESSAGE")
		for _, r := range entries {
			io.Pf("%-38s%-16s%-8s%6d%12s  %s\n", r.RunID, r.Prefix, r.Status, r.ExitCode, r.Finished.Sub(r.Started).Round(time.Millisecond), r.Message)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{jobsCmd, runCmd, ledgerCmd} {
		c.Flags().StringVarP(&family, "family", "f", string(inp.Hump), "job family: hump or storm")
	}
	for _, c := range []*cobra.Command{jobsCmd, runCmd, compareCmd, ledgerCmd} {
		c.Flags().StringVarP(&base, "base", "b", "", "base path of outputs (default $DATA_PATH/well-balanced-pressure/{family})")
	}
	for _, c := range []*cobra.Command{runCmd, ledgerCmd} {
		c.Flags().StringVar(&ledgerFile, "ledger-file", "", "ledger file (default {base}/ledger.db)")
	}
	runCmd.Flags().StringVarP(&template, "template", "t", "", "YAML template of run data (default: built-in template of the family)")
	runCmd.Flags().BoolVar(&noWait, "nowait", false, "start all solvers without waiting")
	runCmd.Flags().BoolVar(&plot, "plot", false, "run the plot command after each successful job")
	runCmd.Flags().StringVar(&policy, "policy", "abort", "failure policy: abort or continue")
	runCmd.Flags().StringVar(&encoder, "encoder", "", "run data encoder: json, yaml or gob")
	runCmd.Flags().BoolVar(&record, "record", false, "record executions in the ledger")
	ledgerCmd.Flags().StringVar(&runID, "run", "", "show only this run id")

	for _, c := range []*cobra.Command{transectCmd, compareCmd} {
		c.Flags().IntVar(&frame, "frame", out.Frame, "output frame")
		c.Flags().Float64Var(&y0, "y0", 0, "y-coordinate of the transect")
		c.Flags().Float64Var(&ytol, "tol", 0, "tolerance to match y0 (0: dy/2)")
		c.Flags().StringVar(&field, "field", "surface", "field: depth, momentum_x, momentum_y, surface, velocity_x or velocity_y")
		c.Flags().StringVar(&format, "format", out.Ascii, "snapshot format: ascii or binary")
	}
	trackCmd.Flags().IntVar(&frame, "frame", out.Frame, "output frame")
	transectCmd.Flags().Float64Var(&scale, "scale", 1, "divide values by this reference; e.g. eta0")
	transectCmd.Flags().BoolVar(&maxAbs, "maxabs", false, "report the maximum absolute value over the grid")
	compareCmd.Flags().BoolVar(&dimensional, "dimensional", true, "compare dimensional runs")
	diagCmd.Flags().BoolVar(&nondim, "nondim", false, "normalise by the storm reference scales")
	energyCmd.Flags().Float64Var(&tfinal, "tf", 0, "final time of energy samples")
	energyCmd.Flags().IntVar(&nsamples, "n", 2, "number of energy samples")

	// storm parameters
	for _, c := range []*cobra.Command{diagCmd, energyCmd, trackCmd} {
		c.Flags().Float64Var(&storm.rho, "rho", 1025, "water density")
		c.Flags().Float64Var(&storm.g, "g", 9.81, "gravity")
		c.Flags().Float64Var(&storm.eta0, "eta0", 0.04, "surface anomaly of the storm")
		c.Flags().Float64Var(&storm.R, "radius", 10e3, "storm radius")
		c.Flags().Float64Var(&storm.Fr, "froude", 0, "Froude number of the storm translation")
		c.Flags().Float64Var(&depth, "depth", 40, "basin depth")
	}
}

// readTemplate reads the template file or returns the built-in template
func readTemplate(fam inp.Family) (*inp.RunData, error) {
	if template == "" {
		return inp.DefaultTemplate(fam)
	}
	return inp.ReadTemplate(template)
}

// newStorm returns the storm set by the command line flags
func newStorm() (*ana.Storm, error) {
	U := ana.Speed(storm.Fr, storm.g, depth)
	return ana.NewStorm(storm.rho, storm.g, storm.eta0, storm.R, U)
}
