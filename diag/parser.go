// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"bufio"
	goio "io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// constants
const (
	LogFile = "fort.amr" // name of diagnostic log inside output directories
	Marker  = "time t =" // lines with diagnostics contain this phrase
)

// token positions after splitting a diagnostic line on whitespace
const (
	idxTime  = 3  // time value; mass lines only; has trailing comma
	idxTag   = 5  // quantity: mass, KE or PE
	idxValue = 7  // quantity value
	idxDrift = 10 // deviation from conserved value
)

// ParseError reports the offending line of a diagnostic log
type ParseError struct {
	Line int    // line number (1-based)
	Text string // line contents
	Msg  string // description
	Err  error  // underlying error, if any
}

func (o *ParseError) Error() string {
	s := io.Sf("diagnostic log: line %d: %s", o.Line, o.Msg)
	if o.Err != nil {
		s += ": " + o.Err.Error()
	}
	if o.Text != "" {
		s += io.Sf("\n  %q", o.Text)
	}
	return s
}

func (o *ParseError) Unwrap() error { return o.Err }

// ReadFile parses the diagnostic log found in an output directory
func ReadFile(outdir string) (o *Series, err error) {
	fn := filepath.Join(outdir, LogFile)
	fil, err := os.Open(fn)
	if err != nil {
		return nil, chk.Err("cannot open diagnostic log %q:\n%v", fn, err)
	}
	defer fil.Close()
	return Parse(fil)
}

// Parse reads diagnostics from a log stream
//  Note: each "mass" line opens a time step which must be completed by one
//        "KE" and one "PE" line before the next step or the end of the stream
func Parse(r goio.Reader) (o *Series, err error) {
	o = new(Series)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	nl := 0
	for sc.Scan() {
		nl++
		line := sc.Text()
		if !strings.Contains(line, Marker) {
			continue
		}
		if err = o.add(nl, line); err != nil {
			return nil, err
		}
	}
	if err = sc.Err(); err != nil {
		return nil, &ParseError{Line: nl, Msg: "cannot read log", Err: err}
	}
	if err = o.Check(); err != nil {
		return nil, &ParseError{Line: nl, Msg: "end of log reached", Err: err}
	}
	return
}

// add processes one diagnostic line
func (o *Series) add(nl int, line string) error {
	fields := strings.Fields(line)
	if len(fields) <= idxDrift {
		return &ParseError{Line: nl, Text: line, Msg: io.Sf("expected at least %d fields, found %d", idxDrift+1, len(fields))}
	}
	value, err := atof(fields[idxValue])
	if err != nil {
		return &ParseError{Line: nl, Text: line, Msg: "invalid value", Err: err}
	}
	drift, err := atof(fields[idxDrift])
	if err != nil {
		return &ParseError{Line: nl, Text: line, Msg: "invalid drift", Err: err}
	}
	n := len(o.T)
	switch tag := fields[idxTag]; tag {
	case "mass":
		if len(o.KE) != n || len(o.PE) != n {
			return &ParseError{Line: nl, Text: line, Msg: "new time step before KE and PE of previous step", Err: ErrTruncated}
		}
		t, err := atof(strings.TrimRight(fields[idxTime], ","))
		if err != nil {
			return &ParseError{Line: nl, Text: line, Msg: "invalid time", Err: err}
		}
		o.T = append(o.T, t)
		o.Mass = append(o.Mass, value)
		o.MassDrift = append(o.MassDrift, drift)
	case "KE":
		if len(o.KE) >= n {
			return &ParseError{Line: nl, Text: line, Msg: "KE without a preceding mass line"}
		}
		o.KE = append(o.KE, value)
		o.KEDrift = append(o.KEDrift, drift)
	case "PE":
		if len(o.PE) >= n {
			return &ParseError{Line: nl, Text: line, Msg: "PE without a preceding mass line"}
		}
		o.PE = append(o.PE, value)
		o.PEDrift = append(o.PEDrift, drift)
	default:
		return &ParseError{Line: nl, Text: line, Msg: io.Sf("invalid type of conservation %q", tag)}
	}
	return nil
}

// atof parses a number, accepting Fortran's D exponent
func atof(s string) (float64, error) {
	return strconv.ParseFloat(strings.Replace(s, "D", "E", 1), 64)
}
