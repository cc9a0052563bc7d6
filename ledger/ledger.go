// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ledger implements a SQLite store of job executions
package ledger

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/google/uuid"
	"github.com/mandli/well-balanced-pressure/batch"
	_ "modernc.org/sqlite" // pure Go driver
)

// FileName is the default ledger file inside a base path
const FileName = "ledger.db"

var schema = []string{`
CREATE TABLE IF NOT EXISTS executions (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id      TEXT NOT NULL,
  prefix      TEXT NOT NULL,
  family      TEXT,
  output      TEXT,
  started_at  TEXT,
  finished_at TEXT,
  exit_code   INTEGER,
  status      TEXT,
  message     TEXT
)`,
	`CREATE INDEX IF NOT EXISTS executions_run ON executions (run_id)`,
}

// Ledger records job executions; it implements batch.Recorder
type Ledger struct {
	db *sql.DB
}

// Open opens or creates a ledger file
func Open(fnpath string) (o *Ledger, err error) {
	if dir := filepath.Dir(fnpath); dir != "" {
		if err = os.MkdirAll(dir, 0777); err != nil {
			return nil, chk.Err("cannot create directory for ledger:\n%v", err)
		}
	}
	db, err := sql.Open("sqlite", fnpath)
	if err != nil {
		return nil, chk.Err("cannot open ledger %q:\n%v", fnpath, err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, chk.Err("cannot initialise ledger %q:\n%v", fnpath, err)
		}
	}
	return &Ledger{db: db}, nil
}

// Close closes the database
func (o *Ledger) Close() error {
	return o.db.Close()
}

// Record implements batch.Recorder
func (o *Ledger) Record(ctx context.Context, r *batch.Record) error {
	_, err := o.db.ExecContext(ctx,
		`INSERT INTO executions (run_id, prefix, family, output, started_at, finished_at, exit_code, status, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID.String(), r.Prefix, r.Family, r.Output,
		r.Started.UTC().Format(time.RFC3339Nano), r.Finished.UTC().Format(time.RFC3339Nano),
		r.ExitCode, string(r.Status), r.Message)
	if err != nil {
		return chk.Err("cannot record execution of %s:\n%v", r.Prefix, err)
	}
	return nil
}

// Entries returns records in insertion order; an empty runID selects all runs
func (o *Ledger) Entries(ctx context.Context, runID string) (res []*batch.Record, err error) {
	query := `SELECT run_id, prefix, family, output, started_at, finished_at, exit_code, status, message FROM executions`
	var args []interface{}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id`
	rows, err := o.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, chk.Err("cannot query ledger:\n%v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r batch.Record
		var id, started, finished, status string
		var family, output, message sql.NullString
		if err = rows.Scan(&id, &r.Prefix, &family, &output, &started, &finished, &r.ExitCode, &status, &message); err != nil {
			return nil, chk.Err("cannot read ledger entry:\n%v", err)
		}
		if r.RunID, err = uuid.Parse(id); err != nil {
			return nil, chk.Err("invalid run id %q:\n%v", id, err)
		}
		if r.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, chk.Err("invalid start time %q:\n%v", started, err)
		}
		if r.Finished, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, chk.Err("invalid end time %q:\n%v", finished, err)
		}
		r.Family, r.Output, r.Message = family.String, output.String, message.String
		r.Status = batch.Status(status)
		res = append(res, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, chk.Err("cannot read ledger:\n%v", err)
	}
	return
}
