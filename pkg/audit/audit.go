// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package audit implements the optional `--audit-dsn` sink for the
// `convert` command (SPEC_FULL.md §6 (NEW)): a best-effort record of
// each conversion run written to a Postgres `conversions` table.
//
// Grounded on the teacher's raw migration engine, which reaches
// Postgres through database/sql with the pgx/v5 stdlib driver rather
// than a pgxpool; audit keeps that same driver choice since a single
// short-lived write per CLI invocation never needs pooling.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Feature: AMBIENT_AUDIT
// Spec: SPEC_FULL.md §6 convert --audit-dsn

// Record is one conversion run, per SPEC_FULL.md §6's documented shape.
type Record struct {
	Timestamp      time.Time
	InputFormat    string
	OutputFormat   string
	DiagnosticCount int
	ErrorCount     int
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS conversions (
	id               BIGSERIAL PRIMARY KEY,
	ts               TIMESTAMPTZ NOT NULL,
	input_format     TEXT NOT NULL,
	output_format    TEXT NOT NULL,
	diagnostic_count INTEGER NOT NULL,
	error_count      INTEGER NOT NULL
)`

const insertSQL = `
INSERT INTO conversions (ts, input_format, output_format, diagnostic_count, error_count)
VALUES ($1, $2, $3, $4, $5)`

// Store writes Records to a Postgres conversions table. A Store is
// opened per invocation and closed once the run finishes; routeforge
// never keeps a long-lived connection.
type Store struct {
	db *sql.DB
}

// Open connects to dsn and ensures the conversions table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("audit: opening connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit: connecting: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("audit: ensuring conversions table: %w", err)
	}
	return &Store{db: db}, nil
}

// Write records one conversion run.
func (s *Store) Write(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, insertSQL,
		rec.Timestamp, rec.InputFormat, rec.OutputFormat, rec.DiagnosticCount, rec.ErrorCount)
	if err != nil {
		return fmt.Errorf("audit: inserting record: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}
