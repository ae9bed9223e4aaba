// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package engine implements C8, the orchestrator: detect → ingest →
// validate → emit → write, collecting diagnostics across phases. The
// orchestrator never touches the filesystem itself — it consumes a
// byte source and produces bytes plus diagnostics (spec.md §4.7).
package engine

import (
	"fmt"

	"routeforge/pkg/detect"
	"routeforge/pkg/model"
	"routeforge/pkg/providers/emit"
	"routeforge/pkg/providers/ingest"
	"routeforge/pkg/rule"
	"routeforge/pkg/validator"
)

// Feature: CORE_ORCHESTRATOR
// Spec: spec/core/orchestrator.md

// ErrorKind classifies a ConvertError for CLI exit-code mapping
// (spec.md §7, (NEW) in SPEC_FULL.md §7), grounded in the teacher's
// MigrationError/ErrorKind pattern.
type ErrorKind string

const (
	KindParse       ErrorKind = "parse"       // exit 2
	KindModel       ErrorKind = "model"       // exit 1
	KindIO          ErrorKind = "io"          // exit 3
	KindUnsupported ErrorKind = "unsupported" // exit 4
)

// ConvertError wraps a failure with the ErrorKind the CLI uses to pick
// an exit code.
type ConvertError struct {
	Kind ErrorKind
	Err  error
}

func (e *ConvertError) Error() string { return e.Err.Error() }
func (e *ConvertError) Unwrap() error { return e.Err }

func kindError(kind ErrorKind, format string, args ...any) *ConvertError {
	return &ConvertError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// ConvertOptions configures a single conversion run.
type ConvertOptions struct {
	Filename     string
	InputFormat  string // empty triggers detection
	OutputFormat string
	Dialect      string // "v2" or "v3", default "v3"
	Validate     bool
	DryRun       bool
	Lenient      bool // proceed to emission even with validation errors
}

// Result is the outcome of a single conversion.
type Result struct {
	Config      *model.Config
	Output      []byte
	Diagnostics []model.Diagnostic
}

// Convert runs the full detect → ingest → validate → emit pipeline
// over data and returns the emitted bytes plus every diagnostic
// accumulated across phases.
func Convert(data []byte, opts ConvertOptions) (*Result, error) {
	inputFormat := opts.InputFormat
	if inputFormat == "" {
		f, err := detect.Detect(opts.Filename, data)
		if err != nil {
			return nil, kindError(KindIO, "detecting input format: %w", err)
		}
		inputFormat = string(f)
	}

	ingestor, err := ingest.Get(inputFormat)
	if err != nil {
		return nil, kindError(KindUnsupported, "no ingestor for format %q: %w", inputFormat, err)
	}

	dialect := opts.Dialect
	if dialect == "" {
		dialect = "v3"
	}

	cfg, _, err := ingestor.Ingest(data, ingest.Options{Dialect: dialect, Filename: opts.Filename})
	if err != nil {
		return nil, kindError(KindParse, "ingesting %s: %w", inputFormat, err)
	}

	var diags []model.Diagnostic
	diags = append(diags, cfg.Diagnostics...)

	shouldValidate := opts.Validate
	if shouldValidate {
		vdiags := validator.Validate(cfg)
		diags = append(diags, vdiags...)
	}

	if cfg.HasErrors() && !opts.Lenient {
		return &Result{Config: cfg, Diagnostics: diags}, kindError(KindModel, "validation reported errors; aborting before emission")
	}

	if opts.DryRun || opts.OutputFormat == "" {
		return &Result{Config: cfg, Diagnostics: diags}, nil
	}

	emitter, err := emit.Get(opts.OutputFormat)
	if err != nil {
		return nil, kindError(KindUnsupported, "no emitter for format %q: %w", opts.OutputFormat, err)
	}

	emitDialect := rule.DialectV3
	if dialect == "v2" {
		emitDialect = rule.DialectV2
	}

	out, edags, err := emitter.Emit(cfg, emit.Options{Dialect: emitDialect})
	if err != nil {
		return nil, kindError(KindIO, "emitting %s: %w", opts.OutputFormat, err)
	}
	diags = append(diags, edags...)

	// Lowering warnings recorded during emission are surfaced here
	// after the first emission pass (spec.md §4.5 final check).
	cfg.Diagnostics = append(cfg.Diagnostics, edags...)

	return &Result{Config: cfg, Output: out, Diagnostics: diags}, nil
}

// Analyze runs detect → ingest → validate only, per the `analyze`
// CLI command (spec.md §6).
func Analyze(data []byte, filename, inputFormat, dialect string) (*model.Config, []model.Diagnostic, error) {
	res, err := Convert(data, ConvertOptions{
		Filename:    filename,
		InputFormat: inputFormat,
		Dialect:     dialect,
		Validate:    true,
		Lenient:     true,
	})
	if res == nil {
		return nil, nil, err
	}
	return res.Config, res.Diagnostics, nil
}
