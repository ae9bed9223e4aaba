// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Feature: CLI_CONVERT
// Spec: SPEC_FULL.md §6 convert

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"routeforge/pkg/audit"
	"routeforge/pkg/engine"
	"routeforge/pkg/executil"
	"routeforge/pkg/logging"
	"routeforge/pkg/model"
)

// NewConvertCommand builds `convert INPUT OUTPUT`, the primary
// command: detect → ingest → validate → emit → write.
func NewConvertCommand() *cobra.Command {
	var (
		inputFormat  string
		outputFormat string
		dialect      string
		validate     bool
		lint         bool
		auditDSN     string
	)

	cmd := &cobra.Command{
		Use:   "convert INPUT OUTPUT",
		Short: "Convert a reverse-proxy config between formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := ResolveFlags(cmd)
			logger := logging.NewLogger(flags.Verbose)

			input, output := args[0], args[1]

			data, err := os.ReadFile(input)
			if err != nil {
				return &engine.ConvertError{Kind: engine.KindIO, Err: fmt.Errorf("reading %s: %w", input, err)}
			}

			res, convErr := engine.Convert(data, engine.ConvertOptions{
				Filename:     input,
				InputFormat:  inputFormat,
				OutputFormat: outputFormat,
				Dialect:      dialect,
				Validate:     validate,
				DryRun:       flags.DryRun,
			})

			if res != nil {
				writeAuditRecord(cmd, auditDSN, logger, inputFormat, outputFormat, res.Diagnostics)
				printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
			}
			if convErr != nil {
				return convErr
			}

			if flags.DryRun || res.Output == nil {
				logger.Info("dry run: no output written")
				return nil
			}

			if err := os.WriteFile(output, res.Output, 0o644); err != nil {
				return &engine.ConvertError{Kind: engine.KindIO, Err: fmt.Errorf("writing %s: %w", output, err)}
			}

			if lint && outputFormat == "nginx-conf" {
				lintNginx(cmd, output, logger)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format (skip auto-detection)")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "output format")
	cmd.Flags().StringVar(&dialect, "dialect", "v3", "Traefik rule dialect (v2 or v3)")
	cmd.Flags().BoolVar(&validate, "validate", true, "run the validator before emitting")
	cmd.Flags().Bool("no-validate", false, "skip the validator (shorthand for --validate=false)")
	cmd.Flags().BoolVar(&lint, "lint", false, "shell out to `nginx -t` after emitting nginx-conf")
	cmd.Flags().StringVar(&auditDSN, "audit-dsn", "", "postgres:// DSN to record this run's audit entry")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if noValidate, _ := cmd.Flags().GetBool("no-validate"); noValidate {
			validate = false
		}
		return nil
	}

	return cmd
}

// lintNginx shells `nginx -t` against the file just written, per
// SPEC_FULL.md §6's `--lint` note (A3). Skipped with an info-level log
// message when no nginx binary is on PATH; never fails the
// conversion that already succeeded.
func lintNginx(cmd *cobra.Command, path string, logger logging.Logger) {
	runner := executil.NewRunner()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lintCmd := executil.NewCommand("nginx", "-t", "-c", path)
	logger.Info("running lint command", logging.NewField("cmd", lintCmd.String()))

	res, err := runner.Run(ctx, lintCmd)
	switch {
	case err != nil && res.ExitCode == -1:
		logger.Info("nginx not found on PATH, skipping --lint")
	case err != nil:
		logger.Warn("nginx -t reported problems", logging.NewField("stderr", string(res.Stderr)))
	default:
		logger.Info("nginx -t passed")
	}
}

func writeAuditRecord(cmd *cobra.Command, dsn string, logger logging.Logger, inputFormat, outputFormat string, diags []model.Diagnostic) {
	if dsn == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := audit.Open(ctx, dsn)
	if err != nil {
		logger.Warn("audit: could not open store, skipping", logging.NewField("error", err.Error()))
		return
	}
	defer store.Close()

	errCount := 0
	for _, d := range diags {
		if d.Severity == model.SeverityError {
			errCount++
		}
	}

	rec := audit.Record{
		Timestamp:       time.Now(),
		InputFormat:     inputFormat,
		OutputFormat:    outputFormat,
		DiagnosticCount: len(diags),
		ErrorCount:      errCount,
	}
	if err := store.Write(ctx, rec); err != nil {
		logger.Warn("audit: write failed, continuing", logging.NewField("error", err.Error()))
	}
}

func printDiagnostics(w io.Writer, diags []model.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "[%s] %s: %s\n", d.Severity, d.Code, d.Message)
	}
}
