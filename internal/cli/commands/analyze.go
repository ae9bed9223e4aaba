// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Feature: CLI_ANALYZE
// Spec: SPEC_FULL.md §6 analyze

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routeforge/pkg/engine"
)

// NewAnalyzeCommand builds `analyze FILE`: ingest + validate only, no
// emission, reporting every diagnostic collected along the way.
func NewAnalyzeCommand() *cobra.Command {
	var (
		format    string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Ingest and validate a config without converting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			data, err := os.ReadFile(input)
			if err != nil {
				return &engine.ConvertError{Kind: engine.KindIO, Err: fmt.Errorf("reading %s: %w", input, err)}
			}

			_, diags, analyzeErr := engine.Analyze(data, input, format, "v3")

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(diags); err != nil {
					return &engine.ConvertError{Kind: engine.KindIO, Err: err}
				}
			} else {
				printDiagnostics(cmd.OutOrStdout(), diags)
			}

			return analyzeErr
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format (skip auto-detection)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit diagnostics as a JSON array")

	return cmd
}
