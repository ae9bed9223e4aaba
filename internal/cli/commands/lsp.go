// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Feature: CLI_LSP
// Spec: SPEC_FULL.md §6 lsp

package commands

import (
	"github.com/spf13/cobra"

	"routeforge/internal/lsp"
)

// NewLSPCommand builds `lsp`: runs a routeforge LSP server over stdio.
func NewLSPCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run an LSP server over stdio for editor integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return lsp.Run(logLevel)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "warning", "log level: debug, info, warning, error")

	return cmd
}
