// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package cli wires together the routeforge root Cobra command and
// global CLI options.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routeforge/internal/cli/commands"
)

// NewRootCommand constructs the routeforge root Cobra command, wiring
// the convert/analyze/scaffold/lsp subcommands.
//
// Feature: ARCH_OVERVIEW
// Spec: SPEC_FULL.md §6
func NewRootCommand() *cobra.Command {
	version := os.Getenv("ROUTEFORGE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "routeforge",
		Short:         "routeforge – reverse-proxy configuration converter",
		Long:          "routeforge converts reverse-proxy routing configuration between nginx, Traefik dynamic config, Docker Compose labels, and plain JSON/YAML.",
		SilenceUsage:  true, // don't dump usage on user errors
		SilenceErrors: true, // centralize error printing in main()
	}

	// Global flags - registered in lexicographic order for deterministic help output
	cmd.PersistentFlags().StringP("config", "c", "", "path to routeforge.yml")
	cmd.PersistentFlags().Bool("dry-run", false, "run the pipeline without writing output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	// Version command – simple and explicit.
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of routeforge",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "routeforge version %s\n", version)
		},
	})

	// Subcommands - keep registrations in lexicographic order by .Use
	// to ensure deterministic help output.
	cmd.AddCommand(commands.NewAnalyzeCommand())
	cmd.AddCommand(commands.NewConvertCommand())
	cmd.AddCommand(commands.NewLSPCommand())
	cmd.AddCommand(commands.NewScaffoldCommand())

	return cmd
}
