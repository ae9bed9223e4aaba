// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Feature: CLI_SCAFFOLD
// Spec: SPEC_FULL.md §6 scaffold

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"routeforge/internal/scaffold"
	"routeforge/pkg/config"
	"routeforge/pkg/engine"
)

// NewScaffoldCommand builds `scaffold INPUT`: ingest INPUT, then write
// a ready-to-run directory for the chosen proxy. Flag defaults may
// come from a routeforge.yml project file (A2); explicit CLI flags
// always win over it.
func NewScaffoldCommand() *cobra.Command {
	var (
		outputDir      string
		proxyType      string
		includeCompose bool
		includeConfig  bool
		includeDocs    bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold INPUT",
		Short: "Generate a ready-to-run proxy directory from an ingested config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := ResolveFlags(cmd)
			applyScaffoldDefaults(cmd, flags.Config, &outputDir, &proxyType, &includeCompose, &includeConfig, &includeDocs)

			input := args[0]
			data, err := os.ReadFile(input)
			if err != nil {
				return &engine.ConvertError{Kind: engine.KindIO, Err: fmt.Errorf("reading %s: %w", input, err)}
			}

			cfg, diags, err := engine.Analyze(data, input, "", "v3")
			if err != nil {
				return err
			}
			printDiagnostics(cmd.ErrOrStderr(), diags)

			written, err := scaffold.Run(cfg, scaffold.Options{
				OutputDir:      outputDir,
				ProxyType:      proxyType,
				IncludeCompose: includeCompose,
				IncludeConfig:  includeConfig,
				IncludeDocs:    includeDocs,
			})
			if err != nil {
				return &engine.ConvertError{Kind: engine.KindIO, Err: err}
			}

			for _, name := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s/%s\n", outputDir, name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "./proxy", "directory to write the scaffolded files into")
	cmd.Flags().StringVar(&proxyType, "proxy-type", "traefik", "proxy to scaffold (traefik or nginx)")
	cmd.Flags().BoolVar(&includeCompose, "include-compose", false, "also write a docker-compose.yml")
	cmd.Flags().BoolVar(&includeConfig, "include-config", false, "also write a routeforge.yml")
	cmd.Flags().BoolVar(&includeDocs, "include-docs", false, "also write a README.md summary")

	return cmd
}

// applyScaffoldDefaults fills unset flags from a routeforge.yml project
// file, when one is present; flags explicitly set on the command line
// always take precedence and are left untouched.
func applyScaffoldDefaults(cmd *cobra.Command, configPath string, outputDir, proxyType *string, includeCompose, includeConfig, includeDocs *bool) {
	ok, err := config.Exists(configPath)
	if err != nil || !ok {
		return
	}
	cfg, err := config.Load(configPath)
	if err != nil || cfg.Scaffold == nil {
		return
	}

	flags := cmd.Flags()
	sc := cfg.Scaffold

	if sc.OutputDir != "" && !flags.Changed("output-dir") {
		*outputDir = sc.OutputDir
	}
	if sc.ProxyType != "" && !flags.Changed("proxy-type") {
		*proxyType = sc.ProxyType
	}
	if sc.IncludeCompose && !flags.Changed("include-compose") {
		*includeCompose = true
	}
	if sc.IncludeConfig && !flags.Changed("include-config") {
		*includeConfig = true
	}
	if sc.IncludeDocs && !flags.Changed("include-docs") {
		*includeDocs = true
	}
}
