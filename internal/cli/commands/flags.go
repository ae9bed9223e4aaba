// SPDX-License-Identifier: AGPL-3.0-or-later

/*
routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Feature: CLI_GLOBAL_FLAGS
// Spec: SPEC_FULL.md §6

package commands

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"routeforge/pkg/config"
)

// ResolvedFlags contains the resolved values for all global flags.
type ResolvedFlags struct {
	Config  string
	Verbose bool
	DryRun  bool
}

// ResolveFlags resolves global flags with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Built-in defaults (lowest priority)
//
// Unlike the teacher's ResolveFlags, there is no --env: routeforge has
// no environment concept, so config file existence/validity is left to
// the commands that actually load it, not resolved here.
func ResolveFlags(cmd *cobra.Command) *ResolvedFlags {
	flags := &ResolvedFlags{}

	configFlag, _ := cmd.Flags().GetString("config")
	configEnv := os.Getenv("ROUTEFORGE_CONFIG")
	flags.Config = resolveString(configFlag, configEnv, config.DefaultConfigPath())

	verboseFlag, _ := cmd.Flags().GetBool("verbose")
	verboseEnv := parseBoolEnv(os.Getenv("ROUTEFORGE_VERBOSE"))
	flags.Verbose = resolveBool(verboseFlag, verboseEnv, false)

	dryRunFlag, _ := cmd.Flags().GetBool("dry-run")
	dryRunEnv := parseBoolEnv(os.Getenv("ROUTEFORGE_DRY_RUN"))
	flags.DryRun = resolveBool(dryRunFlag, dryRunEnv, false)

	return flags
}

// resolveString resolves a string value with precedence: flag > env > default.
func resolveString(flag, env, defaultValue string) string {
	if flag != "" {
		return flag
	}
	if env != "" {
		return env
	}
	return defaultValue
}

// resolveBool returns true if either the flag or the env value is true,
// otherwise defaultValue. A flag explicitly set to false does not
// override a true env value.
func resolveBool(flag, env, defaultValue bool) bool {
	if flag {
		return true
	}
	if env {
		return true
	}
	return defaultValue
}

// parseBoolEnv parses a boolean from an environment variable.
// Returns false if the env var is not set or cannot be parsed.
func parseBoolEnv(value string) bool {
	if value == "" {
		return false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false
	}
	return parsed
}
