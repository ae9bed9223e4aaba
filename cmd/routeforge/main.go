// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package main

import (
	"errors"
	"fmt"
	"os"

	"routeforge/internal/cli"
	"routeforge/pkg/engine"

	_ "routeforge/internal/emitters/dockercompose"
	_ "routeforge/internal/emitters/nginxconf"
	_ "routeforge/internal/emitters/traefikdynamic"
	_ "routeforge/internal/ingestors/dockercompose"
	_ "routeforge/internal/ingestors/jsonyaml"
	_ "routeforge/internal/ingestors/nginxconf"
	_ "routeforge/internal/ingestors/traefikdynamic"
)

func main() {
	rootCmd := cli.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a ConvertError's ErrorKind to the exit code
// documented in SPEC_FULL.md §7; any other error (flag parsing,
// filesystem I/O outside the pipeline) exits 1.
func exitCodeFor(err error) int {
	var convErr *engine.ConvertError
	if !errors.As(err, &convErr) {
		return 1
	}
	switch convErr.Kind {
	case engine.KindParse:
		return 2
	case engine.KindModel:
		return 1
	case engine.KindIO:
		return 3
	case engine.KindUnsupported:
		return 4
	default:
		return 1
	}
}
