// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package emit provides the Emitter provider interface and registry
// (C5), the mirror image of pkg/providers/ingest.
package emit

import (
	"routeforge/pkg/model"
	"routeforge/pkg/rule"
)

// Feature: CORE_EMITTER_REGISTRY
// Spec: spec/core/emitter-registry.md

// Options carries format-specific emission hints.
type Options struct {
	// Dialect selects the Traefik rule dialect rule strings are
	// printed in. Defaults to v3 when empty.
	Dialect rule.Dialect
}

// Emitter produces target-format bytes from a unified Config.
type Emitter interface {
	// ID is the format name, mirroring the corresponding Ingestor's ID.
	ID() string
	// Emit renders cfg and returns the target bytes plus any
	// lowering-warning diagnostics accumulated during emission (e.g.
	// UnsupportedFeature). Emit never mutates cfg.
	Emit(cfg *model.Config, opts Options) ([]byte, []model.Diagnostic, error)
}
