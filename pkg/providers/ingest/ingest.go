// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package ingest provides the Ingestor provider interface and registry
// (C4). Each supported input format self-registers an Ingestor from its
// own init(), mirroring the teacher's backend-provider registry.
package ingest

import "routeforge/pkg/model"

// Feature: CORE_INGESTOR_REGISTRY
// Spec: spec/core/ingestor-registry.md

// Options carries format-specific ingestion hints.
type Options struct {
	// Dialect is the Traefik rule dialect ("v2" or "v3") used to parse
	// embedded rule strings. Ignored by formats with no rule strings.
	Dialect string
	// Filename is the source's original name, when known; some
	// ingestors use it purely for diagnostic Source.File values.
	Filename string
}

// Ingestor produces a unified Config from raw input bytes in one
// specific format.
type Ingestor interface {
	// ID is the format name, e.g. "docker-compose", "traefik-dynamic",
	// "nginx-conf", "json", "yaml".
	ID() string
	// Ingest parses data and returns a Config plus accumulated
	// diagnostics. Diagnostics are also attached to Config.Diagnostics;
	// the separate return lets callers inspect failures without a
	// partially-populated Config when a parse error aborts ingestion.
	Ingest(data []byte, opts Options) (*model.Config, []model.Diagnostic, error)
}
