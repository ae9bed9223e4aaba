// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package jsonyaml ingests generic JSON/YAML dumps of Traefik-shaped
// data. Per spec.md §4.3 it is "treated as a traefik-dynamic ingestor
// operating on pre-parsed data" — it delegates entirely to that
// format's decoder, registering separately only so the CLI and format
// detector can address "json"/"yaml" as distinct format IDs.
package jsonyaml

import (
	"routeforge/internal/ingestors/traefikdynamic"
	"routeforge/pkg/model"
	"routeforge/pkg/providers/ingest"
)

// Feature: INGEST_JSON_YAML
// Spec: spec/ingest/json-yaml.md

func init() {
	ingest.Register(&Ingestor{id: "json"})
	ingest.Register(&Ingestor{id: "yaml"})
}

// Ingestor implements pkg/providers/ingest.Ingestor for the generic
// json/yaml format IDs.
type Ingestor struct {
	id string
}

// ID implements ingest.Ingestor.
func (i *Ingestor) ID() string { return i.id }

// Ingest implements ingest.Ingestor by delegating to the
// traefik-dynamic decoder.
func (i *Ingestor) Ingest(data []byte, opts ingest.Options) (*model.Config, []model.Diagnostic, error) {
	delegate := &traefikdynamic.Ingestor{}
	return delegate.Ingest(data, opts)
}
