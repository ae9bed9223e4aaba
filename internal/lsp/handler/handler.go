// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package handler implements the glsp.Handler methods backing the
// `lsp` command (SPEC_FULL.md §6 (NEW)), republishing C1-C6
// diagnostics for open buffers on every edit.
//
// Adapted from the teemuteemu-caddy-language-server's internal/handler
// package: same Handler/document.Store wiring, but Analyze runs
// routeforge's detect+ingest+validate pipeline instead of a Caddyfile
// parser.
package handler

import "routeforge/internal/lsp/document"

// Feature: AMBIENT_LSP
// Spec: SPEC_FULL.md §6 lsp

const version = "0.0.1"

// Handler holds references to shared server state.
type Handler struct {
	store *document.Store
}

// New creates a Handler backed by the given document store.
func New(store *document.Store) *Handler {
	return &Handler{store: store}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
