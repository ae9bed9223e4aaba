// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package lsp wires an LSP 3.16 server over stdio (SPEC_FULL.md §6
// (NEW) `lsp` command), republishing C1-C6 diagnostics for open
// buffers on every edit.
//
// Adapted from the teemuteemu-caddy-language-server's internal/server
// package: same glsp.Handler wiring and commonlog verbosity mapping,
// scoped down to the sync + diagnostics surface routeforge needs.
package lsp

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspServer "github.com/tliron/glsp/server"

	"routeforge/internal/lsp/document"
	"routeforge/internal/lsp/handler"

	_ "routeforge/internal/emitters/dockercompose"
	_ "routeforge/internal/emitters/nginxconf"
	_ "routeforge/internal/emitters/traefikdynamic"
	_ "routeforge/internal/ingestors/dockercompose"
	_ "routeforge/internal/ingestors/jsonyaml"
	_ "routeforge/internal/ingestors/nginxconf"
	_ "routeforge/internal/ingestors/traefikdynamic"
)

// Feature: AMBIENT_LSP
// Spec: SPEC_FULL.md §6 lsp

// Run starts the routeforge LSP server on stdio, blocking until the
// client disconnects.
func Run(logLevel string) error {
	configureLogging(logLevel)

	store := document.New()
	h := handler.New(store)

	lspHandler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		SetTrace:              h.SetTrace,
		TextDocumentDidOpen:   h.DidOpen,
		TextDocumentDidChange: h.DidChange,
		TextDocumentDidSave:   h.DidSave,
		TextDocumentDidClose:  h.DidClose,
	}

	s := glspServer.NewServer(&lspHandler, "routeforge-lsp", false)
	return s.RunStdio()
}

func configureLogging(level string) {
	// commonlog.Configure verbosity: 1=Error, 2=Warning, 3=Notice, 4=Info, 5=Debug
	verbosity := 2
	switch level {
	case "debug":
		verbosity = 5
	case "info":
		verbosity = 4
	case "warning", "warn":
		verbosity = 2
	case "error":
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)
}
