// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package handler

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"routeforge/pkg/engine"
	"routeforge/pkg/model"
)

// Feature: AMBIENT_LSP
// Spec: SPEC_FULL.md §6 lsp

// Analyze runs the detect→ingest→validate pipeline over content and
// publishes the resulting diagnostics for uri, mirroring the teacher's
// parse-then-publish flow but sourced from C1-C6 instead of a
// Caddyfile-specific parser.
func (h *Handler) Analyze(ctx *glsp.Context, uri, content string) {
	filename := uriToFilename(uri)

	_, diags, _ := engine.Analyze([]byte(content), filename, "", "v3")

	lspDiags := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		lspDiags = append(lspDiags, toProtocolDiagnostic(d))
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: lspDiags,
	})
}

func toProtocolDiagnostic(d model.Diagnostic) protocol.Diagnostic {
	severity := severityToProtocol(d.Severity)
	line := clampNonNegative(d.Source.Line - 1)
	col := clampNonNegative(d.Source.Column - 1)

	message := d.Message
	if d.Code != "" {
		message = d.Code + ": " + d.Message
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(col)},
		},
		Severity: &severity,
		Source:   strPtr("routeforge"),
		Message:  message,
	}
}

func severityToProtocol(sev model.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case model.SeverityError:
		return protocol.DiagnosticSeverityError
	case model.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// uriToFilename strips a file:// scheme so detect.Detect can sniff the
// extension; other schemes are passed through unchanged since detect
// only ever looks at the trailing extension.
func uriToFilename(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
