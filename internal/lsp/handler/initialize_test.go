// SPDX-License-Identifier: AGPL-3.0-or-later

package handler

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"routeforge/internal/lsp/document"
)

func TestCreateServerCapabilities_FullSyncNoHoverOrCompletion(t *testing.T) {
	h := New(document.New())
	caps := h.CreateServerCapabilities()

	if caps.TextDocumentSync == nil {
		t.Fatal("expected TextDocumentSync to be set")
	}
	sync, ok := caps.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	if !ok {
		t.Fatalf("TextDocumentSync has unexpected type %T", caps.TextDocumentSync)
	}
	if sync.Change == nil || *sync.Change != protocol.TextDocumentSyncKindFull {
		t.Errorf("expected full sync, got %v", sync.Change)
	}
	if sync.OpenClose == nil || !*sync.OpenClose {
		t.Error("expected OpenClose to be true")
	}
	if caps.HoverProvider != nil {
		t.Error("expected no hover provider, routeforge's LSP is diagnostics-only")
	}
	if caps.CompletionProvider != nil {
		t.Error("expected no completion provider, routeforge's LSP is diagnostics-only")
	}
}
