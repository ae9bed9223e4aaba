// SPDX-License-Identifier: AGPL-3.0-or-later

package model_test

import (
	"testing"

	"routeforge/pkg/model"
)

func TestAddRouter_PreservesInsertionOrder(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddRouter(&model.Router{ID: "b"})
	cfg.AddRouter(&model.Router{ID: "a"})
	cfg.AddRouter(&model.Router{ID: "b"}) // re-adding shouldn't duplicate order

	want := []string{"b", "a"}
	if len(cfg.RouterOrder) != len(want) {
		t.Fatalf("RouterOrder = %v, want %v", cfg.RouterOrder, want)
	}
	for i, id := range want {
		if cfg.RouterOrder[i] != id {
			t.Errorf("RouterOrder[%d] = %q, want %q", i, cfg.RouterOrder[i], id)
		}
	}
}

func TestAddService_AndAddMiddleware(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "svc"})
	cfg.AddMiddleware(&model.Middleware{ID: "mw"})

	if _, ok := cfg.Services["svc"]; !ok {
		t.Error("expected service 'svc' to be present")
	}
	if _, ok := cfg.Middlewares["mw"]; !ok {
		t.Error("expected middleware 'mw' to be present")
	}
	if len(cfg.ServiceOrder) != 1 || len(cfg.MiddlewareOrder) != 1 {
		t.Errorf("expected single-entry order slices, got %v / %v", cfg.ServiceOrder, cfg.MiddlewareOrder)
	}
}

func TestDiagf_AppendsFormattedDiagnostic(t *testing.T) {
	cfg := model.NewConfig()
	cfg.Diagf(model.SeverityWarning, "SomeCode", "value is %d", 42)

	if len(cfg.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(cfg.Diagnostics))
	}
	d := cfg.Diagnostics[0]
	if d.Severity != model.SeverityWarning || d.Code != "SomeCode" || d.Message != "value is 42" {
		t.Errorf("unexpected diagnostic: %+v", d)
	}
}

func TestHasErrors(t *testing.T) {
	cfg := model.NewConfig()
	if cfg.HasErrors() {
		t.Error("expected HasErrors() to be false on an empty config")
	}

	cfg.Diagf(model.SeverityWarning, "W", "warn")
	if cfg.HasErrors() {
		t.Error("expected HasErrors() to be false with only warnings")
	}

	cfg.Diagf(model.SeverityError, "E", "boom")
	if !cfg.HasErrors() {
		t.Error("expected HasErrors() to be true once an error diagnostic is appended")
	}
}

func TestIsKnownMiddlewareKind(t *testing.T) {
	if !model.IsKnownMiddlewareKind(model.MiddlewareBasicAuth) {
		t.Error("expected basic-auth to be a known middleware kind")
	}
	if model.IsKnownMiddlewareKind(model.MiddlewareKind("made-up")) {
		t.Error("expected an invented kind to be unknown")
	}
}
