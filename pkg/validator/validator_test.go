// SPDX-License-Identifier: AGPL-3.0-or-later

package validator_test

import (
	"testing"

	"routeforge/pkg/model"
	"routeforge/pkg/rule"
	"routeforge/pkg/validator"
)

func mustParse(t *testing.T, expr string) rule.Expr {
	t.Helper()
	e, perr := rule.Parse(expr, rule.DialectV3)
	if perr != nil {
		t.Fatalf("rule.Parse(%q) error: %v", expr, perr)
	}
	return e
}

func hasCode(diags []model.Diagnostic, code string) bool {
	for _, d := range diags {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestValidate_DanglingServiceRef(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddRouter(&model.Router{ID: "r1", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`)"), ServiceRef: "missing"})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "DanglingServiceRef") {
		t.Errorf("expected DanglingServiceRef, got %+v", diags)
	}
}

func TestValidate_DanglingMiddlewareRef(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Servers: []model.Server{{URL: "http://a:80"}}, Policy: model.PolicyRoundRobin}})
	cfg.AddRouter(&model.Router{ID: "r1", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`)"), ServiceRef: "s1", MiddlewareRefs: []string{"missing-mw"}})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "DanglingMiddlewareRef") {
		t.Errorf("expected DanglingMiddlewareRef, got %+v", diags)
	}
}

func TestValidate_UDPRouterWithRuleOrTLS(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolUDP, Pool: model.LoadBalancer{Servers: []model.Server{{Address: "a:53"}}, Policy: model.PolicyRoundRobin}})
	cfg.AddRouter(&model.Router{
		ID: "r1", Protocol: model.ProtocolUDP, ServiceRef: "s1",
		Rule: mustParse(t, "Host(`a.com`)"),
		TLS:  &model.TlsSpec{CertResolver: "le"},
	})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "UDPRouterHasRule") {
		t.Errorf("expected UDPRouterHasRule, got %+v", diags)
	}
	if !hasCode(diags, "UDPRouterHasTLS") {
		t.Errorf("expected UDPRouterHasTLS, got %+v", diags)
	}
}

func TestValidate_EmptyPool(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Policy: model.PolicyRoundRobin}})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "EmptyPool") {
		t.Errorf("expected EmptyPool, got %+v", diags)
	}
}

func TestValidate_MissingWeight(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{
		ID: "s1", Protocol: model.ProtocolHTTP,
		Pool: model.LoadBalancer{
			Policy:  model.PolicyWeightedRR,
			Servers: []model.Server{{URL: "http://a:80"}},
		},
	})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "MissingWeight") {
		t.Errorf("expected MissingWeight, got %+v", diags)
	}
}

func TestValidate_ImplicitHTTP(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Servers: []model.Server{{URL: "http://a:80"}}, Policy: model.PolicyRoundRobin}})
	cfg.AddRouter(&model.Router{ID: "r1", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`)"), ServiceRef: "s1", TLS: &model.TlsSpec{}})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "ImplicitHTTP") {
		t.Errorf("expected ImplicitHTTP, got %+v", diags)
	}
}

func TestValidate_PriorityConflict(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Servers: []model.Server{{URL: "http://a:80"}}, Policy: model.PolicyRoundRobin}})
	prio := 10
	cfg.AddRouter(&model.Router{ID: "r1", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`)"), ServiceRef: "s1", Priority: &prio})
	cfg.AddRouter(&model.Router{ID: "r2", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`)"), ServiceRef: "s1", Priority: &prio})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "PriorityConflict") {
		t.Errorf("expected PriorityConflict, got %+v", diags)
	}
}

func TestValidate_PriorityConflict_CompoundRule(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Servers: []model.Server{{URL: "http://a:80"}}, Policy: model.PolicyRoundRobin}})
	prio := 10
	cfg.AddRouter(&model.Router{ID: "r1", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`) && PathPrefix(`/x`)"), ServiceRef: "s1", Priority: &prio})
	cfg.AddRouter(&model.Router{ID: "r2", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`) && PathPrefix(`/x`)"), ServiceRef: "s1", Priority: &prio})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "PriorityConflict") {
		t.Errorf("expected PriorityConflict for two distinct trees with identical printed rules, got %+v", diags)
	}
}

func TestValidate_PriorityHint(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Servers: []model.Server{{URL: "http://a:80"}}, Policy: model.PolicyRoundRobin}})
	cfg.AddRouter(&model.Router{ID: "r1", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`) && PathPrefix(`/api`)"), ServiceRef: "s1"})

	diags := validator.Validate(cfg)
	if !hasCode(diags, "PriorityHint") {
		t.Errorf("expected PriorityHint, got %+v", diags)
	}
}

func TestValidate_CleanConfigHasNoErrors(t *testing.T) {
	cfg := model.NewConfig()
	cfg.AddService(&model.Service{ID: "s1", Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Servers: []model.Server{{URL: "http://a:80"}}, Policy: model.PolicyRoundRobin}})
	cfg.AddRouter(&model.Router{ID: "r1", Protocol: model.ProtocolHTTP, Rule: mustParse(t, "Host(`a.com`)"), ServiceRef: "s1"})

	validator.Validate(cfg)
	if cfg.HasErrors() {
		t.Errorf("expected no errors, got %+v", cfg.Diagnostics)
	}
}
