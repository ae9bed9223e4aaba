// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package validator implements C6, the cross-format invariant and
// best-practice checker over the unified model.
package validator

import (
	"fmt"

	"routeforge/pkg/model"
	"routeforge/pkg/rule"
)

// Feature: CORE_VALIDATOR
// Spec: spec/core/validator.md

// Validate runs every check in spec.md §4.5 against cfg and appends
// the resulting diagnostics to cfg.Diagnostics. It returns the
// diagnostics produced by this pass alone (not cfg's prior ones) so
// callers can distinguish ingestion-time from validation-time findings.
func Validate(cfg *model.Config) []model.Diagnostic {
	before := len(cfg.Diagnostics)

	checkUniqueIDs(cfg)
	checkReferentialIntegrity(cfg)
	checkProtocolCompatibility(cfg)
	checkUDPRouters(cfg)
	checkPools(cfg)
	checkTLS(cfg)
	checkPriorityConflicts(cfg)
	checkPriorityHints(cfg)

	return cfg.Diagnostics[before:]
}

func checkUniqueIDs(cfg *model.Config) {
	// map keys already enforce per-kind uniqueness structurally; this
	// check instead catches the case an ingestor appended to *Order
	// without registering the id (a constructor bug, not user input).
	seen := make(map[string]bool, len(cfg.RouterOrder))
	for _, id := range cfg.RouterOrder {
		if seen[id] {
			cfg.Diagf(model.SeverityError, "DuplicateID", "router id %q appears more than once", id)
		}
		seen[id] = true
	}
}

func checkReferentialIntegrity(cfg *model.Config) {
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.ServiceRef != "" {
			if _, ok := cfg.Services[r.ServiceRef]; !ok {
				cfg.Diagf(model.SeverityError, "DanglingServiceRef", "router %q references undefined service %q", id, r.ServiceRef)
			}
		}
		for _, mwRef := range r.MiddlewareRefs {
			if _, ok := cfg.Middlewares[mwRef]; !ok {
				cfg.Diagf(model.SeverityError, "DanglingMiddlewareRef", "router %q references undefined middleware %q", id, mwRef)
			}
		}
		if r.TLS != nil && r.TLS.OptionsRef != "" {
			if _, ok := cfg.TlsOptions[r.TLS.OptionsRef]; !ok {
				cfg.Diagf(model.SeverityError, "DanglingTLSOptionsRef", "router %q references undefined tls options %q", id, r.TLS.OptionsRef)
			}
		}
	}
}

func checkProtocolCompatibility(cfg *model.Config) {
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Rule == nil {
			continue
		}
		protocol := rule.Protocol(r.Protocol)
		for _, m := range rule.Matchers(r.Rule) {
			if !rule.SupportsProtocol(m.Name, protocol) {
				cfg.Diagf(model.SeverityError, "ProtocolMismatch", "router %q (%s): matcher %q is not valid for this protocol", id, r.Protocol, m.Name)
			}
		}
	}
}

func checkUDPRouters(cfg *model.Config) {
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Protocol != model.ProtocolUDP {
			continue
		}
		if r.Rule != nil {
			cfg.Diagf(model.SeverityError, "UDPRouterHasRule", "UDP router %q must have no rule; UDP routes by entrypoint only", id)
		}
		if r.TLS != nil {
			cfg.Diagf(model.SeverityError, "UDPRouterHasTLS", "UDP router %q must have no TLS configuration", id)
		}
	}
}

func checkPools(cfg *model.Config) {
	for _, id := range cfg.ServiceOrder {
		s := cfg.Services[id]
		if len(s.Pool.Servers) == 0 {
			cfg.Diagf(model.SeverityError, "EmptyPool", "service %q has no servers", id)
			continue
		}
		weighted := s.Pool.Policy == model.PolicyWeightedRR || s.Pool.Policy == model.PolicyWeightedLeastConn || s.Pool.Policy == model.PolicyWeightedRandom
		if weighted {
			for _, srv := range s.Pool.Servers {
				if srv.Weight == nil {
					cfg.Diagf(model.SeverityError, "MissingWeight", "service %q: policy %q requires a weight on every server", id, s.Pool.Policy)
					break
				}
			}
		}
		if s.Protocol != model.ProtocolHTTP {
			for _, srv := range s.Pool.Servers {
				if srv.Address == "" {
					cfg.Diagf(model.SeverityWarning, "MissingPort", "service %q: server has no port specified", id)
				}
			}
		}
	}
}

func checkTLS(cfg *model.Config) {
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.TLS == nil {
			continue
		}
		if len(r.TLS.CertFiles) == 0 && r.TLS.CertResolver == "" {
			cfg.Diagf(model.SeverityWarning, "ImplicitHTTP", "router %q: tls set with no cert_files and no cert_resolver; plain HTTP is assumed", id)
		}
	}
}

func checkPriorityConflicts(cfg *model.Config) {
	type key struct {
		rule     string
		priority int
	}
	seen := make(map[key]string)
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Priority == nil || r.Rule == nil {
			continue
		}
		// rule.Print gives a canonical string regardless of dialect;
		// fmt's default formatting of a *Matcher/*And/*Or tree would
		// print nested pointer fields as raw addresses instead of
		// comparable text.
		k := key{rule: rule.Print(r.Rule, rule.DialectV3), priority: *r.Priority}
		if other, ok := seen[k]; ok {
			cfg.Diagf(model.SeverityWarning, "PriorityConflict", "routers %q and %q have identical rules and equal priority %d", other, id, *r.Priority)
			continue
		}
		seen[k] = id
	}
}

func checkPriorityHints(cfg *model.Config) {
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Rule == nil || r.Priority != nil {
			continue
		}
		if len(rule.Matchers(r.Rule)) >= 2 {
			fix := "set an explicit priority"
			cfg.Diagnostics = append(cfg.Diagnostics, model.Diagnostic{
				Severity: model.SeverityInfo,
				Code:     "PriorityHint",
				Message:  fmt.Sprintf("router %q: multi-matcher rule with no explicit priority; Traefik's default rule-length ordering may surprise you", id),
				Fix:      &fix,
			})
		}
	}
}
