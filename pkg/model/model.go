// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package model defines the unified, format-neutral routing model that
// every ingestor (C4) produces and every emitter (C5) consumes.
package model

import (
	"fmt"

	"routeforge/pkg/rule"
)

// Feature: CORE_UNIFIED_MODEL
// Spec: spec/core/unified-model.md

// Protocol is the wire protocol a Router or Service operates over.
type Protocol string

const (
	ProtocolHTTP Protocol = "http"
	ProtocolTCP  Protocol = "tcp"
	ProtocolUDP  Protocol = "udp"
)

// Policy is a load-balancing policy for a Service's pool.
type Policy string

const (
	PolicyRoundRobin         Policy = "round_robin"
	PolicyWeightedRR         Policy = "weighted_rr"
	PolicyLeastConn          Policy = "least_conn"
	PolicyWeightedLeastConn  Policy = "weighted_least_conn"
	PolicyRandom             Policy = "random"
	PolicyWeightedRandom     Policy = "weighted_random"
)

// Router binds a rule to a service, optionally through middlewares and
// under a TLS profile. UDP routers carry no Rule (spec.md §3): Traefik
// UDP routes by entrypoint only.
type Router struct {
	ID             string
	Protocol       Protocol
	Rule           rule.Expr
	Priority       *int
	EntryPoints    []string
	ServiceRef     string
	MiddlewareRefs []string
	TLS            *TlsSpec
	RawExtras      map[string]any
}

// Service is a named backend pool plus optional health check.
type Service struct {
	ID        string
	Protocol  Protocol
	Pool      LoadBalancer
	Health    *HealthCheck
	RawExtras map[string]any
}

// LoadBalancer is a pool of backend Servers and the policy used to
// distribute load across them.
type LoadBalancer struct {
	Servers []Server
	Policy  Policy
}

// Server is one backend endpoint. URL is used for HTTP
// (scheme+host+port+optional path); Address is used for TCP/UDP
// (host+port). Exactly one of URL or Address is set.
type Server struct {
	URL     string
	Address string
	Weight  *int
}

// HealthCheck is a minimal active health-check spec.
type HealthCheck struct {
	Path     string
	Interval string
	Timeout  string
}

// Middleware is a single named request/response transformation. Kind
// is drawn from the recognized set (spec.md §3); Params holds kind-
// specific parameters validated by the validator (C6).
type Middleware struct {
	ID        string
	Kind      MiddlewareKind
	Params    map[string]any
	RawExtras map[string]any
}

// MiddlewareKind is the closed set of middleware kinds routeforge
// understands. Kinds outside this set are unsupported and surfaced as
// an UnsupportedFeature diagnostic with raw_extras preservation.
type MiddlewareKind string

const (
	MiddlewareBasicAuth       MiddlewareKind = "basic-auth"
	MiddlewareRateLimit       MiddlewareKind = "rate-limit"
	MiddlewareIPAllowlist     MiddlewareKind = "ip-allowlist"
	MiddlewareCompress        MiddlewareKind = "compress"
	MiddlewareHeaders         MiddlewareKind = "headers"
	MiddlewareRedirectScheme  MiddlewareKind = "redirect-scheme"
	MiddlewareRedirectRegex   MiddlewareKind = "redirect-regex"
	MiddlewareStripPrefix     MiddlewareKind = "strip-prefix"
	MiddlewareAddPrefix       MiddlewareKind = "add-prefix"
	MiddlewareReplacePath     MiddlewareKind = "replace-path"
	MiddlewareRetry           MiddlewareKind = "retry"
	MiddlewareBuffering       MiddlewareKind = "buffering"
	MiddlewareInFlightReq     MiddlewareKind = "in-flight-req"
	MiddlewareForwardAuth     MiddlewareKind = "forward-auth"
	MiddlewareCircuitBreaker  MiddlewareKind = "circuit-breaker"
	MiddlewareChain           MiddlewareKind = "chain"
)

// KnownMiddlewareKinds lists every recognized middleware kind.
var KnownMiddlewareKinds = []MiddlewareKind{
	MiddlewareBasicAuth, MiddlewareRateLimit, MiddlewareIPAllowlist,
	MiddlewareCompress, MiddlewareHeaders, MiddlewareRedirectScheme,
	MiddlewareRedirectRegex, MiddlewareStripPrefix, MiddlewareAddPrefix,
	MiddlewareReplacePath, MiddlewareRetry, MiddlewareBuffering,
	MiddlewareInFlightReq, MiddlewareForwardAuth, MiddlewareCircuitBreaker,
	MiddlewareChain,
}

// IsKnownMiddlewareKind reports whether k is in KnownMiddlewareKinds.
func IsKnownMiddlewareKind(k MiddlewareKind) bool {
	for _, known := range KnownMiddlewareKinds {
		if known == k {
			return true
		}
	}
	return false
}

// CertFile is one certificate/key pair (plus optional CA and dhparam)
// for a TlsSpec's static file-based certificate list.
type CertFile struct {
	Cert    string
	Key     string
	CA      string
	DHParam string
}

// TlsSpec describes TLS termination for a Router.
type TlsSpec struct {
	CertResolver string
	OptionsRef   string
	SNIStrict    bool
	CertFiles    []CertFile
}

// TlsOptions is a named, reusable TLS options set referenced by
// TlsSpec.OptionsRef.
type TlsOptions struct {
	MinVersion   string
	CipherSuites []string
}

// Entrypoint is a named listening address/protocol that routers bind
// to via Router.EntryPoints.
type Entrypoint struct {
	Address  string
	Protocol Protocol
}

// Severity is a Diagnostic's severity level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Source locates a Diagnostic within an input file, when known.
type Source struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Diagnostic is a severity-tagged, source-located record produced by
// ingestion, validation, or emission (spec.md §6). It is the shared
// shape surfaced by the CLI, JSON output, and the optional LSP server.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Source   Source   `json:"source,omitzero"`
	Fix      *string  `json:"fix,omitempty"`
}

// Config is the top-level C3 entity: the full set of routing objects
// produced by an ingestor, consumed by the validator and an emitter.
// Config values are constructed by ingestors, mutated only by the
// validator when it annotates diagnostics or normalizes defaults, and
// read-only thereafter. No shared mutation across components
// (spec.md §3, §5): a Config is never shared across goroutines.
type Config struct {
	Routers     map[string]*Router
	Services    map[string]*Service
	Middlewares map[string]*Middleware
	TlsOptions  map[string]*TlsOptions
	Entrypoints map[string]*Entrypoint
	Diagnostics []Diagnostic

	// RouterOrder, ServiceOrder, MiddlewareOrder record first-seen
	// insertion order per spec.md §8 invariant 4 (determinism: stable
	// id ordering by insertion, then lexicographic). Emitters iterate
	// these slices instead of ranging over the maps directly.
	RouterOrder     []string
	ServiceOrder    []string
	MiddlewareOrder []string
}

// NewConfig returns an empty, ready-to-populate Config.
func NewConfig() *Config {
	return &Config{
		Routers:     make(map[string]*Router),
		Services:    make(map[string]*Service),
		Middlewares: make(map[string]*Middleware),
		TlsOptions:  make(map[string]*TlsOptions),
		Entrypoints: make(map[string]*Entrypoint),
	}
}

// AddRouter inserts r, recording insertion order on first sight.
func (c *Config) AddRouter(r *Router) {
	if _, exists := c.Routers[r.ID]; !exists {
		c.RouterOrder = append(c.RouterOrder, r.ID)
	}
	c.Routers[r.ID] = r
}

// AddService inserts s, recording insertion order on first sight.
func (c *Config) AddService(s *Service) {
	if _, exists := c.Services[s.ID]; !exists {
		c.ServiceOrder = append(c.ServiceOrder, s.ID)
	}
	c.Services[s.ID] = s
}

// AddMiddleware inserts m, recording insertion order on first sight.
func (c *Config) AddMiddleware(m *Middleware) {
	if _, exists := c.Middlewares[m.ID]; !exists {
		c.MiddlewareOrder = append(c.MiddlewareOrder, m.ID)
	}
	c.Middlewares[m.ID] = m
}

// Diagf appends a diagnostic built from a formatted message.
func (c *Config) Diagf(sev Severity, code, format string, args ...any) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether c carries any error-severity diagnostic.
func (c *Config) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
