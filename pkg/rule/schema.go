// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package rule

// Feature: CORE_RULE_SCHEMA
// Spec: spec/core/rule-schema.md

// Protocol is one of the router protocols a matcher may be used with.
type Protocol string

const (
	ProtocolHTTP Protocol = "http"
	ProtocolTCP  Protocol = "tcp"
	ProtocolUDP  Protocol = "udp"
)

// Arity bounds a matcher's allowed argument count.
type Arity struct {
	Min int
	Max int // -1 means unbounded
}

func (a Arity) allows(n int) bool {
	if n < a.Min {
		return false
	}
	if a.Max == -1 {
		return true
	}
	return n <= a.Max
}

// matcherSchema describes one matcher's arity and protocol applicability.
// The schema is data, not code: adding a matcher is a one-line table entry
// (spec.md §9 design note), never a new type-switch case.
type matcherSchema struct {
	Arity     Arity
	Protocols []Protocol
}

func (s matcherSchema) supports(p Protocol) bool {
	for _, sp := range s.Protocols {
		if sp == p {
			return true
		}
	}
	return false
}

var schema = map[string]matcherSchema{
	"Host":          {Arity{1, -1}, []Protocol{ProtocolHTTP}},
	"HostRegexp":    {Arity{1, -1}, []Protocol{ProtocolHTTP}},
	"Path":          {Arity{1, -1}, []Protocol{ProtocolHTTP}},
	"PathPrefix":    {Arity{1, -1}, []Protocol{ProtocolHTTP}},
	"PathRegexp":    {Arity{1, -1}, []Protocol{ProtocolHTTP}},
	"Method":        {Arity{1, -1}, []Protocol{ProtocolHTTP}},
	"Header":        {Arity{2, 2}, []Protocol{ProtocolHTTP}},
	"HeaderRegexp":  {Arity{2, 2}, []Protocol{ProtocolHTTP}},
	"Query":         {Arity{1, 2}, []Protocol{ProtocolHTTP}},
	"QueryRegexp":   {Arity{2, 2}, []Protocol{ProtocolHTTP}},
	"ClientIP":      {Arity{1, -1}, []Protocol{ProtocolHTTP, ProtocolTCP, ProtocolUDP}},
	"HostSNI":       {Arity{1, -1}, []Protocol{ProtocolTCP}},
	"HostSNIRegexp": {Arity{1, -1}, []Protocol{ProtocolTCP}},
	"ALPN":          {Arity{1, -1}, []Protocol{ProtocolTCP}},
}

// KnownMatcher reports whether name is a recognized matcher.
func KnownMatcher(name string) bool {
	_, ok := schema[name]
	return ok
}

// MatcherNames returns every recognized matcher name, for error messages
// and tab-completion; order is not significant.
func MatcherNames() []string {
	names := make([]string, 0, len(schema))
	for n := range schema {
		names = append(names, n)
	}
	return names
}

// CheckArity reports whether argc is a legal argument count for name.
// The caller must have already confirmed name is known.
func CheckArity(name string, argc int) bool {
	s, ok := schema[name]
	if !ok {
		return false
	}
	return s.Arity.allows(argc)
}

// SupportsProtocol reports whether matcher name may appear in a router
// rule of protocol p. Used by the validator (C6) for protocol
// compatibility checks.
func SupportsProtocol(name string, p Protocol) bool {
	s, ok := schema[name]
	if !ok {
		return false
	}
	return s.supports(p)
}
