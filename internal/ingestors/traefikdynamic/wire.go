// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package traefikdynamic ingests Traefik dynamic configuration (YAML
// or JSON) into the unified model, per spec.md §4.3.
package traefikdynamic

// Feature: INGEST_TRAEFIK_DYNAMIC
// Spec: spec/ingest/traefik-dynamic.md

// wireConfig mirrors the published Traefik dynamic-configuration
// schema closely enough to round-trip http.routers, http.services,
// http.middlewares, tls, tcp.*, and udp.* (spec.md §6). Fields outside
// these structs are dropped on decode; the only raw data kept is the
// body of a middleware whose kind is unrecognized, which the ingestor
// stores in that middleware's RawExtras.
type wireConfig struct {
	HTTP *wireProtoConfig `yaml:"http,omitempty" json:"http,omitempty"`
	TCP  *wireProtoConfig `yaml:"tcp,omitempty" json:"tcp,omitempty"`
	UDP  *wireProtoConfig `yaml:"udp,omitempty" json:"udp,omitempty"`
	TLS  *wireTLSConfig   `yaml:"tls,omitempty" json:"tls,omitempty"`
}

type wireProtoConfig struct {
	Routers     map[string]wireRouter     `yaml:"routers,omitempty" json:"routers,omitempty"`
	Services    map[string]wireService    `yaml:"services,omitempty" json:"services,omitempty"`
	Middlewares map[string]wireMiddleware `yaml:"middlewares,omitempty" json:"middlewares,omitempty"`
}

type wireRouter struct {
	Rule        string       `yaml:"rule,omitempty" json:"rule,omitempty"`
	Service     string       `yaml:"service,omitempty" json:"service,omitempty"`
	EntryPoints []string     `yaml:"entryPoints,omitempty" json:"entryPoints,omitempty"`
	Middlewares []string     `yaml:"middlewares,omitempty" json:"middlewares,omitempty"`
	Priority    *int         `yaml:"priority,omitempty" json:"priority,omitempty"`
	TLS         *wireRuleTLS `yaml:"tls,omitempty" json:"tls,omitempty"`
}

type wireRuleTLS struct {
	CertResolver string   `yaml:"certResolver,omitempty" json:"certResolver,omitempty"`
	Options      string   `yaml:"options,omitempty" json:"options,omitempty"`
	Domains      []string `yaml:"domains,omitempty" json:"domains,omitempty"`
}

type wireService struct {
	LoadBalancer *wireLoadBalancer `yaml:"loadBalancer,omitempty" json:"loadBalancer,omitempty"`
}

type wireLoadBalancer struct {
	Servers        []wireServer `yaml:"servers,omitempty" json:"servers,omitempty"`
	HealthCheck    *wireHealth  `yaml:"healthCheck,omitempty" json:"healthCheck,omitempty"`
	PassHostHeader *bool        `yaml:"passHostHeader,omitempty" json:"passHostHeader,omitempty"`
}

type wireServer struct {
	URL     string `yaml:"url,omitempty" json:"url,omitempty"`
	Address string `yaml:"address,omitempty" json:"address,omitempty"`
	Weight  *int   `yaml:"weight,omitempty" json:"weight,omitempty"`
}

type wireHealth struct {
	Path     string `yaml:"path,omitempty" json:"path,omitempty"`
	Interval string `yaml:"interval,omitempty" json:"interval,omitempty"`
	Timeout  string `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// wireMiddleware is deliberately permissive: a middleware definition's
// sole top-level key names its kind (spec.md §4.3), so it decodes as a
// raw map and the kind is recovered by inspecting that map's one key.
type wireMiddleware map[string]any

type wireTLSConfig struct {
	Options        map[string]wireTLSOptions `yaml:"options,omitempty" json:"options,omitempty"`
	Certificates   []wireCertificate         `yaml:"certificates,omitempty" json:"certificates,omitempty"`
}

type wireTLSOptions struct {
	MinVersion   string   `yaml:"minVersion,omitempty" json:"minVersion,omitempty"`
	CipherSuites []string `yaml:"cipherSuites,omitempty" json:"cipherSuites,omitempty"`
}

type wireCertificate struct {
	CertFile string `yaml:"certFile,omitempty" json:"certFile,omitempty"`
	KeyFile  string `yaml:"keyFile,omitempty" json:"keyFile,omitempty"`
}
