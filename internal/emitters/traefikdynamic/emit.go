// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package traefikdynamic emits Traefik dynamic configuration (YAML)
// from the unified model — the inverse of
// internal/ingestors/traefikdynamic (spec.md §4.4).
package traefikdynamic

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"routeforge/pkg/model"
	"routeforge/pkg/providers/emit"
	"routeforge/pkg/rule"
)

// Feature: EMIT_TRAEFIK_DYNAMIC
// Spec: spec/emit/traefik-dynamic.md

func init() {
	emit.Register(&Emitter{})
}

// wireRoot mirrors internal/ingestors/traefikdynamic's wireConfig;
// duplicated rather than imported so the two packages can diverge
// independently as each format's schema evolves.
type wireRoot struct {
	HTTP *wireProto `yaml:"http,omitempty"`
	TCP  *wireProto `yaml:"tcp,omitempty"`
	UDP  *wireProto `yaml:"udp,omitempty"`
}

type wireProto struct {
	Routers     map[string]wireRouter     `yaml:"routers,omitempty"`
	Services    map[string]wireService    `yaml:"services,omitempty"`
	Middlewares map[string]wireMiddleware `yaml:"middlewares,omitempty"`
}

type wireRouter struct {
	Rule        string   `yaml:"rule,omitempty"`
	Service     string   `yaml:"service,omitempty"`
	EntryPoints []string `yaml:"entryPoints,omitempty"`
	Middlewares []string `yaml:"middlewares,omitempty"`
	Priority    *int     `yaml:"priority,omitempty"`
	TLS         *wireTLS `yaml:"tls,omitempty"`
}

type wireTLS struct {
	CertResolver string `yaml:"certResolver,omitempty"`
	Options      string `yaml:"options,omitempty"`
}

type wireService struct {
	LoadBalancer wireLoadBalancer `yaml:"loadBalancer"`
}

type wireLoadBalancer struct {
	Servers []wireServer `yaml:"servers"`
}

type wireServer struct {
	URL     string `yaml:"url,omitempty"`
	Address string `yaml:"address,omitempty"`
	Weight  *int   `yaml:"weight,omitempty"`
}

type wireMiddleware map[string]any

// Emitter implements pkg/providers/emit.Emitter for Traefik's native
// dynamic-configuration format.
type Emitter struct{}

// ID implements emit.Emitter.
func (*Emitter) ID() string { return "traefik-dynamic" }

// Emit implements emit.Emitter.
func (e *Emitter) Emit(cfg *model.Config, opts emit.Options) ([]byte, []model.Diagnostic, error) {
	dialect := opts.Dialect

	var diags []model.Diagnostic
	root := wireRoot{}

	httpProto, httpDiags := buildProto(cfg, model.ProtocolHTTP, dialect)
	tcpProto, tcpDiags := buildProto(cfg, model.ProtocolTCP, dialect)
	udpProto, udpDiags := buildProto(cfg, model.ProtocolUDP, dialect)
	diags = append(diags, httpDiags...)
	diags = append(diags, tcpDiags...)
	diags = append(diags, udpDiags...)

	if httpProto != nil {
		root.HTTP = httpProto
	}
	if tcpProto != nil {
		root.TCP = tcpProto
	}
	if udpProto != nil {
		root.UDP = udpProto
	}

	out, err := encodeDeterministic(root)
	if err != nil {
		return nil, diags, err
	}
	return out, diags, nil
}

func buildProto(cfg *model.Config, protocol model.Protocol, dialect rule.Dialect) (*wireProto, []model.Diagnostic) {
	var diags []model.Diagnostic
	proto := &wireProto{
		Routers:     make(map[string]wireRouter),
		Services:    make(map[string]wireService),
		Middlewares: make(map[string]wireMiddleware),
	}
	any := false

	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Protocol != protocol {
			continue
		}
		any = true
		wr := wireRouter{
			Service:     r.ServiceRef,
			EntryPoints: r.EntryPoints,
			Middlewares: r.MiddlewareRefs,
			Priority:    r.Priority,
		}
		if r.Rule != nil {
			wr.Rule = rule.Print(r.Rule, dialect)
		}
		if r.TLS != nil {
			wr.TLS = &wireTLS{CertResolver: r.TLS.CertResolver, Options: r.TLS.OptionsRef}
		}
		proto.Routers[id] = wr
	}

	for _, id := range cfg.ServiceOrder {
		s := cfg.Services[id]
		if s.Protocol != protocol {
			continue
		}
		any = true
		ws := wireService{}
		for _, srv := range s.Pool.Servers {
			ws.LoadBalancer.Servers = append(ws.LoadBalancer.Servers, wireServer{
				URL: srv.URL, Address: srv.Address, Weight: srv.Weight,
			})
		}
		proto.Services[id] = ws
	}

	if protocol == model.ProtocolHTTP {
		for _, id := range cfg.MiddlewareOrder {
			m := cfg.Middlewares[id]
			any = true
			proto.Middlewares[id] = wireMiddleware{string(m.Kind): m.Params}
		}
	}

	if !any {
		return nil, diags
	}
	return proto, diags
}

// encodeDeterministic renders v as YAML with stable map-key ordering
// (spec.md §8 invariant 4). It encodes through a yaml.Node with
// two-space indentation; the key ordering itself comes from yaml.v3,
// which emits map keys in sorted order.
func encodeDeterministic(v any) ([]byte, error) {
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
