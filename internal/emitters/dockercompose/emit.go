// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package dockercompose emits a Docker Compose manifest with Traefik
// routing labels from the unified model (spec.md §4.4).
package dockercompose

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"routeforge/pkg/model"
	"routeforge/pkg/providers/emit"
	"routeforge/pkg/rule"
)

// Feature: EMIT_DOCKER_COMPOSE
// Spec: spec/emit/docker-compose.md

func init() {
	emit.Register(&Emitter{})
}

// Emitter implements pkg/providers/emit.Emitter, producing a
// `services:` map whose entries carry `traefik.*` labels.
type Emitter struct{}

// ID implements emit.Emitter.
func (*Emitter) ID() string { return "docker-compose" }

// serviceStub is one compose service entry. Image is a placeholder —
// the unified model has no notion of container images, only backend
// pools (spec.md §4.4: "image placeholder allowed").
type serviceStub struct {
	Image  string            `yaml:"image"`
	Labels map[string]string `yaml:"labels"`
}

// Emit implements emit.Emitter.
func (e *Emitter) Emit(cfg *model.Config, opts emit.Options) ([]byte, []model.Diagnostic, error) {
	var diags []model.Diagnostic
	services := make(map[string]serviceStub)
	serviceNames := make(map[string]bool)

	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Protocol != model.ProtocolHTTP {
			diags = append(diags, model.Diagnostic{
				Severity: model.SeverityWarning,
				Code:     "UnsupportedFeature",
				Message:  fmt.Sprintf("router %q: non-HTTP routers are not represented in compose labels", id),
			})
			continue
		}
		svcName := r.ServiceRef
		if svcName == "" {
			svcName = id
		}
		serviceNames[svcName] = true
		stub := services[svcName]
		if stub.Labels == nil {
			stub.Labels = map[string]string{"traefik.enable": "true"}
			stub.Image = svcName + ":latest"
		}

		prefix := fmt.Sprintf("traefik.http.routers.%s", id)
		if r.Rule != nil {
			stub.Labels[prefix+".rule"] = rule.Print(r.Rule, opts.Dialect)
		}
		stub.Labels[prefix+".service"] = r.ServiceRef
		if len(r.EntryPoints) > 0 {
			stub.Labels[prefix+".entrypoints"] = strings.Join(r.EntryPoints, ",")
		}
		if len(r.MiddlewareRefs) > 0 {
			stub.Labels[prefix+".middlewares"] = strings.Join(r.MiddlewareRefs, ",")
		}
		if r.Priority != nil {
			stub.Labels[prefix+".priority"] = fmt.Sprintf("%d", *r.Priority)
		}
		if r.TLS != nil {
			stub.Labels[prefix+".tls"] = "true"
			if r.TLS.CertResolver != "" {
				stub.Labels[prefix+".tls.certresolver"] = r.TLS.CertResolver
			}
		}
		services[svcName] = stub
	}

	for _, id := range cfg.ServiceOrder {
		s := cfg.Services[id]
		if s.Protocol != model.ProtocolHTTP {
			continue
		}
		if !serviceNames[id] {
			continue
		}
		stub := services[id]
		svcPrefix := fmt.Sprintf("traefik.http.services.%s", id)
		for i, srv := range s.Pool.Servers {
			if i == 0 {
				port := portFromURL(srv.URL)
				if port != "" {
					stub.Labels[svcPrefix+".loadbalancer.server.port"] = port
				}
			}
		}
		services[id] = stub
	}

	for _, id := range cfg.MiddlewareOrder {
		m := cfg.Middlewares[id]
		for svcName, stub := range services {
			prefix := fmt.Sprintf("traefik.http.middlewares.%s.%s", id, m.Kind)
			for k, v := range m.Params {
				stub.Labels[fmt.Sprintf("%s.%s", prefix, k)] = fmt.Sprintf("%v", v)
			}
			services[svcName] = stub
		}
	}

	out, err := encodeCompose(services)
	return out, diags, err
}

func portFromURL(url string) string {
	idx := strings.LastIndex(url, ":")
	if idx == -1 {
		return ""
	}
	port := url[idx+1:]
	if slash := strings.IndexByte(port, '/'); slash != -1 {
		port = port[:slash]
	}
	return port
}

type composeDoc struct {
	Services map[string]serviceStub `yaml:"services"`
}

// encodeCompose renders services as YAML with deterministic key
// ordering, following the teacher's sorted-map-rebuild-then-encode
// pattern (internal/dev/traefik generator, internal/compose loader).
func encodeCompose(services map[string]serviceStub) ([]byte, error) {
	names := make([]string, 0, len(services))
	for n := range services {
		names = append(names, n)
	}
	sort.Strings(names)

	ordered := make(map[string]serviceStub, len(services))
	for _, n := range names {
		stub := services[n]
		ordered[n] = stub
	}

	doc := composeDoc{Services: ordered}
	node := &yaml.Node{}
	if err := node.Encode(doc); err != nil {
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
