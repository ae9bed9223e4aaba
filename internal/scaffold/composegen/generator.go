// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package composegen builds the Docker Compose manifest that
// accompanies a scaffolded proxy config (spec.md §6 `scaffold
// --include-compose`): one stub service per backend the unified model
// references, plus a proxy container (Traefik or nginx) wired to the
// scaffolded static/dynamic config files.
//
// Adapted from the teacher's internal/dev/compose generator, which built
// a dev Docker Compose model (backend + frontend + Traefik services)
// from hardcoded ServiceDefinition values; here the service list comes
// from the ingested *model.Config instead, and the proxy container is
// either Traefik or nginx depending on --proxy-type.
package composegen

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"routeforge/pkg/model"
)

// Feature: AMBIENT_SCAFFOLD
// Spec: SPEC_FULL.md §6 scaffold

const (
	networkName  = "routeforge"
	traefikImage = "traefik:v3.1"
	nginxImage   = "nginx:1.27"
)

// Options configures Generate.
type Options struct {
	ProxyType          string // "traefik" or "nginx"
	StaticConfigPath   string // host path to mount, traefik only
	DynamicConfigPath  string // host path to mount (traefik dynamic config, or nginx.conf)
}

// Generate builds a deterministic Compose YAML document: a stub service
// per entry in cfg.ServiceOrder (so `docker compose up` has something to
// route to) plus a proxy service for opts.ProxyType.
func Generate(cfg *model.Config, opts Options) ([]byte, error) {
	services := make(map[string]any, len(cfg.ServiceOrder)+1)

	for _, id := range cfg.ServiceOrder {
		svc := cfg.Services[id]
		services[id] = buildStubService(svc)
	}

	switch opts.ProxyType {
	case "traefik":
		services["proxy"] = buildTraefikService(opts)
	case "nginx":
		services["proxy"] = buildNginxService(opts)
	}

	doc := map[string]any{
		"services": sortedMapCopy(services),
		"networks": map[string]any{
			networkName: map[string]any{},
		},
	}

	return encodeDeterministic(doc)
}

func buildStubService(svc *model.Service) map[string]any {
	m := map[string]any{
		"image":    "REPLACE_ME:latest",
		"networks": []any{networkName},
	}
	if svc.Protocol == model.ProtocolHTTP {
		for _, srv := range svc.Pool.Servers {
			if port := portFromURL(srv.URL); port != "" {
				m["expose"] = []any{port}
				break
			}
		}
	}
	return m
}

func buildTraefikService(opts Options) map[string]any {
	return map[string]any{
		"image": traefikImage,
		"ports": []any{
			quotedPort("80:80"),
			quotedPort("443:443"),
		},
		"volumes": []any{
			opts.StaticConfigPath + ":/etc/traefik/traefik.yml:ro",
			opts.DynamicConfigPath + ":/etc/traefik/dynamic.yml:ro",
		},
		"networks": []any{networkName},
	}
}

func buildNginxService(opts Options) map[string]any {
	return map[string]any{
		"image": nginxImage,
		"ports": []any{
			quotedPort("80:80"),
			quotedPort("443:443"),
		},
		"volumes": []any{
			opts.DynamicConfigPath + ":/etc/nginx/nginx.conf:ro",
		},
		"networks": []any{networkName},
	}
}

func quotedPort(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.DoubleQuotedStyle}
}

func portFromURL(url string) string {
	for i := len(url) - 1; i >= 0; i-- {
		if url[i] == ':' {
			return url[i+1:]
		}
		if url[i] == '/' {
			break
		}
	}
	return ""
}

func sortedMapCopy(m map[string]any) map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]any, len(m))
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

// encodeDeterministic mirrors internal/emitters/dockercompose's
// yaml.Node-based encoder. The output is stable because yaml.v3 emits
// map keys in sorted order; the Go map built by sortedMapCopy carries
// no ordering of its own.
func encodeDeterministic(doc map[string]any) ([]byte, error) {
	node := &yaml.Node{}
	if err := node.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding compose document: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("encoding compose yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
