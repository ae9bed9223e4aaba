// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package dockercompose ingests a Docker Compose manifest whose
// service labels encode Traefik routing (spec.md §4.3) into the
// unified model.
package dockercompose

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"routeforge/pkg/model"
	"routeforge/pkg/providers/ingest"
	"routeforge/pkg/rule"
)

// Feature: INGEST_DOCKER_COMPOSE
// Spec: spec/ingest/docker-compose.md

func init() {
	ingest.Register(&Ingestor{})
}

// Ingestor implements pkg/providers/ingest.Ingestor for Docker
// Compose + Traefik labels.
type Ingestor struct{}

// ID implements ingest.Ingestor.
func (*Ingestor) ID() string { return "docker-compose" }

// Ingest implements ingest.Ingestor.
func (ing *Ingestor) Ingest(data []byte, opts ingest.Options) (*model.Config, []model.Diagnostic, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing compose file: %w", err)
	}

	dialect := rule.DialectV3
	if opts.Dialect == "v2" {
		dialect = rule.DialectV2
	}

	cfg := model.NewConfig()

	services, _ := doc["services"].(map[string]any)
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		svcData, _ := services[name].(map[string]any)
		if err := ingestService(cfg, name, svcData, dialect); err != nil {
			cfg.Diagf(model.SeverityError, "InvalidLabels", "service %q: %s", name, err.Error())
		}
	}

	return cfg, cfg.Diagnostics, nil
}

func ingestService(cfg *model.Config, name string, svcData map[string]any, dialect rule.Dialect) error {
	labels := extractLabels(svcData)

	traefikLabels := make(map[string]string)
	for k, v := range labels {
		if rest, ok := strings.CutPrefix(k, "traefik."); ok {
			traefikLabels[rest] = v
		}
	}
	if len(traefikLabels) == 0 {
		return nil
	}

	tree, err := foldLabels(traefikLabels)
	if err != nil {
		return err
	}

	if enableLeaf, ok := tree.get("enable").leaf(); ok && enableLeaf == "false" {
		return nil
	}

	firstPort := firstExposedPort(svcData)

	for _, protocol := range []model.Protocol{model.ProtocolHTTP, model.ProtocolTCP, model.ProtocolUDP} {
		protoNode := tree.get(string(protocol))
		if protoNode == nil {
			continue
		}
		ingestProtoTree(cfg, name, protoNode, protocol, dialect, firstPort)
	}

	return nil
}

func ingestProtoTree(cfg *model.Config, serviceName string, protoNode *labelTree, protocol model.Protocol, dialect rule.Dialect, firstPort string) {
	routersNode := protoNode.get("routers")
	for _, id := range sortedKeys(routersNode) {
		rn := routersNode.children[id]
		r := &model.Router{ID: id, Protocol: protocol}

		if ruleLit, ok := rn.get("rule").leaf(); ok {
			expr, perr := rule.Parse(ruleLit, dialect)
			if perr != nil {
				cfg.Diagf(model.SeverityError, string(perr.Code), "router %q: %s", id, perr.Error())
			} else {
				r.Rule = expr
			}
		}
		if svc, ok := rn.get("service").leaf(); ok {
			r.ServiceRef = svc
		} else {
			r.ServiceRef = serviceName
		}
		if eps, ok := rn.get("entrypoints").leaf(); ok {
			r.EntryPoints = strings.Split(eps, ",")
		}
		if mws, ok := rn.get("middlewares").leaf(); ok {
			r.MiddlewareRefs = strings.Split(mws, ",")
		}
		if prio, ok := rn.get("priority").leaf(); ok {
			if n, err := strconv.Atoi(prio); err == nil {
				r.Priority = &n
			}
		}
		if tlsNode := rn.get("tls"); tlsNode != nil {
			r.TLS = &model.TlsSpec{}
			if cr, ok := tlsNode.get("certresolver").leaf(); ok {
				r.TLS.CertResolver = cr
			}
		}
		cfg.AddRouter(r)
	}

	servicesNode := protoNode.get("services")
	for _, id := range sortedKeys(servicesNode) {
		sn := servicesNode.children[id]
		svc := &model.Service{ID: id, Protocol: protocol, Pool: model.LoadBalancer{Policy: model.PolicyRoundRobin}}

		if port, ok := sn.get("loadbalancer", "server", "port").leaf(); ok {
			svc.Pool.Servers = append(svc.Pool.Servers, model.Server{URL: fmt.Sprintf("http://%s:%s", serviceName, port)})
		} else if firstPort != "" {
			svc.Pool.Servers = append(svc.Pool.Servers, model.Server{URL: fmt.Sprintf("http://%s:%s", serviceName, firstPort)})
		} else {
			cfg.Diagf(model.SeverityWarning, "MissingPort", "service %q has no loadbalancer.server.port and no compose port to inherit", id)
		}
		cfg.AddService(svc)
	}

	middlewaresNode := protoNode.get("middlewares")
	for _, id := range sortedKeys(middlewaresNode) {
		mn := middlewaresNode.children[id]
		kinds := sortedKeys(mn)
		if len(kinds) == 0 {
			continue
		}
		kind := kinds[0]
		params := labelTreeToParams(mn.children[kind])
		m := &model.Middleware{ID: id, Kind: model.MiddlewareKind(kind), Params: params}
		if !model.IsKnownMiddlewareKind(m.Kind) {
			cfg.Diagf(model.SeverityWarning, "UnsupportedFeature", "middleware %q: unrecognized kind %q", id, kind)
			m.RawExtras = map[string]any{"raw": map[string]any{kind: params}}
		}
		cfg.AddMiddleware(m)
	}
}

func labelTreeToParams(t *labelTree) map[string]any {
	if t == nil {
		return nil
	}
	if v, ok := t.leaf(); ok {
		return map[string]any{"value": v}
	}
	out := make(map[string]any)
	for k, child := range t.children {
		if v, ok := child.leaf(); ok {
			out[k] = v
		} else {
			out[k] = labelTreeToParams(child)
		}
	}
	return out
}

func sortedKeys(t *labelTree) []string {
	keys := t.keys()
	sort.Strings(keys)
	return keys
}

func extractLabels(svcData map[string]any) map[string]string {
	out := make(map[string]string)
	raw, ok := svcData["labels"]
	if !ok {
		return out
	}
	switch v := raw.(type) {
	case map[string]any:
		for k, val := range v {
			out[k] = fmt.Sprintf("%v", val)
		}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if k, val, found := strings.Cut(s, "="); found {
				out[k] = val
			}
		}
	}
	return out
}

// firstExposedPort returns the first entry of the compose "expose" or
// "ports" list, used when a service has no explicit
// loadbalancer.server.port label (spec.md §4.3).
func firstExposedPort(svcData map[string]any) string {
	if expose, ok := svcData["expose"].([]any); ok && len(expose) > 0 {
		return fmt.Sprintf("%v", expose[0])
	}
	if ports, ok := svcData["ports"].([]any); ok && len(ports) > 0 {
		spec := fmt.Sprintf("%v", ports[0])
		// "8080:3000" or "3000" -> container-side port is the part after ':', if any.
		if idx := strings.LastIndex(spec, ":"); idx != -1 {
			return spec[idx+1:]
		}
		return spec
	}
	return ""
}
