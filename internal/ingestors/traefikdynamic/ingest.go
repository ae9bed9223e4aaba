// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package traefikdynamic

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"routeforge/pkg/model"
	"routeforge/pkg/providers/ingest"
	"routeforge/pkg/rule"
)

// Feature: INGEST_TRAEFIK_DYNAMIC
// Spec: spec/ingest/traefik-dynamic.md

func init() {
	ingest.Register(&Ingestor{})
}

// Ingestor implements pkg/providers/ingest.Ingestor for Traefik's
// native dynamic-configuration format.
type Ingestor struct{}

// ID implements ingest.Ingestor.
func (*Ingestor) ID() string { return "traefik-dynamic" }

// Ingest implements ingest.Ingestor. It is also called directly (not
// via the registry) by the jsonyaml ingestor, which is "a
// traefik-dynamic ingestor operating on pre-parsed data" (spec.md
// §4.3).
func (ing *Ingestor) Ingest(data []byte, opts ingest.Options) (*model.Config, []model.Diagnostic, error) {
	var wire wireConfig
	if looksLikeJSON(data) {
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, nil, fmt.Errorf("parsing traefik dynamic config (json): %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &wire); err != nil {
			return nil, nil, fmt.Errorf("parsing traefik dynamic config (yaml): %w", err)
		}
	}

	dialect := rule.DialectV3
	if opts.Dialect == "v2" {
		dialect = rule.DialectV2
	}

	cfg := model.NewConfig()

	if wire.HTTP != nil {
		if err := ingestProto(cfg, wire.HTTP, model.ProtocolHTTP, dialect); err != nil {
			return nil, nil, err
		}
	}
	if wire.TCP != nil {
		if err := ingestProto(cfg, wire.TCP, model.ProtocolTCP, dialect); err != nil {
			return nil, nil, err
		}
	}
	if wire.UDP != nil {
		if err := ingestProto(cfg, wire.UDP, model.ProtocolUDP, dialect); err != nil {
			return nil, nil, err
		}
	}
	if wire.TLS != nil {
		ingestTLS(cfg, wire.TLS)
	}

	return cfg, cfg.Diagnostics, nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func ingestProto(cfg *model.Config, proto *wireProtoConfig, protocol model.Protocol, dialect rule.Dialect) error {
	for id, wr := range proto.Routers {
		r := &model.Router{
			ID:             id,
			Protocol:       protocol,
			Priority:       wr.Priority,
			EntryPoints:    wr.EntryPoints,
			ServiceRef:     wr.Service,
			MiddlewareRefs: wr.Middlewares,
		}
		if wr.Rule != "" {
			expr, perr := rule.Parse(wr.Rule, dialect)
			if perr != nil {
				cfg.Diagf(model.SeverityError, string(perr.Code), "router %q: %s", id, perr.Error())
				continue
			}
			r.Rule = expr
		}
		if wr.TLS != nil {
			r.TLS = &model.TlsSpec{
				CertResolver: wr.TLS.CertResolver,
				OptionsRef:   wr.TLS.Options,
			}
		}
		cfg.AddRouter(r)
	}

	for id, ws := range proto.Services {
		svc := &model.Service{ID: id, Protocol: protocol}
		if ws.LoadBalancer != nil {
			svc.Pool = model.LoadBalancer{Policy: model.PolicyRoundRobin}
			for _, s := range ws.LoadBalancer.Servers {
				svc.Pool.Servers = append(svc.Pool.Servers, model.Server{
					URL:     s.URL,
					Address: s.Address,
					Weight:  s.Weight,
				})
			}
			if hasWeights(svc.Pool.Servers) {
				svc.Pool.Policy = model.PolicyWeightedRR
			}
			if ws.LoadBalancer.HealthCheck != nil {
				svc.Health = &model.HealthCheck{
					Path:     ws.LoadBalancer.HealthCheck.Path,
					Interval: ws.LoadBalancer.HealthCheck.Interval,
					Timeout:  ws.LoadBalancer.HealthCheck.Timeout,
				}
			}
		}
		if len(svc.Pool.Servers) == 0 {
			cfg.Diagf(model.SeverityWarning, "EmptyPool", "service %q has no servers", id)
		}
		cfg.AddService(svc)
	}

	for id, wm := range proto.Middlewares {
		kind, params := splitMiddleware(wm)
		m := &model.Middleware{ID: id, Kind: model.MiddlewareKind(kind), Params: params}
		if !model.IsKnownMiddlewareKind(m.Kind) {
			cfg.Diagf(model.SeverityWarning, "UnsupportedFeature", "middleware %q: unrecognized kind %q", id, kind)
			m.RawExtras = map[string]any{"raw": wm}
		}
		cfg.AddMiddleware(m)
	}

	return nil
}

// splitMiddleware recovers a middleware's kind from its sole top-level
// key (spec.md §4.3: "middleware kinds recognized by their sole
// top-level key under each middleware definition").
func splitMiddleware(wm wireMiddleware) (string, map[string]any) {
	for k, v := range wm {
		params, _ := v.(map[string]any)
		return k, params
	}
	return "", nil
}

func hasWeights(servers []model.Server) bool {
	for _, s := range servers {
		if s.Weight != nil {
			return true
		}
	}
	return false
}

func ingestTLS(cfg *model.Config, wt *wireTLSConfig) {
	for id, opt := range wt.Options {
		cfg.TlsOptions[id] = &model.TlsOptions{
			MinVersion:   opt.MinVersion,
			CipherSuites: opt.CipherSuites,
		}
	}
}
