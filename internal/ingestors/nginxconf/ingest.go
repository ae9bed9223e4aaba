// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package nginxconf

import (
	"fmt"
	"strings"

	"routeforge/pkg/model"
	"routeforge/pkg/providers/ingest"
	"routeforge/pkg/rule"
)

// Feature: INGEST_NGINX_CONF
// Spec: spec/ingest/nginx-conf.md

func init() {
	ingest.Register(&Ingestor{})
}

// recognizedDirectives is the fixed directive list spec.md §4.3 names;
// anything else found inside a server{}/location{} is preserved into
// RawExtras rather than dropped.
var recognizedDirectives = map[string]bool{
	"listen": true, "server_name": true, "ssl_certificate": true,
	"ssl_certificate_key": true, "proxy_pass": true, "proxy_set_header": true,
	"return": true, "rewrite": true, "auth_basic": true, "limit_req": true,
	"limit_conn": true, "allow": true, "deny": true, "if": true,
}

// Ingestor implements pkg/providers/ingest.Ingestor for nginx textual
// configuration.
type Ingestor struct{}

// ID implements ingest.Ingestor.
func (*Ingestor) ID() string { return "nginx-conf" }

// Ingest implements ingest.Ingestor.
func (ing *Ingestor) Ingest(data []byte, opts ingest.Options) (*model.Config, []model.Diagnostic, error) {
	blocks, err := parseBlocks(string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing nginx config: %w", err)
	}

	dialect := rule.DialectV3
	if opts.Dialect == "v2" {
		dialect = rule.DialectV2
	}

	cfg := model.NewConfig()
	upstreams := collectUpstreams(blocks)

	routerSeq := 0
	for _, top := range blocks {
		if top.Name != "http" {
			if top.Name == "server" {
				routerSeq = ingestServer(cfg, top, upstreams, dialect, routerSeq)
			}
			continue
		}
		for _, child := range top.Children {
			if child.Name == "server" {
				routerSeq = ingestServer(cfg, child, upstreams, dialect, routerSeq)
			}
			if child.Name == "upstream" {
				ingestUpstream(cfg, child)
			}
		}
	}
	// Upstreams may also appear at top level (outside an explicit http{}
	// wrapper), as in spec.md S5.
	for _, top := range blocks {
		if top.Name == "upstream" {
			ingestUpstream(cfg, top)
		}
	}

	return cfg, cfg.Diagnostics, nil
}

func collectUpstreams(blocks []*block) map[string]bool {
	out := make(map[string]bool)
	var walk func([]*block)
	walk = func(bs []*block) {
		for _, b := range bs {
			if b.Name == "upstream" && len(b.Args) > 0 {
				out[b.Args[0]] = true
			}
			walk(b.Children)
		}
	}
	walk(blocks)
	return out
}

func ingestUpstream(cfg *model.Config, up *block) {
	if len(up.Args) == 0 {
		return
	}
	id := up.Args[0]
	svc := &model.Service{ID: id, Protocol: model.ProtocolHTTP, Pool: model.LoadBalancer{Policy: model.PolicyRoundRobin}}
	hasWeight := false
	for _, d := range up.findAll("server") {
		addr := ""
		weight := (*int)(nil)
		for _, arg := range d.Args {
			if strings.HasPrefix(arg, "weight=") {
				var w int
				fmt.Sscanf(strings.TrimPrefix(arg, "weight="), "%d", &w)
				weight = &w
				hasWeight = true
			} else if addr == "" {
				addr = arg
			}
		}
		svc.Pool.Servers = append(svc.Pool.Servers, model.Server{Address: addr, Weight: weight})
	}
	if up.find("least_conn") != nil {
		svc.Pool.Policy = model.PolicyLeastConn
	}
	if hasWeight {
		svc.Pool.Policy = model.PolicyWeightedRR
	}
	cfg.AddService(svc)
}

func ingestServer(cfg *model.Config, srv *block, upstreams map[string]bool, dialect rule.Dialect, seq int) int {
	serverName := ""
	if sn := srv.find("server_name"); sn != nil {
		serverName = sn.argString()
	}

	var tlsSpec *model.TlsSpec
	for _, listen := range srv.findAll("listen") {
		if containsArg(listen.Args, "ssl") {
			tlsSpec = &model.TlsSpec{}
			if cert := srv.find("ssl_certificate"); cert != nil {
				cf := model.CertFile{Cert: cert.argString()}
				if key := srv.find("ssl_certificate_key"); key != nil {
					cf.Key = key.argString()
				}
				tlsSpec.CertFiles = append(tlsSpec.CertFiles, cf)
			}
		}
	}

	raw := collectRawExtras(srv)

	for _, loc := range srv.findAll("location") {
		seq++
		id := fmt.Sprintf("router-%d", seq)

		var hostExpr rule.Expr = &rule.Matcher{Name: "Host", Args: []rule.Arg{rule.StringArg(serverName, rule.QuoteBacktick)}}
		pathExpr := locationRuleExpr(loc)
		var full rule.Expr = hostExpr
		if pathExpr != nil {
			full = &rule.And{Left: hostExpr, Right: pathExpr}
		}

		r := &model.Router{ID: id, Protocol: model.ProtocolHTTP, Rule: full, TLS: tlsSpec}
		extras := make(map[string]any, len(raw))
		for k, v := range raw {
			extras[k] = v
		}
		for k, v := range collectRawExtras(loc) {
			extras[k] = v
		}
		if len(extras) > 0 {
			r.RawExtras = extras
		}

		svcID := ""
		if pp := loc.find("proxy_pass"); pp != nil {
			svcID = upstreamNameFromProxyPass(pp.argString(), upstreams)
		}
		r.ServiceRef = svcID

		if ab := loc.find("auth_basic"); ab != nil {
			mwID := id + "-auth"
			cfg.AddMiddleware(&model.Middleware{ID: mwID, Kind: model.MiddlewareBasicAuth})
			r.MiddlewareRefs = append(r.MiddlewareRefs, mwID)
		}
		if lr := loc.find("limit_req"); lr != nil {
			mwID := id + "-ratelimit"
			cfg.AddMiddleware(&model.Middleware{ID: mwID, Kind: model.MiddlewareRateLimit})
			r.MiddlewareRefs = append(r.MiddlewareRefs, mwID)
		}
		if allow := loc.find("allow"); allow != nil {
			mwID := id + "-allowlist"
			cfg.AddMiddleware(&model.Middleware{ID: mwID, Kind: model.MiddlewareIPAllowlist, Params: map[string]any{"sourceRange": []string{allow.argString()}}})
			r.MiddlewareRefs = append(r.MiddlewareRefs, mwID)
		}

		cfg.AddRouter(r)

		if svcID != "" && upstreams[svcID] {
			continue // already ingested via ingestUpstream
		}
		if pp := loc.find("proxy_pass"); pp != nil && svcID != "" {
			if _, exists := cfg.Services[svcID]; !exists {
				host, port := hostPortFromProxyPass(pp.argString())
				cfg.AddService(&model.Service{
					ID:       svcID,
					Protocol: model.ProtocolHTTP,
					Pool: model.LoadBalancer{
						Policy:  model.PolicyRoundRobin,
						Servers: []model.Server{{URL: fmt.Sprintf("http://%s:%s", host, port)}},
					},
				})
			}
		}
	}
	return seq
}

func locationRuleExpr(loc *block) rule.Expr {
	if len(loc.Args) == 0 {
		return nil
	}
	if len(loc.Args) >= 2 && loc.Args[0] == "=" {
		return &rule.Matcher{Name: "Path", Args: []rule.Arg{rule.StringArg(loc.Args[1], rule.QuoteBacktick)}}
	}
	if len(loc.Args) >= 2 && loc.Args[0] == "~" {
		return &rule.Matcher{Name: "PathRegexp", Args: []rule.Arg{rule.StringArg(loc.Args[1], rule.QuoteBacktick)}}
	}
	path := loc.Args[len(loc.Args)-1]
	return &rule.Matcher{Name: "PathPrefix", Args: []rule.Arg{rule.StringArg(path, rule.QuoteBacktick)}}
}

func upstreamNameFromProxyPass(target string, upstreams map[string]bool) string {
	host, _ := hostPortFromProxyPass(target)
	if upstreams[host] {
		return host
	}
	return host
}

func hostPortFromProxyPass(target string) (host, port string) {
	target = strings.TrimPrefix(target, "http://")
	target = strings.TrimPrefix(target, "https://")
	target = strings.TrimSuffix(target, "/")
	if idx := strings.IndexByte(target, '/'); idx != -1 {
		target = target[:idx]
	}
	if idx := strings.LastIndex(target, ":"); idx != -1 {
		return target[:idx], target[idx+1:]
	}
	return target, "80"
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func collectRawExtras(srv *block) map[string]any {
	extras := make(map[string]any)
	for _, c := range srv.Children {
		if !recognizedDirectives[c.Name] && c.Name != "location" {
			extras[c.Name] = c.argString()
		}
	}
	if len(extras) == 0 {
		return nil
	}
	return extras
}
