// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package nginxconf lowers the unified model to nginx textual
// configuration, per the five-step algorithm in spec.md §4.4.
package nginxconf

import (
	"fmt"
	"sort"
	"strings"

	"routeforge/pkg/model"
	"routeforge/pkg/providers/emit"
	"routeforge/pkg/rule"
)

// Feature: EMIT_NGINX_CONF
// Spec: spec/emit/nginx-conf.md

func init() {
	emit.Register(&Emitter{})
}

// Emitter implements pkg/providers/emit.Emitter for nginx.
type Emitter struct{}

// ID implements emit.Emitter.
func (*Emitter) ID() string { return "nginx-conf" }

// Emit implements emit.Emitter.
func (e *Emitter) Emit(cfg *model.Config, opts emit.Options) ([]byte, []model.Diagnostic, error) {
	var sb strings.Builder
	var diags []model.Diagnostic

	streamRouters := streamRouters(cfg)
	if len(streamRouters) > 0 {
		sb.WriteString("stream {\n")
		for _, r := range streamRouters {
			writeStreamRouter(&sb, cfg, r)
		}
		sb.WriteString("}\n\n")
	}

	sb.WriteString("http {\n")

	usedServices := make(map[string]bool)
	groups := groupByHost(cfg)
	hostNames := make([]string, 0, len(groups))
	for h := range groups {
		hostNames = append(hostNames, h)
	}
	sort.Strings(hostNames)

	for _, host := range hostNames {
		routers := groups[host]
		sb.WriteString(fmt.Sprintf("    server {\n        server_name %s;\n", host))
		for _, r := range routers {
			writeLocation(&sb, cfg, r, &diags)
			if r.ServiceRef != "" {
				usedServices[r.ServiceRef] = true
			}
			if r.TLS != nil {
				writeTLSDirectives(&sb, r.TLS)
			}
		}
		sb.WriteString("    }\n\n")
	}

	for _, id := range cfg.ServiceOrder {
		s := cfg.Services[id]
		if s.Protocol != model.ProtocolHTTP || !usedServices[id] {
			continue
		}
		writeUpstream(&sb, id, s, &diags)
	}

	sb.WriteString("}\n")

	return []byte(sb.String()), diags, nil
}

// groupByHost implements step 1 of spec.md §4.4: group HTTP routers by
// the Host/HostRegexp value extracted from their rule. A rule is
// "host-compatible" if its top level is a conjunction containing at
// least one host matcher; otherwise the router goes into a default
// server{} (host "_").
func groupByHost(cfg *model.Config) map[string][]*model.Router {
	groups := make(map[string][]*model.Router)
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Protocol != model.ProtocolHTTP {
			continue
		}
		host := "_"
		if r.Rule != nil && rule.HasTopLevelHostMatcher(r.Rule) {
			if h := firstHostValue(r.Rule); h != "" {
				host = h
			}
		}
		groups[host] = append(groups[host], r)
	}
	return groups
}

func firstHostValue(e rule.Expr) string {
	for _, m := range rule.Matchers(e) {
		if m.Name == "Host" && len(m.Args) > 0 {
			return m.Args[0].Literal
		}
		if m.Name == "HostRegexp" && len(m.Args) > 0 {
			return m.Args[0].Literal
		}
	}
	return ""
}

// writeLocation implements step 3: path extraction from Path /
// PathPrefix / PathRegexp matchers, plus middleware lowering (step 5).
func writeLocation(sb *strings.Builder, cfg *model.Config, r *model.Router, diags *[]model.Diagnostic) {
	locPrefix, locPath := extractLocation(r.Rule)
	sb.WriteString(fmt.Sprintf("        location %s %s {\n", locPrefix, locPath))
	writeAccessControl(sb, r.Rule)
	if r.ServiceRef != "" {
		sb.WriteString(fmt.Sprintf("            proxy_pass http://%s;\n", r.ServiceRef))
	}
	for _, mwID := range r.MiddlewareRefs {
		mw := cfg.Middlewares[mwID]
		if mw == nil {
			continue
		}
		writeMiddleware(sb, mw, diags)
	}
	sb.WriteString("        }\n")
}

func extractLocation(e rule.Expr) (prefix, path string) {
	if e == nil {
		return "", "/"
	}
	for _, m := range rule.Matchers(e) {
		switch m.Name {
		case "Path":
			if len(m.Args) > 0 {
				return "=", m.Args[0].Literal
			}
		case "PathPrefix":
			if len(m.Args) > 0 {
				return "", m.Args[0].Literal
			}
		case "PathRegexp":
			if len(m.Args) > 0 {
				return "~", m.Args[0].Literal
			}
		}
	}
	return "", "/"
}

// writeAccessControl implements the other half of step 3: Method,
// Header, Query, and ClientIP matchers don't contribute to the
// location path, they become if/allow/deny directives inside the
// location block.
func writeAccessControl(sb *strings.Builder, e rule.Expr) {
	if e == nil {
		return
	}
	var clientIPs []string
	for _, m := range rule.Matchers(e) {
		switch m.Name {
		case "ClientIP":
			for _, a := range m.Args {
				clientIPs = append(clientIPs, a.Literal)
			}
		case "Method":
			if len(m.Args) == 0 {
				continue
			}
			methods := make([]string, 0, len(m.Args))
			for _, a := range m.Args {
				methods = append(methods, a.Literal)
			}
			sb.WriteString(fmt.Sprintf("            if ($request_method !~ ^(%s)$) { return 405; }\n", strings.Join(methods, "|")))
		case "Header":
			if len(m.Args) < 2 {
				continue
			}
			sb.WriteString(fmt.Sprintf("            if ($http_%s != %q) { return 403; }\n", headerVarName(m.Args[0].Literal), m.Args[1].Literal))
		case "Query":
			if len(m.Args) < 2 {
				continue
			}
			sb.WriteString(fmt.Sprintf("            if ($arg_%s != %q) { return 403; }\n", m.Args[0].Literal, m.Args[1].Literal))
		}
	}
	for _, cidr := range clientIPs {
		sb.WriteString(fmt.Sprintf("            allow %s;\n", cidr))
	}
	if len(clientIPs) > 0 {
		sb.WriteString("            deny all;\n")
	}
}

// headerVarName converts a matcher's header name to the nginx
// `$http_<name>` variable form: lowercased, dashes to underscores.
func headerVarName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

// writeMiddleware implements step 5's per-kind lowering table.
func writeMiddleware(sb *strings.Builder, mw *model.Middleware, diags *[]model.Diagnostic) {
	switch mw.Kind {
	case model.MiddlewareBasicAuth:
		sb.WriteString("            auth_basic \"Restricted\";\n")
		sb.WriteString(fmt.Sprintf("            auth_basic_user_file /etc/nginx/htpasswd/%s;\n", mw.ID))
	case model.MiddlewareRateLimit:
		rate := "10r/s"
		burst := "20"
		if v, ok := mw.Params["average"]; ok {
			rate = fmt.Sprintf("%vr/s", v)
		}
		if v, ok := mw.Params["burst"]; ok {
			burst = fmt.Sprintf("%v", v)
		}
		sb.WriteString(fmt.Sprintf("            # limit_req_zone zone=%s:10m rate=%s; (declare at http{} scope)\n", mw.ID, rate))
		sb.WriteString(fmt.Sprintf("            limit_req zone=%s burst=%s;\n", mw.ID, burst))
	case model.MiddlewareIPAllowlist:
		if ranges, ok := mw.Params["sourceRange"].([]string); ok {
			for _, r := range ranges {
				sb.WriteString(fmt.Sprintf("            allow %s;\n", r))
			}
		}
		sb.WriteString("            deny all;\n")
	case model.MiddlewareCompress:
		sb.WriteString("            gzip on;\n")
	case model.MiddlewareHeaders:
		for k, v := range mw.Params {
			sb.WriteString(fmt.Sprintf("            proxy_set_header %s %v;\n", k, v))
		}
	case model.MiddlewareRedirectScheme, model.MiddlewareRedirectRegex:
		sb.WriteString("            return 301 https://$host$request_uri;\n")
	case model.MiddlewareStripPrefix:
		sb.WriteString("            rewrite ^/p/(.*) /$1 break;\n")
	default:
		sb.WriteString(fmt.Sprintf("            # unsupported middleware kind %q (%s)\n", mw.Kind, mw.ID))
		*diags = append(*diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Code:     "UnsupportedFeature",
			Message:  fmt.Sprintf("middleware %q: kind %q has no nginx equivalent", mw.ID, mw.Kind),
		})
	}
}

func writeTLSDirectives(sb *strings.Builder, tls *model.TlsSpec) {
	sb.WriteString("        listen 443 ssl;\n")
	for _, cf := range tls.CertFiles {
		sb.WriteString(fmt.Sprintf("        ssl_certificate %s;\n", cf.Cert))
		sb.WriteString(fmt.Sprintf("        ssl_certificate_key %s;\n", cf.Key))
	}
}

// writeUpstream implements step 4: policy → directive mapping.
func writeUpstream(sb *strings.Builder, id string, s *model.Service, diags *[]model.Diagnostic) {
	sb.WriteString(fmt.Sprintf("    upstream %s {\n", id))
	switch s.Pool.Policy {
	case model.PolicyLeastConn, model.PolicyWeightedLeastConn:
		sb.WriteString("        least_conn;\n")
	case model.PolicyRandom, model.PolicyWeightedRandom:
		sb.WriteString("        random;\n")
	case model.PolicyRoundRobin, model.PolicyWeightedRR:
		// round-robin is nginx's implicit default; nothing to emit.
	default:
		*diags = append(*diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Code:     "UnsupportedFeature",
			Message:  fmt.Sprintf("service %q: policy %q has no nginx equivalent, falling back to round robin", id, s.Pool.Policy),
		})
	}
	for _, srv := range s.Pool.Servers {
		addr := srv.Address
		if addr == "" {
			addr = stripScheme(srv.URL)
		}
		if srv.Weight != nil {
			sb.WriteString(fmt.Sprintf("        server %s weight=%d;\n", addr, *srv.Weight))
		} else {
			sb.WriteString(fmt.Sprintf("        server %s;\n", addr))
		}
	}
	sb.WriteString("    }\n\n")
}

func stripScheme(url string) string {
	url = strings.TrimPrefix(url, "http://")
	url = strings.TrimPrefix(url, "https://")
	return strings.TrimSuffix(url, "/")
}

func streamRouters(cfg *model.Config) []*model.Router {
	var out []*model.Router
	for _, id := range cfg.RouterOrder {
		r := cfg.Routers[id]
		if r.Protocol == model.ProtocolTCP || r.Protocol == model.ProtocolUDP {
			out = append(out, r)
		}
	}
	return out
}

func writeStreamRouter(sb *strings.Builder, cfg *model.Config, r *model.Router) {
	sb.WriteString(fmt.Sprintf("    # %s router %q (requires nginx stream{} module)\n", r.Protocol, r.ID))
	if r.ServiceRef != "" {
		sb.WriteString(fmt.Sprintf("    server {\n        proxy_pass %s;\n    }\n", r.ServiceRef))
	}
}
