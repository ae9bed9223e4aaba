// SPDX-License-Identifier: AGPL-3.0-or-later

package nginxconf_test

import (
	"testing"

	"routeforge/internal/ingestors/nginxconf"
	"routeforge/pkg/model"
	"routeforge/pkg/providers/ingest"
)

func TestIngest_ServerWithUpstream(t *testing.T) {
	data := []byte(`
http {
    upstream web {
        server 10.0.0.1:8080 weight=3;
        server 10.0.0.2:8080;
    }
    server {
        server_name example.com;
        location /api {
            proxy_pass http://web;
            auth_basic "Restricted";
        }
    }
}
`)
	i := &nginxconf.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	if len(cfg.Routers) != 1 {
		t.Fatalf("expected 1 router, got %d: %+v", len(cfg.Routers), cfg.Routers)
	}
	var r *model.Router
	for _, v := range cfg.Routers {
		r = v
	}
	if r.ServiceRef != "web" {
		t.Errorf("ServiceRef = %q, want %q", r.ServiceRef, "web")
	}
	if len(r.MiddlewareRefs) != 1 {
		t.Errorf("expected 1 middleware ref, got %+v", r.MiddlewareRefs)
	}

	svc, ok := cfg.Services["web"]
	if !ok {
		t.Fatal("expected service 'web'")
	}
	if svc.Pool.Policy != model.PolicyWeightedRR {
		t.Errorf("Policy = %q, want weighted_rr", svc.Pool.Policy)
	}
	if len(svc.Pool.Servers) != 2 {
		t.Fatalf("expected 2 servers, got %+v", svc.Pool.Servers)
	}
}

func TestIngest_ProxyPassWithoutUpstreamSynthesizesService(t *testing.T) {
	data := []byte(`
server {
    server_name a.example.com;
    location / {
        proxy_pass http://backend:3000;
    }
}
`)
	i := &nginxconf.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	svc, ok := cfg.Services["backend"]
	if !ok {
		t.Fatalf("expected a synthesized 'backend' service, got %+v", cfg.Services)
	}
	if len(svc.Pool.Servers) != 1 || svc.Pool.Servers[0].URL != "http://backend:3000" {
		t.Errorf("unexpected server: %+v", svc.Pool.Servers)
	}
}

func TestIngest_LeastConnUpstream(t *testing.T) {
	data := []byte(`
upstream api {
    least_conn;
    server 10.0.0.1:80;
}
`)
	i := &nginxconf.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if cfg.Services["api"].Pool.Policy != model.PolicyLeastConn {
		t.Errorf("Policy = %q, want least_conn", cfg.Services["api"].Pool.Policy)
	}
}

func TestIngest_UnrecognizedDirectivePreservedAsRawExtras(t *testing.T) {
	data := []byte(`
server {
    server_name a.com;
    gzip_types text/plain;
    location / {
        proxy_pass http://a:80;
    }
}
`)
	i := &nginxconf.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	var r *model.Router
	for _, v := range cfg.Routers {
		r = v
	}
	if r.RawExtras == nil || r.RawExtras["gzip_types"] == nil {
		t.Errorf("expected gzip_types preserved in RawExtras, got %+v", r.RawExtras)
	}
}

func TestIngestor_ID(t *testing.T) {
	if (&nginxconf.Ingestor{}).ID() != "nginx-conf" {
		t.Errorf("ID() = %q, want %q", (&nginxconf.Ingestor{}).ID(), "nginx-conf")
	}
}
