// SPDX-License-Identifier: AGPL-3.0-or-later

package dockercompose_test

import (
	"testing"

	"routeforge/internal/ingestors/dockercompose"
	"routeforge/pkg/model"
	"routeforge/pkg/providers/ingest"
)

func TestIngest_LabelsMapForm(t *testing.T) {
	data := []byte(`
services:
  web:
    ports:
      - "8080:3000"
    labels:
      traefik.enable: "true"
      traefik.http.routers.r1.rule: "Host(` + "`a.com`" + `)"
      traefik.http.routers.r1.service: web
      traefik.http.services.web.loadbalancer.server.port: "3000"
`)
	i := &dockercompose.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	r, ok := cfg.Routers["r1"]
	if !ok {
		t.Fatal("expected router r1")
	}
	if r.ServiceRef != "web" {
		t.Errorf("ServiceRef = %q, want %q", r.ServiceRef, "web")
	}

	svc, ok := cfg.Services["web"]
	if !ok || len(svc.Pool.Servers) != 1 {
		t.Fatalf("unexpected service: %+v", svc)
	}
	if svc.Pool.Servers[0].URL != "http://web:3000" {
		t.Errorf("server URL = %q, want %q", svc.Pool.Servers[0].URL, "http://web:3000")
	}
}

func TestIngest_LabelsListForm(t *testing.T) {
	data := []byte(`
services:
  api:
    expose: ["9000"]
    labels:
      - "traefik.enable=true"
      - "traefik.http.routers.r2.rule=PathPrefix(` + "`/api`" + `)"
`)
	i := &dockercompose.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if _, ok := cfg.Routers["r2"]; !ok {
		t.Fatalf("expected router r2, got %+v", cfg.Routers)
	}
}

func TestIngest_DisabledServiceIsSkipped(t *testing.T) {
	data := []byte(`
services:
  web:
    labels:
      traefik.enable: "false"
      traefik.http.routers.r1.rule: "Host(` + "`a.com`" + `)"
`)
	i := &dockercompose.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if len(cfg.Routers) != 0 {
		t.Errorf("expected no routers for a disabled service, got %+v", cfg.Routers)
	}
}

func TestIngest_UnknownMiddlewareKindIsUnsupportedFeature(t *testing.T) {
	data := []byte(`
services:
  web:
    labels:
      traefik.enable: "true"
      traefik.http.middlewares.mw1.someMadeUpKind.foo: bar
`)
	i := &dockercompose.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	found := false
	for _, d := range cfg.Diagnostics {
		if d.Code == "UnsupportedFeature" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an UnsupportedFeature diagnostic, got %+v", cfg.Diagnostics)
	}
	if cfg.Middlewares["mw1"].Kind != model.MiddlewareKind("someMadeUpKind") {
		t.Errorf("unexpected middleware kind: %+v", cfg.Middlewares["mw1"])
	}
}

func TestIngest_MissingPortWarns(t *testing.T) {
	data := []byte(`
services:
  web:
    labels:
      traefik.enable: "true"
      traefik.http.services.web.loadbalancer.server.scheme: "http"
`)
	i := &dockercompose.Ingestor{}
	cfg, _, err := i.Ingest(data, ingest.Options{Dialect: "v3"})
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	found := false
	for _, d := range cfg.Diagnostics {
		if d.Code == "MissingPort" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MissingPort diagnostic, got %+v", cfg.Diagnostics)
	}
}

func TestIngestor_ID(t *testing.T) {
	if (&dockercompose.Ingestor{}).ID() != "docker-compose" {
		t.Errorf("ID() = %q, want %q", (&dockercompose.Ingestor{}).ID(), "docker-compose")
	}
}
