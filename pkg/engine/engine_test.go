// SPDX-License-Identifier: AGPL-3.0-or-later

package engine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "routeforge/internal/emitters/dockercompose"
	_ "routeforge/internal/emitters/nginxconf"
	_ "routeforge/internal/emitters/traefikdynamic"
	_ "routeforge/internal/ingestors/dockercompose"
	_ "routeforge/internal/ingestors/jsonyaml"
	_ "routeforge/internal/ingestors/nginxconf"
	_ "routeforge/internal/ingestors/traefikdynamic"
	"routeforge/pkg/engine"
)

// TestConvert_S2_ComposeToModel exercises scenario S2 from spec.md §8.
func TestConvert_S2_ComposeToModel(t *testing.T) {
	compose := `
services:
  web:
    image: myapp:latest
    labels:
      traefik.enable: "true"
      traefik.http.routers.r.rule: "Host(`+"`x`"+`)"
      traefik.http.routers.r.service: "s"
      traefik.http.services.s.loadbalancer.server.port: "8080"
`
	res, err := engine.Convert([]byte(compose), engine.ConvertOptions{
		Filename:    "docker-compose.yml",
		InputFormat: "docker-compose",
		Validate:    true,
		DryRun:      true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Config)

	r := res.Config.Routers["r"]
	require.NotNil(t, r)
	assert.Equal(t, "s", r.ServiceRef)

	s := res.Config.Services["s"]
	require.NotNil(t, s)
	require.Len(t, s.Pool.Servers, 1)
	assert.Equal(t, "http://web:8080", s.Pool.Servers[0].URL)
	assert.Equal(t, "round_robin", string(s.Pool.Policy))
}

// TestConvert_S3_ComposeToNginx chains S2's Config into the nginx
// emitter, covering scenario S3.
func TestConvert_S3_ComposeToNginx(t *testing.T) {
	compose := `
services:
  web:
    image: myapp:latest
    labels:
      traefik.enable: "true"
      traefik.http.routers.r.rule: "Host(`+"`x`"+`)"
      traefik.http.routers.r.service: "s"
      traefik.http.services.s.loadbalancer.server.port: "8080"
`
	res, err := engine.Convert([]byte(compose), engine.ConvertOptions{
		Filename:     "docker-compose.yml",
		InputFormat:  "docker-compose",
		OutputFormat: "nginx-conf",
		Validate:     true,
	})
	require.NoError(t, err)

	out := string(res.Output)
	assert.Contains(t, out, "upstream s {")
	assert.Contains(t, out, "server web:8080;")
	assert.Contains(t, out, "server_name x;")
	assert.Contains(t, out, "proxy_pass http://s;")
}

// TestConvert_S6_ArityMismatchIsModelKind ensures an arity-mismatch
// rule, recorded as an error diagnostic during ingestion, surfaces as a
// KindModel ConvertError that aborts before emission.
func TestConvert_S6_ArityMismatchIsModelKind(t *testing.T) {
	dynamic := `
http:
  routers:
    r:
      rule: "Method()"
      service: s
  services:
    s:
      loadBalancer:
        servers:
          - url: http://a:1
`
	_, err := engine.Convert([]byte(dynamic), engine.ConvertOptions{
		Filename:    "dynamic.yml",
		InputFormat: "traefik-dynamic",
		DryRun:      true,
	})
	require.Error(t, err)
	var cerr *engine.ConvertError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, engine.KindModel, cerr.Kind)
	assert.True(t, strings.Contains(err.Error(), "validation"))
}

func TestConvert_UnknownOutputFormat(t *testing.T) {
	_, err := engine.Convert([]byte("http:\n  routers: {}\n"), engine.ConvertOptions{
		Filename:     "x.yml",
		InputFormat:  "traefik-dynamic",
		OutputFormat: "bogus",
	})
	require.Error(t, err)
	var cerr *engine.ConvertError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, engine.KindUnsupported, cerr.Kind)
}
