// SPDX-License-Identifier: AGPL-3.0-or-later

package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"routeforge/internal/cli"

	_ "routeforge/internal/ingestors/traefikdynamic"
)

func TestScaffoldCommand_WritesTraefikDirectory(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dynamic.yml")
	outputDir := filepath.Join(dir, "proxy")

	if err := os.WriteFile(input, []byte(`
http:
  routers:
    r1:
      rule: "Host(`+"`a.com`"+`)"
      service: s1
  services:
    s1:
      loadBalancer:
        servers:
          - url: "http://backend:8080"
`), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cmd := cli.NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"scaffold", input, "--output-dir", outputDir})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v, stderr: %s", err, stderr.String())
	}

	for _, name := range []string{"traefik-dynamic.yml", "traefik.yml"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
}

func TestScaffoldCommand_InvalidProxyTypeErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dynamic.yml")
	if err := os.WriteFile(input, []byte("http:\n  routers: {}\n"), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cmd := cli.NewRootCommand()
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"scaffold", input, "--output-dir", filepath.Join(dir, "proxy"), "--proxy-type", "haproxy"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unsupported proxy type")
	}
}
