// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigPath(t *testing.T) {
	if got := DefaultConfigPath(); got != "routeforge.yml" {
		t.Errorf("DefaultConfigPath() = %q, want %q", got, "routeforge.yml")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routeforge.yml")

	ok, err := Exists(path)
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if ok {
		t.Error("expected Exists() to be false for missing file")
	}

	if err := os.WriteFile(path, []byte("project:\n  name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ok, err = Exists(path)
	if err != nil {
		t.Fatalf("Exists() error: %v", err)
	}
	if !ok {
		t.Error("expected Exists() to be true once the file is written")
	}
}

func TestLoad_NotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "routeforge.yml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_ScaffoldDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routeforge.yml")
	content := `
project:
  name: example
scaffold:
  output_dir: ./out
  proxy_type: nginx
  include_compose: true
  include_docs: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Project.Name != "example" {
		t.Errorf("Project.Name = %q, want %q", cfg.Project.Name, "example")
	}
	if cfg.Scaffold == nil {
		t.Fatal("expected Scaffold to be populated")
	}
	if cfg.Scaffold.OutputDir != "./out" {
		t.Errorf("Scaffold.OutputDir = %q, want %q", cfg.Scaffold.OutputDir, "./out")
	}
	if cfg.Scaffold.ProxyType != "nginx" {
		t.Errorf("Scaffold.ProxyType = %q, want %q", cfg.Scaffold.ProxyType, "nginx")
	}
	if !cfg.Scaffold.IncludeCompose || !cfg.Scaffold.IncludeDocs {
		t.Error("expected IncludeCompose and IncludeDocs to be true")
	}
	if cfg.Scaffold.IncludeConfig {
		t.Error("expected IncludeConfig to default to false")
	}
}

func TestLoad_InvalidProxyType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routeforge.yml")
	content := "scaffold:\n  proxy_type: haproxy\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected Load() to reject an unknown proxy_type")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routeforge.yml")
	if err := os.WriteFile(path, []byte("not: [valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected Load() to fail on malformed YAML")
	}
}
