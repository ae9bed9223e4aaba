// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config defines the routeforge.yml project configuration
// schema (A2): optional defaults for the `scaffold` command, read from
// the working directory when present. CLI flags always win over it.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Feature: AMBIENT_PROJECT_CONFIG
// Spec: SPEC_FULL.md A2

// ErrConfigNotFound is returned when the config file does not exist at the given path.
var ErrConfigNotFound = errors.New("routeforge config not found")

// Config is the top-level routeforge.yml schema.
type Config struct {
	Project  ProjectConfig   `yaml:"project,omitempty"`
	Scaffold *ScaffoldConfig `yaml:"scaffold,omitempty"`
}

// ProjectConfig describes project-level metadata. Not required; present
// mainly so routeforge.yml reads naturally alongside a name, the way
// the teacher's stagecraft.yml did.
type ProjectConfig struct {
	Name string `yaml:"name,omitempty"`
}

// ScaffoldConfig supplies default flag values for the `scaffold`
// command (spec.md §6 / SPEC_FULL.md §6). Every field maps 1:1 to a
// `scaffold` flag; a CLI flag explicitly set always overrides it.
type ScaffoldConfig struct {
	OutputDir       string `yaml:"output_dir,omitempty"`
	ProxyType       string `yaml:"proxy_type,omitempty"` // "traefik" or "nginx"
	IncludeCompose  bool   `yaml:"include_compose,omitempty"`
	IncludeConfig   bool   `yaml:"include_config,omitempty"`
	IncludeDocs     bool   `yaml:"include_docs,omitempty"`
}

// DefaultConfigPath returns the default config path for the current working directory.
func DefaultConfigPath() string {
	return "routeforge.yml"
}

// Exists reports whether a config file exists at the given path.
// It returns (false, nil) if the file does not exist.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// Load reads and validates the config from the given path.
//
// It returns ErrConfigNotFound if the file does not exist. Callers that
// treat routeforge.yml as optional (every current caller does) should
// fall back to built-in defaults on ErrConfigNotFound rather than fail.
func Load(path string) (*Config, error) {
	exists, err := Exists(path)
	if err != nil {
		return nil, fmt.Errorf("checking config existence: %w", err)
	}

	if !exists {
		return nil, ErrConfigNotFound
	}

	// nolint:gosec // G304: reading config file from user-specified path is expected behavior
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Scaffold == nil {
		return nil
	}
	switch cfg.Scaffold.ProxyType {
	case "", "traefik", "nginx":
	default:
		return fmt.Errorf("config: scaffold.proxy_type must be \"traefik\" or \"nginx\", got %q", cfg.Scaffold.ProxyType)
	}
	return nil
}
