// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package traefikstatic generates the Traefik static configuration that
// accompanies a scaffolded `traefik-dynamic.yml` (spec.md §6 `scaffold`
// command): entry points plus a file provider pointed at the dynamic
// config this tool just emitted.
//
// Adapted from the teacher's internal/dev/traefik generator, which built
// the same static/dynamic split for its dev-environment Docker provider;
// here the provider is `file` (scaffold output is static, not
// container-discovered) and entry points come from the unified model
// instead of a hardcoded frontend/backend pair.
package traefikstatic

import (
	"bytes"
	"sort"

	"gopkg.in/yaml.v3"

	"routeforge/pkg/model"
)

// Feature: AMBIENT_SCAFFOLD
// Spec: SPEC_FULL.md §6 scaffold

// StaticConfig is Traefik's top-level static configuration document.
type StaticConfig struct {
	EntryPoints map[string]EntryPointConfig `yaml:"entryPoints"`
	Providers   ProvidersConfig             `yaml:"providers"`
}

// EntryPointConfig is a single listening address.
type EntryPointConfig struct {
	Address string `yaml:"address"`
}

// ProvidersConfig wires the file provider at the dynamic config path
// scaffold writes alongside this static config.
type ProvidersConfig struct {
	File FileProviderConfig `yaml:"file"`
}

// FileProviderConfig points Traefik at a single dynamic config file.
type FileProviderConfig struct {
	Filename string `yaml:"filename"`
	Watch    bool   `yaml:"watch"`
}

// Generate builds a StaticConfig from cfg's entrypoints, falling back to
// the conventional web(:80)/websecure(:443) pair when cfg declares none
// (the common case: entry points are rarely present in an ingested
// config, since they live in Traefik's static file, out of scope for
// C1-C8's dynamic-config model).
func Generate(cfg *model.Config, dynamicConfigFilename string) *StaticConfig {
	sc := &StaticConfig{
		EntryPoints: make(map[string]EntryPointConfig),
		Providers: ProvidersConfig{
			File: FileProviderConfig{Filename: dynamicConfigFilename, Watch: true},
		},
	}

	if len(cfg.Entrypoints) == 0 {
		sc.EntryPoints["web"] = EntryPointConfig{Address: ":80"}
		sc.EntryPoints["websecure"] = EntryPointConfig{Address: ":443"}
		return sc
	}

	for name, ep := range cfg.Entrypoints {
		sc.EntryPoints[name] = EntryPointConfig{Address: ep.Address}
	}
	return sc
}

// ToYAML serializes sc with two-space indentation. The output is
// deterministic because yaml.v3 emits map keys, entry point names
// included, in sorted order; the copy built from the sorted name list
// is an ordinary Go map and carries no order of its own.
func (sc *StaticConfig) ToYAML() ([]byte, error) {
	ordered := &StaticConfig{
		EntryPoints: make(map[string]EntryPointConfig, len(sc.EntryPoints)),
		Providers:   sc.Providers,
	}
	names := make([]string, 0, len(sc.EntryPoints))
	for name := range sc.EntryPoints {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ordered.EntryPoints[name] = sc.EntryPoints[name]
	}

	node := &yaml.Node{}
	if err := node.Encode(ordered); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
