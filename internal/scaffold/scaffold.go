// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package scaffold implements the `scaffold` command (spec.md §6
// (NEW)): given an ingested routing config, write out a ready-to-run
// directory containing the converted proxy config plus, optionally, a
// Docker Compose manifest, a routeforge.yml, and a short README.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"routeforge/internal/scaffold/composegen"
	"routeforge/internal/scaffold/traefikstatic"
	"routeforge/pkg/model"
	"routeforge/pkg/providers/emit"
	"routeforge/pkg/rule"
)

// Feature: AMBIENT_SCAFFOLD
// Spec: SPEC_FULL.md §6 scaffold

// Options configures a scaffold run. ProxyType selects the converted
// config's format; the rest mirror the `scaffold` flags.
type Options struct {
	OutputDir      string
	ProxyType      string // "traefik" or "nginx"
	IncludeCompose bool
	IncludeConfig  bool
	IncludeDocs    bool
}

// Run writes the scaffolded files for cfg into opts.OutputDir and
// returns the list of paths written, relative to OutputDir.
func Run(cfg *model.Config, opts Options) ([]string, error) {
	switch opts.ProxyType {
	case "traefik", "nginx":
	default:
		return nil, fmt.Errorf("scaffold: proxy-type must be \"traefik\" or \"nginx\", got %q", opts.ProxyType)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	var written []string

	switch opts.ProxyType {
	case "traefik":
		dynPath, err := writeTraefikDynamic(cfg, opts.OutputDir)
		if err != nil {
			return nil, err
		}
		written = append(written, dynPath)

		staticPath, err := writeTraefikStatic(cfg, opts.OutputDir, dynPath)
		if err != nil {
			return nil, err
		}
		written = append(written, staticPath)

		if opts.IncludeCompose {
			composePath, err := writeCompose(cfg, opts.OutputDir, composegen.Options{
				ProxyType:         "traefik",
				StaticConfigPath:  "./" + staticPath,
				DynamicConfigPath: "./" + dynPath,
			})
			if err != nil {
				return nil, err
			}
			written = append(written, composePath)
		}

	case "nginx":
		confPath, err := writeNginxConf(cfg, opts.OutputDir)
		if err != nil {
			return nil, err
		}
		written = append(written, confPath)

		if opts.IncludeCompose {
			composePath, err := writeCompose(cfg, opts.OutputDir, composegen.Options{
				ProxyType:         "nginx",
				DynamicConfigPath: "./" + confPath,
			})
			if err != nil {
				return nil, err
			}
			written = append(written, composePath)
		}
	}

	if opts.IncludeConfig {
		path, err := writeProjectConfig(opts.OutputDir, opts)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	if opts.IncludeDocs {
		path, err := writeDocs(cfg, opts.OutputDir)
		if err != nil {
			return nil, err
		}
		written = append(written, path)
	}

	return written, nil
}

func writeTraefikDynamic(cfg *model.Config, outDir string) (string, error) {
	emitter, err := emit.Get("traefik-dynamic")
	if err != nil {
		return "", err
	}
	out, _, err := emitter.Emit(cfg, emit.Options{Dialect: rule.DialectV3})
	if err != nil {
		return "", fmt.Errorf("emitting traefik dynamic config: %w", err)
	}
	return writeFile(outDir, "traefik-dynamic.yml", out)
}

func writeTraefikStatic(cfg *model.Config, outDir, dynamicRelPath string) (string, error) {
	static := traefikstatic.Generate(cfg, "/etc/traefik/"+filepath.Base(dynamicRelPath))
	out, err := static.ToYAML()
	if err != nil {
		return "", fmt.Errorf("emitting traefik static config: %w", err)
	}
	return writeFile(outDir, "traefik.yml", out)
}

func writeNginxConf(cfg *model.Config, outDir string) (string, error) {
	emitter, err := emit.Get("nginx-conf")
	if err != nil {
		return "", err
	}
	out, _, err := emitter.Emit(cfg, emit.Options{Dialect: rule.DialectV3})
	if err != nil {
		return "", fmt.Errorf("emitting nginx config: %w", err)
	}
	return writeFile(outDir, "nginx.conf", out)
}

func writeCompose(cfg *model.Config, outDir string, genOpts composegen.Options) (string, error) {
	out, err := composegen.Generate(cfg, genOpts)
	if err != nil {
		return "", fmt.Errorf("generating docker-compose.yml: %w", err)
	}
	return writeFile(outDir, "docker-compose.yml", out)
}

func writeProjectConfig(outDir string, opts Options) (string, error) {
	var sb strings.Builder
	sb.WriteString("scaffold:\n")
	fmt.Fprintf(&sb, "  proxy_type: %s\n", opts.ProxyType)
	fmt.Fprintf(&sb, "  include_compose: %v\n", opts.IncludeCompose)
	fmt.Fprintf(&sb, "  include_config: %v\n", opts.IncludeConfig)
	fmt.Fprintf(&sb, "  include_docs: %v\n", opts.IncludeDocs)
	return writeFile(outDir, "routeforge.yml", []byte(sb.String()))
}

func writeDocs(cfg *model.Config, outDir string) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Scaffolded routing\n\n")
	fmt.Fprintf(&sb, "%d router(s), %d service(s), %d middleware(s).\n\n", len(cfg.RouterOrder), len(cfg.ServiceOrder), len(cfg.MiddlewareOrder))

	if len(cfg.RouterOrder) > 0 {
		sb.WriteString("## Routers\n\n")
		for _, id := range cfg.RouterOrder {
			r := cfg.Routers[id]
			ruleText := ""
			if r.Rule != nil {
				ruleText = rule.Print(r.Rule, rule.DialectV3)
			}
			fmt.Fprintf(&sb, "- `%s` (%s): `%s` -> service `%s`\n", id, r.Protocol, ruleText, r.ServiceRef)
		}
		sb.WriteString("\n")
	}

	if len(cfg.Diagnostics) > 0 {
		sb.WriteString("## Diagnostics\n\n")
		for _, d := range cfg.Diagnostics {
			fmt.Fprintf(&sb, "- [%s] %s: %s\n", d.Severity, d.Code, d.Message)
		}
		sb.WriteString("\n")
	}

	return writeFile(outDir, "README.md", []byte(sb.String()))
}

func writeFile(outDir, name string, data []byte) (string, error) {
	path := filepath.Join(outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return name, nil
}
