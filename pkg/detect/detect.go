// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package detect implements C7, the format detector: a pure function
// of a filename and a byte prefix, never requiring the whole input to
// be read twice (spec.md §9 design note).
package detect

import (
	"errors"
	"path/filepath"
	"strings"
)

// Feature: CORE_FORMAT_DETECTOR
// Spec: spec/core/format-detector.md

// Format is one of the input format IDs routeforge's ingestors handle.
type Format string

const (
	FormatDockerCompose   Format = "docker-compose"
	FormatTraefikDynamic  Format = "traefik-dynamic"
	FormatNginxConf       Format = "nginx-conf"
	FormatJSON            Format = "json"
	FormatYAML            Format = "yaml"
	FormatUnknown         Format = ""
)

// ErrAmbiguousFormat is returned when the heuristics cannot settle on a
// single format without an explicit hint from the caller.
var ErrAmbiguousFormat = errors.New("AmbiguousFormat: could not determine input format; pass --input-format")

// sniffLimit bounds how much of the input Detect inspects.
const sniffLimit = 4096

// Detect sniffs data's format from its filename and a leading byte
// prefix. data may be the full input or just its first few kilobytes —
// Detect never looks past sniffLimit bytes.
func Detect(filename string, data []byte) (Format, error) {
	if len(data) > sniffLimit {
		data = data[:sniffLimit]
	}
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".conf":
		return FormatNginxConf, nil
	case ".json":
		return detectJSON(data)
	case ".yml", ".yaml":
		return detectYAML(data)
	}

	return FormatUnknown, ErrAmbiguousFormat
}

func detectYAML(data []byte) (Format, error) {
	hasServices := containsTopLevelKey(data, "services:")
	hasLabels := containsTopLevelKey(data, "labels:") || strings.Contains(string(data), "labels:")
	hasTraefikSection := containsTopLevelKey(data, "http:") ||
		containsTopLevelKey(data, "tcp:") ||
		containsTopLevelKey(data, "udp:")

	switch {
	case hasServices && hasLabels && !hasTraefikSection:
		return FormatDockerCompose, nil
	case hasTraefikSection && !hasServices:
		return FormatTraefikDynamic, nil
	case hasServices && !hasTraefikSection:
		// compose files commonly omit Traefik labels entirely.
		return FormatDockerCompose, nil
	default:
		return FormatUnknown, ErrAmbiguousFormat
	}
}

func detectJSON(data []byte) (Format, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return FormatUnknown, ErrAmbiguousFormat
	}
	if strings.Contains(trimmed, `"http"`) || strings.Contains(trimmed, `"tcp"`) || strings.Contains(trimmed, `"udp"`) {
		return FormatTraefikDynamic, nil
	}
	return FormatJSON, nil
}

// containsTopLevelKey reports whether data contains a line beginning
// (after optional leading whitespace up to depth 0) with key, which is
// a cheap but effective top-level-key probe for the small configs this
// tool targets.
func containsTopLevelKey(data []byte, key string) bool {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}
