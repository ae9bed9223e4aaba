// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package rule

import (
	"regexp"
	"strings"
)

// Feature: CORE_RULE_DIALECT
// Spec: spec/core/rule-dialect.md
//
// v2 HostRegexp/HostSNIRegexp arguments may embed a `{name:pattern}`
// template alongside literal text, e.g. `{sub:[a-z]+}.x`. v3 drops the
// template form in favor of a bare regex with a Go-style named capture
// group: `(?P<sub>[a-z]+)\.x`. parseV2Template recognizes the former
// and buildV3FromTemplate builds the latter; v2Literal rebuilds the
// original v2 text from the stored pieces, so printing a parsed v2
// argument back to v2 is lossless for the single-template case
// (spec.md §8 invariant 2).

// parseV2Template extracts the first `{name:pattern}` template found in
// raw, if any, along with the literal text surrounding it.
func parseV2Template(raw string) (*RegexArg, bool) {
	start := strings.IndexByte(raw, '{')
	if start == -1 {
		return nil, false
	}
	end := strings.IndexByte(raw[start:], '}')
	if end == -1 {
		return nil, false
	}
	end += start
	inner := raw[start+1 : end]
	colon := strings.IndexByte(inner, ':')
	if colon == -1 {
		return nil, false
	}
	name := inner[:colon]
	pattern := inner[colon+1:]
	prefix := raw[:start]
	suffix := raw[end+1:]
	return &RegexArg{
		Name:    name,
		Pattern: buildV3FromTemplate(prefix, name, pattern, suffix),
		Prefix:  prefix,
		Inner:   pattern,
		Suffix:  suffix,
	}, true
}

// buildV3FromTemplate assembles the v3 bare-regex equivalent of a v2
// `prefix{name:pattern}suffix` argument: literal prefix/suffix are
// regex-escaped, the template becomes a named capture group.
func buildV3FromTemplate(prefix, name, pattern, suffix string) string {
	var sb strings.Builder
	sb.WriteString(regexp.QuoteMeta(prefix))
	if name != "" {
		sb.WriteString("(?P<")
		sb.WriteString(name)
		sb.WriteString(">")
		sb.WriteString(pattern)
		sb.WriteString(")")
	} else {
		sb.WriteString("(")
		sb.WriteString(pattern)
		sb.WriteString(")")
	}
	sb.WriteString(regexp.QuoteMeta(suffix))
	return sb.String()
}

// v3Literal returns the string routeforge would print for this
// argument in v3: the structured Pattern if it is a regex arg
// (already in bare-regex form), otherwise the plain literal.
func (a Arg) v3Literal() string {
	if a.Regex != nil {
		return a.Regex.Pattern
	}
	return a.Literal
}

// v2Literal returns the string routeforge would print for this
// argument in v2: reconstructing `prefix{name:inner}suffix` from the
// original template pieces, losslessly regardless of what surrounding
// literal text or inner pattern the template carried.
func (a Arg) v2Literal() string {
	if a.Regex == nil {
		return a.Literal
	}
	return a.Regex.Prefix + "{" + a.Regex.Name + ":" + a.Regex.Inner + "}" + a.Regex.Suffix
}
