// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package rule

import "fmt"

// Feature: CORE_RULE_PARSER
// Spec: spec/core/rule-parser.md

// ErrorCode names the kind of syntax fault a ParseError reports.
type ErrorCode string

const (
	UnknownMatcher     ErrorCode = "UnknownMatcher"
	ArityMismatchCode  ErrorCode = "ArityMismatch"
	UnexpectedToken    ErrorCode = "UnexpectedToken"
	UnterminatedString ErrorCode = "UnterminatedString"
	TrailingGarbage    ErrorCode = "TrailingGarbage"
)

// ParseError is the sole error value parse can return: the parser is
// total (spec.md §8 invariant 6) — it always yields either a tree or
// exactly one ParseError with a source offset in [0, len(input)].
type ParseError struct {
	Code    ErrorCode
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Message)
}

func newParseError(code ErrorCode, offset int, format string, args ...any) *ParseError {
	return &ParseError{Code: code, Offset: offset, Message: fmt.Sprintf(format, args...)}
}
