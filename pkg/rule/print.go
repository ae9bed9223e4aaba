// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package rule

import "strings"

// Feature: CORE_RULE_AST
// Spec: spec/core/rule-ast.md

// precedence levels, lowest binds loosest. Matches the parser's
// or/and/not/primary climb (spec.md §4.1).
const (
	precOr = iota
	precAnd
	precNot
	precPrimary
)

// Print renders e as a rule string in the given dialect. Explicit
// Group nodes from a parsed tree are always preserved verbatim
// (spec.md §4.1); for synthesized subtrees lacking a Group, Print
// inserts parentheses only where precedence would otherwise change
// the parse.
func Print(e Expr, d Dialect) string {
	var sb strings.Builder
	printExpr(&sb, e, d, precOr)
	return sb.String()
}

func printExpr(sb *strings.Builder, e Expr, d Dialect, ctxPrec int) {
	switch n := e.(type) {
	case *Matcher:
		printMatcher(sb, n, d)
	case *Group:
		sb.WriteByte('(')
		printExpr(sb, n.Inner, d, precOr)
		sb.WriteByte(')')
	case *Not:
		needParen := ctxPrec > precNot
		if needParen {
			sb.WriteByte('(')
		}
		sb.WriteByte('!')
		printExpr(sb, n.Operand, d, precNot)
		if needParen {
			sb.WriteByte(')')
		}
	case *And:
		needParen := ctxPrec > precAnd
		if needParen {
			sb.WriteByte('(')
		}
		printExpr(sb, n.Left, d, precAnd)
		sb.WriteString(" && ")
		printExpr(sb, n.Right, d, precAnd+1)
		if needParen {
			sb.WriteByte(')')
		}
	case *Or:
		needParen := ctxPrec > precOr
		if needParen {
			sb.WriteByte('(')
		}
		printExpr(sb, n.Left, d, precOr)
		sb.WriteString(" || ")
		printExpr(sb, n.Right, d, precOr+1)
		if needParen {
			sb.WriteByte(')')
		}
	}
}

func printMatcher(sb *strings.Builder, m *Matcher, d Dialect) {
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, a := range m.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		printArg(sb, a, d)
	}
	sb.WriteByte(')')
}

func printArg(sb *strings.Builder, a Arg, d Dialect) {
	q := quoteRune(a.Quote, d)
	sb.WriteRune(q)
	if d == DialectV2 {
		sb.WriteString(a.v2Literal())
	} else {
		sb.WriteString(a.v3Literal())
	}
	sb.WriteRune(q)
}

func quoteRune(q Quote, d Dialect) rune {
	switch q {
	case QuoteSingle:
		return '\''
	case QuoteDouble:
		if d == DialectV2 {
			return '"'
		}
		return '`'
	default:
		return '`'
	}
}
