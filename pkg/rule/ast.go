// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package rule implements the Traefik rule expression language: lexer,
// recursive-descent parser, AST, and dialect-aware pretty-printer.
package rule

// Feature: CORE_RULE_AST
// Spec: spec/core/rule-ast.md

// Dialect selects which Traefik rule syntax variant a rule string is
// parsed against or printed for. The two dialects share an identical
// operator grammar; they differ only in the legal shape of literal
// arguments (see RegexArg).
type Dialect int

const (
	DialectV3 Dialect = iota
	DialectV2
)

func (d Dialect) String() string {
	if d == DialectV2 {
		return "v2"
	}
	return "v3"
}

// Quote records which delimiter a string literal used in source, so a
// round-trip print reproduces the author's original choice.
type Quote int

const (
	QuoteBacktick Quote = iota
	QuoteSingle
	QuoteDouble
)

// Arg is a single matcher argument. Most arguments are plain string
// literals; v2 HostRegexp/HostSNIRegexp arguments may instead be
// brace-templates, captured structurally as Regex so they can lower to
// and lift from the v3 bare-regex form without lossy string surgery.
type Arg struct {
	Literal string
	Quote   Quote
	Regex   *RegexArg
}

// RegexArg is the structured form of a v2 `{name:pattern}` template
// argument, retaining both representations so a lift back to v2 is
// lossless. Name is empty for an unnamed capture group.
type RegexArg struct {
	Name string

	// Pattern is the full v3 bare-regex form: regex-escaped Prefix,
	// the (possibly named) capture group, then regex-escaped Suffix.
	Pattern string

	// Prefix, Inner, Suffix are the original v2 template's literal
	// text before the brace, the raw pattern inside it, and the
	// literal text after the brace — unescaped, as written in v2
	// source. v2Literal reconstructs `prefix{name:inner}suffix` from
	// these rather than from Pattern, which has already folded the
	// literal text through regexp.QuoteMeta and cannot be unescaped
	// back to v2 syntax.
	Prefix string
	Inner  string
	Suffix string
}

// IsRegex reports whether a is a v2 brace-template rather than a plain
// string literal.
func (a Arg) IsRegex() bool {
	return a.Regex != nil
}

// StringArg builds a plain string literal argument with quote style q.
func StringArg(s string, q Quote) Arg {
	return Arg{Literal: s, Quote: q}
}

// Expr is any node of the rule AST: Matcher, And, Or, Not, or Group.
// It is a closed sum type; consumers switch on concrete type, never on
// a discriminator field.
type Expr interface {
	exprNode()
}

// Matcher is a typed predicate call, e.g. Host(`a.com`). Name is drawn
// from the matcher schema (see schema.go); Args is positional and its
// length is checked against the schema's arity at parse time.
type Matcher struct {
	Name string
	Args []Arg
	// Pos is the byte offset of the matcher name in source, used for
	// diagnostics; zero for synthesized (non-parsed) trees.
	Pos int
}

// And is a left-associative conjunction: Left && Right.
type And struct {
	Left, Right Expr
}

// Or is a left-associative disjunction: Left || Right.
type Or struct {
	Left, Right Expr
}

// Not is a unary prefix negation: !Operand.
type Not struct {
	Operand Expr
}

// Group is an explicit parenthesization preserved verbatim so a
// round-trip print keeps the author's original grouping even where it
// is semantically redundant.
type Group struct {
	Inner Expr
}

func (*Matcher) exprNode() {}
func (*And) exprNode()     {}
func (*Or) exprNode()      {}
func (*Not) exprNode()     {}
func (*Group) exprNode()   {}

// Walk calls visit on every node in the tree in pre-order. Walk does
// not recurse into a nil Expr.
func Walk(e Expr, visit func(Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch n := e.(type) {
	case *Matcher:
		// leaf
	case *And:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *Or:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *Not:
		Walk(n.Operand, visit)
	case *Group:
		Walk(n.Inner, visit)
	}
}

// Matchers collects every Matcher node in the tree, in pre-order.
func Matchers(e Expr) []*Matcher {
	var out []*Matcher
	Walk(e, func(n Expr) {
		if m, ok := n.(*Matcher); ok {
			out = append(out, m)
		}
	})
	return out
}

// HasTopLevelHostMatcher reports whether e's top-level conjunction
// chain (ignoring Or/Not boundaries) contains a Host or HostRegexp
// matcher. Used by the nginx emitter to decide whether a router is
// "host-compatible" (spec.md §4.4 step 1).
func HasTopLevelHostMatcher(e Expr) bool {
	switch n := e.(type) {
	case *Matcher:
		return n.Name == "Host" || n.Name == "HostRegexp"
	case *And:
		return HasTopLevelHostMatcher(n.Left) || HasTopLevelHostMatcher(n.Right)
	case *Group:
		return HasTopLevelHostMatcher(n.Inner)
	default:
		return false
	}
}
