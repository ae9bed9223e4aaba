// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package rule

// Feature: CORE_RULE_PARSER
// Spec: spec/core/rule-parser.md

// Grammar (spec.md §6, wire-exact):
//
//	expr     := or_expr
//	or_expr  := and_expr ('||' and_expr)*
//	and_expr := not_expr ('&&' not_expr)*
//	not_expr := '!' not_expr | primary
//	primary  := '(' expr ')' | matcher
//	matcher  := IDENT '(' arglist? ')'
//	arglist  := STRING (',' STRING)*
//
// Precedence on parse mirrors precedence on print: || binds loosest,
// then &&, then unary !, then primary.

// Parse tokenizes and parses a single rule string under the given
// dialect. It is total: it returns either a tree or a *ParseError, and
// it never panics on malformed input.
func Parse(src string, d Dialect) (Expr, *ParseError) {
	toks := newLexer(src, d).tokenize()
	p := &parser{toks: toks, dialect: d}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().typ != tokEOF {
		return nil, newParseError(TrailingGarbage, p.cur().pos, "unexpected %q after complete expression", p.cur().value)
	}
	return expr, nil
}

type parser struct {
	toks    []token
	i       int
	dialect Dialect
}

func (p *parser) cur() token {
	return p.toks[p.i]
}

func (p *parser) advance() token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return t
}

func (p *parser) parseExpr() (Expr, *ParseError) {
	return p.parseOr()
}

func (p *parser) parseOr() (Expr, *ParseError) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, *ParseError) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, *ParseError) {
	if p.cur().typ == tokNot {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, *ParseError) {
	t := p.cur()
	switch t.typ {
	case tokLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur().typ != tokRParen {
			return nil, newParseError(UnexpectedToken, p.cur().pos, "expected ')', got %q", tokenDesc(p.cur()))
		}
		p.advance()
		return &Group{Inner: inner}, nil
	case tokIdent:
		return p.parseMatcher()
	case tokIllegal:
		return nil, p.illegalTokenError(t)
	default:
		return nil, newParseError(UnexpectedToken, t.pos, "expected matcher or '(', got %q", tokenDesc(t))
	}
}

func (p *parser) parseMatcher() (Expr, *ParseError) {
	name := p.advance()
	if !KnownMatcher(name.value) {
		return nil, newParseError(UnknownMatcher, name.pos, "unknown matcher %q", name.value)
	}
	if p.cur().typ != tokLParen {
		return nil, newParseError(UnexpectedToken, p.cur().pos, "expected '(' after matcher %q, got %q", name.value, tokenDesc(p.cur()))
	}
	p.advance()

	var args []Arg
	if p.cur().typ != tokRParen {
		for {
			a, err := p.parseArg(name.value)
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.cur().typ == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur().typ != tokRParen {
		return nil, newParseError(UnexpectedToken, p.cur().pos, "expected ')' to close %q, got %q", name.value, tokenDesc(p.cur()))
	}
	p.advance()

	if !CheckArity(name.value, len(args)) {
		return nil, newParseError(ArityMismatchCode, name.pos, "%q takes %s, got %d", name.value, arityDesc(name.value), len(args))
	}

	return &Matcher{Name: name.value, Args: args, Pos: name.pos}, nil
}

func (p *parser) parseArg(matcherName string) (Arg, *ParseError) {
	t := p.cur()
	if t.typ == tokIllegal {
		return Arg{}, p.illegalTokenError(t)
	}
	if t.typ != tokString {
		return Arg{}, newParseError(UnexpectedToken, t.pos, "expected string literal, got %q", tokenDesc(t))
	}
	p.advance()

	arg := Arg{Literal: t.value, Quote: t.quote}
	if p.dialect == DialectV2 && isRegexMatcher(matcherName) {
		if re, ok := parseV2Template(t.value); ok {
			arg.Regex = re
		}
	}
	return arg, nil
}

func (p *parser) illegalTokenError(t token) *ParseError {
	if t.value == "" || t.value[0] == '`' || t.value[0] == '\'' || t.value[0] == '"' {
		return newParseError(UnterminatedString, t.pos, "unterminated string literal")
	}
	return newParseError(UnexpectedToken, t.pos, "unexpected character %q", t.value)
}

func isRegexMatcher(name string) bool {
	return name == "HostRegexp" || name == "HostSNIRegexp"
}

func arityDesc(name string) string {
	s := schema[name]
	if s.Arity.Max == -1 {
		if s.Arity.Min <= 1 {
			return "1 or more arguments"
		}
		return "at least 2 arguments"
	}
	if s.Arity.Min == s.Arity.Max {
		if s.Arity.Min == 1 {
			return "exactly 1 argument"
		}
		return "exactly 2 arguments"
	}
	return "1 or 2 arguments"
}

func tokenDesc(t token) string {
	if t.typ == tokEOF {
		return "end of input"
	}
	return t.value
}
