// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package rule

import (
	"strings"
	"unicode"
)

// Feature: CORE_RULE_PARSER
// Spec: spec/core/rule-parser.md

// tokenType enumerates lexical token kinds for the rule grammar.
type tokenType int

const (
	tokEOF tokenType = iota
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokNot
	tokAnd
	tokOr
	tokString
	tokIllegal
)

// token is one lexeme with its source position.
type token struct {
	typ   tokenType
	value string
	quote Quote
	pos   int // byte offset of the first rune of the token
}

// lexer tokenizes a rule string. It never returns an error itself;
// unterminated strings and unknown punctuation are reported as
// tokIllegal tokens, which the parser turns into diagnostics carrying
// a precise source offset.
type lexer struct {
	src     []rune
	pos     int // index into src
	byteOff []int // byteOff[i] is the byte offset of src[i]
	dialect Dialect
}

func newLexer(src string, d Dialect) *lexer {
	runes := []rune(src)
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += len(string(r))
	}
	offsets[len(runes)] = b
	return &lexer{src: runes, byteOff: offsets, dialect: d}
}

func (l *lexer) byteOffset() int {
	return l.byteOff[l.pos]
}

func (l *lexer) tokenize() []token {
	var toks []token
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		switch {
		case unicode.IsSpace(ch):
			l.pos++
		case ch == '(':
			toks = append(toks, l.emit1(tokLParen))
		case ch == ')':
			toks = append(toks, l.emit1(tokRParen))
		case ch == ',':
			toks = append(toks, l.emit1(tokComma))
		case ch == '!':
			if l.peekIs(1, '=') {
				toks = append(toks, l.illegal(2))
			} else {
				toks = append(toks, l.emit1(tokNot))
			}
		case ch == '&' && l.peekIs(1, '&'):
			toks = append(toks, l.emitN(tokAnd, 2))
		case ch == '|' && l.peekIs(1, '|'):
			toks = append(toks, l.emitN(tokOr, 2))
		case ch == '`':
			toks = append(toks, l.lexString('`', QuoteBacktick))
		case ch == '\'':
			toks = append(toks, l.lexString('\'', QuoteSingle))
		case ch == '"' && l.dialect == DialectV2:
			toks = append(toks, l.lexString('"', QuoteDouble))
		case isIdentStart(ch):
			toks = append(toks, l.lexIdent())
		default:
			toks = append(toks, l.illegal(1))
		}
	}
	toks = append(toks, token{typ: tokEOF, pos: l.byteOffset()})
	return toks
}

func (l *lexer) peekIs(offset int, want rune) bool {
	i := l.pos + offset
	return i < len(l.src) && l.src[i] == want
}

func (l *lexer) emit1(t tokenType) token {
	pos := l.byteOffset()
	v := string(l.src[l.pos])
	l.pos++
	return token{typ: t, value: v, pos: pos}
}

func (l *lexer) emitN(t tokenType, n int) token {
	pos := l.byteOffset()
	v := string(l.src[l.pos : l.pos+n])
	l.pos += n
	return token{typ: t, value: v, pos: pos}
}

func (l *lexer) illegal(n int) token {
	pos := l.byteOffset()
	end := l.pos + n
	if end > len(l.src) {
		end = len(l.src)
	}
	v := string(l.src[l.pos:end])
	l.pos = end
	return token{typ: tokIllegal, value: v, pos: pos}
}

func (l *lexer) lexIdent() token {
	start := l.pos
	pos := l.byteOffset()
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	return token{typ: tokIdent, value: string(l.src[start:l.pos]), pos: pos}
}

// lexString consumes a quoted literal. An unterminated string (no
// closing quote before EOF) is reported as tokIllegal so the parser
// can raise UnterminatedString with the opening quote's offset.
func (l *lexer) lexString(quote rune, q Quote) token {
	pos := l.byteOffset()
	l.pos++ // consume opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		ch := l.src[l.pos]
		if ch == quote {
			l.pos++
			return token{typ: tokString, value: sb.String(), quote: q, pos: pos}
		}
		sb.WriteRune(ch)
		l.pos++
	}
	return token{typ: tokIllegal, value: string(quote) + sb.String(), pos: pos}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}
