// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package nginxconf ingests the nginx configuration subset
// named in spec.md §4.3: http{}, server{}, location{}, upstream{}
// blocks and a fixed directive list.
package nginxconf

import (
	"fmt"
	"strings"
	"unicode"
)

// Feature: INGEST_NGINX_CONF
// Spec: spec/ingest/nginx-conf.md
//
// block is a generic nginx config block: either a bare directive
// (Args, no Children) or a named block (e.g. "server", "location /api")
// with nested directives/blocks as Children.
type block struct {
	Name     string
	Args     []string
	Children []*block
}

// parseBlocks tokenizes and parses src into a flat list of top-level
// blocks/directives. It is deliberately forgiving: directives outside
// the recognized set still parse, letting the caller decide whether to
// keep them as raw_extras rather than failing the whole file.
func parseBlocks(src string) ([]*block, error) {
	toks := tokenizeNginx(src)
	p := &ngParser{toks: toks}
	blocks, err := p.parseBlockList(false)
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

type ngToken struct {
	kind  byte // 'w' word, '{' , '}', ';'
	value string
}

func tokenizeNginx(src string) []ngToken {
	var toks []ngToken
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		switch {
		case unicode.IsSpace(ch):
			i++
		case ch == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
		case ch == '{' || ch == '}' || ch == ';':
			toks = append(toks, ngToken{kind: byte(ch)})
			i++
		case ch == '"' || ch == '\'':
			quote := ch
			start := i
			i++
			for i < len(runes) && runes[i] != quote {
				i++
			}
			if i < len(runes) {
				i++
			}
			toks = append(toks, ngToken{kind: 'w', value: string(runes[start+1 : min(i-1, len(runes))])})
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '{' && runes[i] != '}' && runes[i] != ';' {
				i++
			}
			toks = append(toks, ngToken{kind: 'w', value: string(runes[start:i])})
		}
	}
	return toks
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type ngParser struct {
	toks []ngToken
	i    int
}

func (p *ngParser) cur() (ngToken, bool) {
	if p.i >= len(p.toks) {
		return ngToken{}, false
	}
	return p.toks[p.i], true
}

// parseBlockList parses directives/blocks until '}' (if inBlock) or EOF.
func (p *ngParser) parseBlockList(inBlock bool) ([]*block, error) {
	var out []*block
	for {
		t, ok := p.cur()
		if !ok {
			if inBlock {
				return nil, fmt.Errorf("unexpected end of input inside block")
			}
			return out, nil
		}
		if t.kind == '}' {
			if !inBlock {
				return nil, fmt.Errorf("unexpected '}'")
			}
			p.i++
			return out, nil
		}
		b, err := p.parseOne()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
}

func (p *ngParser) parseOne() (*block, error) {
	var words []string
	for {
		t, ok := p.cur()
		if !ok {
			return nil, fmt.Errorf("unexpected end of input")
		}
		if t.kind == ';' {
			p.i++
			if len(words) == 0 {
				return nil, fmt.Errorf("empty directive")
			}
			return &block{Name: words[0], Args: words[1:]}, nil
		}
		if t.kind == '{' {
			p.i++
			if len(words) == 0 {
				return nil, fmt.Errorf("empty block name")
			}
			children, err := p.parseBlockList(true)
			if err != nil {
				return nil, err
			}
			return &block{Name: words[0], Args: words[1:], Children: children}, nil
		}
		if t.kind != 'w' {
			return nil, fmt.Errorf("unexpected token %q", t.value)
		}
		words = append(words, t.value)
		p.i++
	}
}

// find returns the first child block/directive named name.
func (b *block) find(name string) *block {
	for _, c := range b.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// findAll returns every child block/directive named name.
func (b *block) findAll(name string) []*block {
	var out []*block
	for _, c := range b.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// argString joins a directive's args with a single space.
func (b *block) argString() string {
	return strings.Join(b.Args, " ")
}
