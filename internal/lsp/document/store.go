// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package document holds the open-buffer state the LSP handler
// analyzes on every edit.
//
// Adapted from the teemuteemu-caddy-language-server's document.Store:
// same thread-safe URI-keyed map, just holding a plain string buffer
// instead of a Caddyfile-specific Document wrapper.
package document

import "sync"

// Feature: AMBIENT_LSP
// Spec: SPEC_FULL.md §6 lsp

// Store is a thread-safe map from document URI to its current text.
type Store struct {
	mu   sync.RWMutex
	docs map[string]string
}

// New returns an initialized Store.
func New() *Store {
	return &Store{docs: make(map[string]string)}
}

// Open stores a newly opened document.
func (s *Store) Open(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = text
}

// Update replaces the content of an existing document.
func (s *Store) Update(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = text
}

// Close removes a document from the store.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

// Get retrieves a document by URI. Returns ("", false) if not found.
func (s *Store) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[uri]
	return text, ok
}
