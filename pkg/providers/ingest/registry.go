// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package ingest

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Feature: CORE_INGESTOR_REGISTRY
// Spec: spec/core/ingestor-registry.md

const registryName = "ingest.Registry"

var (
	// ErrUnknownFormat is returned when Get() is called with an unregistered format ID.
	ErrUnknownFormat = errors.New("unknown ingest format")
	// ErrDuplicateFormat guards against two ingestors registering the same ID.
	ErrDuplicateFormat = errors.New("duplicate ingest format")
	// ErrEmptyFormatID guards against registering an ingestor with an empty ID.
	ErrEmptyFormatID = errors.New("empty ingest format ID")
)

// Registry manages Ingestor registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	ingestors map[string]Ingestor
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{ingestors: make(map[string]Ingestor)}
}

// Register registers an Ingestor. Panics if its ID is empty or already
// registered — a programming error caught at init() time, never at
// runtime on user input.
func (r *Registry) Register(i Ingestor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := i.ID()
	if id == "" {
		panic(fmt.Sprintf("%s.Register: %v", registryName, ErrEmptyFormatID))
	}
	if _, exists := r.ingestors[id]; exists {
		panic(fmt.Sprintf("%s.Register: %v: %q", registryName, ErrDuplicateFormat, id))
	}
	r.ingestors[id] = i
}

// Get retrieves an Ingestor by format ID.
func (r *Registry) Get(id string) (Ingestor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.ingestors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, id)
	}
	return i, nil
}

// Has reports whether a format ID is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ingestors[id]
	return ok
}

// IDs returns every registered format ID in lexicographic order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.ingestors))
	for id := range r.ingestors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry is the process-wide registry that format packages
// register themselves into from init().
var DefaultRegistry = NewRegistry()

// Register registers i in the default registry.
func Register(i Ingestor) { DefaultRegistry.Register(i) }

// Get retrieves a format's Ingestor from the default registry.
func Get(id string) (Ingestor, error) { return DefaultRegistry.Get(id) }

// Has reports whether id is registered in the default registry.
func Has(id string) bool { return DefaultRegistry.Has(id) }

// IDs returns every format ID registered in the default registry.
func IDs() []string { return DefaultRegistry.IDs() }
