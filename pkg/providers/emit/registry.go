// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package emit

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Feature: CORE_EMITTER_REGISTRY
// Spec: spec/core/emitter-registry.md

const registryName = "emit.Registry"

var (
	// ErrUnknownFormat is returned when Get() is called with an unregistered format ID.
	ErrUnknownFormat = errors.New("unknown emit format")
	// ErrDuplicateFormat guards against two emitters registering the same ID.
	ErrDuplicateFormat = errors.New("duplicate emit format")
	// ErrEmptyFormatID guards against registering an emitter with an empty ID.
	ErrEmptyFormatID = errors.New("empty emit format ID")
)

// Registry manages Emitter registration and lookup.
type Registry struct {
	mu      sync.RWMutex
	emitters map[string]Emitter
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{emitters: make(map[string]Emitter)}
}

// Register registers an Emitter. Panics if its ID is empty or already
// registered.
func (r *Registry) Register(e Emitter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := e.ID()
	if id == "" {
		panic(fmt.Sprintf("%s.Register: %v", registryName, ErrEmptyFormatID))
	}
	if _, exists := r.emitters[id]; exists {
		panic(fmt.Sprintf("%s.Register: %v: %q", registryName, ErrDuplicateFormat, id))
	}
	r.emitters[id] = e
}

// Get retrieves an Emitter by format ID.
func (r *Registry) Get(id string) (Emitter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.emitters[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, id)
	}
	return e, nil
}

// Has reports whether a format ID is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.emitters[id]
	return ok
}

// IDs returns every registered format ID in lexicographic order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.emitters))
	for id := range r.emitters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultRegistry is the process-wide registry that format packages
// register themselves into from init().
var DefaultRegistry = NewRegistry()

// Register registers e in the default registry.
func Register(e Emitter) { DefaultRegistry.Register(e) }

// Get retrieves a format's Emitter from the default registry.
func Get(id string) (Emitter, error) { return DefaultRegistry.Get(id) }

// Has reports whether id is registered in the default registry.
func Has(id string) bool { return DefaultRegistry.Has(id) }

// IDs returns every format ID registered in the default registry.
func IDs() []string { return DefaultRegistry.IDs() }
