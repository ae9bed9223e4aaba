// SPDX-License-Identifier: AGPL-3.0-or-later

/*

routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package dockercompose

import (
	"fmt"
	"strings"
)

// Feature: INGEST_DOCKER_COMPOSE
// Spec: spec/ingest/docker-compose.md
//
// foldLabels folds a flat, dot-separated Traefik label map into a
// nested tree (spec.md §9 design note: "the classic dotted-key→nested-
// map problem; implement once with clear conflict semantics and
// reuse"). Only keys under the "traefik." namespace are folded; all
// others are ignored by the caller before this is invoked.

// labelTree is a node in the folded tree: either a leaf string value
// or an interior map of further labelTree nodes, never both.
type labelTree struct {
	value    string
	isLeaf   bool
	children map[string]*labelTree
}

func newInterior() *labelTree {
	return &labelTree{children: make(map[string]*labelTree)}
}

// foldLabels builds a labelTree from labels whose keys already have
// the "traefik." prefix stripped. It returns an error if the same
// path is used as both a leaf and an interior node.
func foldLabels(labels map[string]string) (*labelTree, error) {
	root := newInterior()
	for key, value := range labels {
		parts := strings.Split(key, ".")
		node := root
		for i, part := range parts {
			isLast := i == len(parts)-1
			if node.isLeaf {
				return nil, fmt.Errorf("label %q: %q is already a scalar value, cannot descend further", key, strings.Join(parts[:i], "."))
			}
			child, ok := node.children[part]
			if !ok {
				child = newInterior()
				node.children[part] = child
			}
			if isLast {
				if len(child.children) > 0 {
					return nil, fmt.Errorf("label %q: %q is already a subtree, cannot set scalar value", key, key)
				}
				child.isLeaf = true
				child.value = value
			}
			node = child
		}
	}
	return root, nil
}

// get walks the given path segments from t and returns the node found, if any.
func (t *labelTree) get(path ...string) *labelTree {
	node := t
	for _, p := range path {
		if node == nil {
			return nil
		}
		node = node.children[p]
	}
	return node
}

// leaf returns t's scalar value and true, if t is a leaf.
func (t *labelTree) leaf() (string, bool) {
	if t == nil || !t.isLeaf {
		return "", false
	}
	return t.value, true
}

// keys returns t's immediate child keys (unsorted).
func (t *labelTree) keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.children))
	for k := range t.children {
		keys = append(keys, k)
	}
	return keys
}
