// Released under an MIT license. See LICENSE.

package priv

import (
	"sort"
)

// Namespace maps names to values. It is the unit of hidden storage: one per
// scope level, one per owner. Reads fall back along the prev chain; writes
// and deletes are always local, so a write through a per-owner view never
// leaks into the scope-level store it shadows.
type Namespace struct {
	scope *Scope
	prev  *Namespace
	m     map[string]any
}

func newNamespace(s *Scope, prev *Namespace) *Namespace {
	return &Namespace{scope: s, prev: prev, m: map[string]any{}}
}

// Get retrieves the value for the name k. Reading a never-written name is a
// LookupError, not a zero value.
func (n *Namespace) Get(k string) (any, error) {
	if v, ok := n.lookup(k); ok {
		return v, nil
	}

	return nil, &LookupError{Name: k}
}

// Set associates the name k with the value v. Writing always succeeds and
// creates the slot.
func (n *Namespace) Set(k string, v any) {
	n.m[k] = v
}

// Delete removes the local entry for the name k. Entries visible only
// through the fallback chain are out of reach.
func (n *Namespace) Delete(k string) error {
	if _, ok := n.m[k]; !ok {
		return &LookupError{Name: k}
	}

	delete(n.m, k)

	return nil
}

// Has returns true if the name k is visible from the namespace n.
func (n *Namespace) Has(k string) bool {
	_, ok := n.lookup(k)

	return ok
}

// Keys returns every visible name, sorted.
func (n *Namespace) Keys() []string {
	seen := map[string]struct{}{}
	for ns := n; ns != nil; ns = ns.prev {
		for k := range ns.m {
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Scope returns the namespace's owning scope.
func (n *Namespace) Scope() *Scope {
	return n.scope
}

func (n *Namespace) lookup(k string) (any, bool) {
	for ns := n; ns != nil; ns = ns.prev {
		if v, ok := ns.m[k]; ok {
			return v, true
		}
	}

	return nil, false
}

func (n *Namespace) local(k string) (any, bool) {
	v, ok := n.m[k]

	return v, ok
}

// mergeKeys folds extra names into an already sorted key list.
func mergeKeys(keys, extra []string) []string {
	seen := map[string]struct{}{}
	for _, k := range keys {
		seen[k] = struct{}{}
	}

	for _, k := range extra {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	return keys
}
