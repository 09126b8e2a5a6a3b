// Released under an MIT license. See LICENSE.

package priv

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry owns the side-tables that grant propagation is built on: callable
// identity to scope, and class identity to scope. One process-wide registry
// serves the package-level constructors; tests that want isolation create
// their own and tear it down with Reset.
type Registry struct {
	log    *zap.Logger
	grants map[*Callable]*Scope
	types  map[*Class]*Scope
}

// RegistryOption configures a registry.
type RegistryOption func(*Registry)

// WithLogger directs engine events (scope lifecycle, grants, namespace
// creation) to l at debug level.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = l
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		log:    zap.NewNop(),
		grants: map[*Callable]*Scope{},
		types:  map[*Class]*Scope{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

var std = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return std
}

// Reset discards every grant record and type binding. Callables granted
// through this registry stop working. Intended as test teardown.
func (r *Registry) Reset() {
	r.grants = map[*Callable]*Scope{}
	r.types = map[*Class]*Scope{}

	r.log.Debug("registry reset")
}

// NewScope opens a scope owned by the registry r.
func (r *Registry) NewScope() *Scope {
	s := &Scope{
		id:      uuid.New(),
		reg:     r,
		open:    true,
		owners:  map[OwnerKey]*Namespace{},
		classes: map[*Class]struct{}{},
		log:     r.log,
	}

	s.statics = newNamespace(s, nil)
	s.values = newNamespace(s, s.statics)

	r.log.Debug("scope opened", zap.String("scope", s.ID()))

	return s
}

// With opens a scope, runs fn with the scope handle and its Token, and
// closes the scope when fn returns, normally or by panicking.
func (r *Registry) With(fn func(s *Scope, tok *Token) error) error {
	s := r.NewScope()
	defer s.Close()

	return fn(s, &Token{scope: s})
}

// grant records that c may use the Token of s. Granting the same callable
// to its own scope again is a no-op; to another scope, a MismatchError.
func (r *Registry) grant(c *Callable, s *Scope) error {
	if prev, ok := r.grants[c]; ok {
		if prev == s {
			return nil
		}

		return &MismatchError{
			What: "callable " + c.name,
			Want: prev.ID(),
			Got:  s.ID(),
		}
	}

	r.grants[c] = s
	c.reg = r

	r.log.Debug("callable granted",
		zap.String("name", c.name), zap.String("scope", s.ID()))

	return nil
}

// bind records that the class c is scope-bound to s.
func (r *Registry) bind(c *Class, s *Scope) {
	r.types[c] = s
	s.classes[c] = struct{}{}

	r.log.Debug("class bound",
		zap.String("class", c.name), zap.String("scope", s.ID()))
}

// scopeOf returns the scope the callable c was granted, if any.
func (r *Registry) scopeOf(c *Callable) (*Scope, bool) {
	s, ok := r.grants[c]

	return s, ok
}
