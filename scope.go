// Released under an MIT license. See LICENSE.

package priv

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scope is the lifetime-bound owner of private storage: one scope-level
// store (a statics namespace under a values namespace) and one namespace per
// owner that touches it. Closing a scope only marks the handle unusable;
// namespaces persist and Tokens already issued keep working.
type Scope struct {
	id      uuid.UUID
	reg     *Registry
	open    bool
	statics *Namespace
	values  *Namespace
	owners  map[OwnerKey]*Namespace
	classes map[*Class]struct{}
	log     *zap.Logger
}

// NewScope opens a scope in the process-wide registry. The caller is
// responsible for calling Close; prefer With, which cannot forget.
func NewScope() *Scope {
	return std.NewScope()
}

// With opens a scope in the process-wide registry, runs fn, and closes the
// scope on the way out, normally or by panicking.
func With(fn func(s *Scope, tok *Token) error) error {
	return std.With(fn)
}

// ID returns the scope's identity, for diagnostics.
func (s *Scope) ID() string {
	return s.id.String()
}

// Open returns true until the scope is closed.
func (s *Scope) Open() bool {
	return s.open
}

// Close marks the scope closed. This is a visibility change only: no
// namespace is torn down and no outstanding Token is revoked.
func (s *Scope) Close() {
	if !s.open {
		return
	}

	s.open = false

	s.log.Debug("scope closed", zap.String("scope", s.ID()))
}

// Token returns the scope's capability. It fails once the scope is closed;
// Tokens obtained earlier are unaffected.
func (s *Scope) Token() (*Token, error) {
	if !s.open {
		return nil, errClosed()
	}

	return &Token{scope: s}, nil
}

// Register adds c to the scope's grant set and stores it, under its name, in
// the scope-level namespace, making it reachable as tok.Vars().Call(name).
// It returns c unchanged so ordinary call sites still work. Registering the
// same callable again is a no-op; registering it for another scope is a
// MismatchError.
func (s *Scope) Register(c *Callable) (*Callable, error) {
	if !s.open {
		return nil, errClosed()
	}

	if err := s.reg.grant(c, s); err != nil {
		return nil, err
	}

	s.values.Set(c.name, c)

	return c, nil
}

// DeclareStatics flattens a static block into the scope-level namespace:
// every field is inserted by name and every function is additionally
// registered, so privately stored functions can call sibling private
// functions and fields with no extra wiring.
func (s *Scope) DeclareStatics(members Fields) error {
	if !s.open {
		return errClosed()
	}

	for _, name := range sortedNames(members) {
		c, err := s.staticMember(name, members[name])
		if err != nil {
			return err
		}

		s.statics.Set(name, c)
	}

	return nil
}

// Binder produces a wrapper factory for this scope. Applying the factory to
// an outside function injects the scope's Token as its first parameter at
// wrap time, letting code defined outside the block opt in to access.
func (s *Scope) Binder() (func(fn GrantedFunc) Func, error) {
	if !s.open {
		return nil, errClosed()
	}

	tok := &Token{scope: s}

	return func(fn GrantedFunc) Func {
		return func(args ...any) (any, error) {
			return fn(tok, args...)
		}
	}, nil
}

// Bind applies a one-off Binder to fn.
func (s *Scope) Bind(fn GrantedFunc) (Func, error) {
	bind, err := s.Binder()
	if err != nil {
		return nil, err
	}

	return bind(fn), nil
}

// namespaceFor returns, creating on first use, the namespace filed under the
// owner's key. Reads fall back to the scope-level chain; writes stay with
// the owner.
func (s *Scope) namespaceFor(owner Owner) *Namespace {
	k := owner.Key()

	ns, ok := s.owners[k]
	if !ok {
		ns = newNamespace(s, s.values)
		s.owners[k] = ns

		s.log.Debug("namespace created",
			zap.String("scope", s.ID()), zap.String("owner", k.String()))
	}

	return ns
}

// staticMember normalizes one static-block member, granting functions the
// scope's Token.
func (s *Scope) staticMember(name string, v any) (any, error) {
	var c *Callable

	switch fn := v.(type) {
	case *Callable:
		c = fn
	case GrantedFunc:
		c = NewCallable(name, fn)
	case func(tok *Token, args ...any) (any, error):
		c = NewCallable(name, fn)
	default:
		return v, nil
	}

	if err := s.reg.grant(c, s); err != nil {
		return nil, err
	}

	return c, nil
}

func sortedNames(members Fields) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
