// Released under an MIT license. See LICENSE.

package priv

import (
	"fmt"
)

// Class is a scope-bound composite type. Every member was granted the bound
// scope's Token when the class was built; hidden members are absent from the
// ordinary member set and reachable only through that Token. Classes built
// here do not inherit from one another: cooperation happens by sharing a
// scope, not a parent.
type Class struct {
	name   string
	key    OwnerKey
	scope  *Scope
	tok    *Token
	public map[string]*member
	hidden map[string]*member
}

// ClassOption configures class construction.
type ClassOption func(*classConfig)

type classConfig struct {
	scope   *Scope
	reg     *Registry
	statics Fields
}

// SharedScope binds the class to an existing scope instead of a fresh one,
// giving every type bound to that scope mutual access to private state.
func SharedScope(s *Scope) ClassOption {
	return func(cfg *classConfig) {
		cfg.scope = s
	}
}

// InRegistry records the class's type binding in r instead of the
// process-wide registry. Ignored when SharedScope is given; a scope already
// knows its registry.
func InRegistry(r *Registry) ClassOption {
	return func(cfg *classConfig) {
		cfg.reg = r
	}
}

// WithStatics declares a type-level static block: one store keyed by the
// class itself, visible to every instance and class-level function through
// tok.Of(class). Functions in the block are granted the class's Token.
func WithStatics(members Fields) ClassOption {
	return func(cfg *classConfig) {
		cfg.statics = members
	}
}

// NewClass builds a scope-bound type from a member list. The class gets a
// freshly opened private scope unless SharedScope supplies one. Each member
// is pre-wrapped with that scope's Token; a member named "init" becomes the
// constructor run by New.
func NewClass(name string, members []Member, opts ...ClassOption) (*Class, error) {
	cfg := classConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := cfg.scope
	if s == nil {
		reg := cfg.reg
		if reg == nil {
			reg = std
		}

		s = reg.NewScope()
	} else if !s.open {
		return nil, errClosed()
	}

	c := &Class{
		name:   name,
		key:    NewOwnerKey(),
		scope:  s,
		tok:    &Token{scope: s},
		public: map[string]*member{},
		hidden: map[string]*member{},
	}

	for _, def := range members {
		if err := def.valid(); err != nil {
			return nil, fmt.Errorf("class %q: %w", name, err)
		}

		if _, ok := c.public[def.name]; ok {
			return nil, fmt.Errorf("class %q: duplicate member %q", name, def.name)
		}

		if _, ok := c.hidden[def.name]; ok {
			return nil, fmt.Errorf("class %q: duplicate member %q", name, def.name)
		}

		m := &member{def: def, cls: c, tok: c.tok}
		if def.hidden {
			c.hidden[def.name] = m
		} else {
			c.public[def.name] = m
		}
	}

	s.reg.bind(c, s)

	if cfg.statics != nil {
		ns := s.namespaceFor(c)

		for _, k := range sortedNames(cfg.statics) {
			v, err := s.staticMember(k, cfg.statics[k])
			if err != nil {
				return nil, fmt.Errorf("class %q: %w", name, err)
			}

			ns.Set(k, v)
		}
	}

	return c, nil
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Key returns the class's owner key. The class itself owns the store its
// static block lives in.
func (c *Class) Key() OwnerKey {
	return c.key
}

// New creates an instance with its own owner key and runs the "init"
// member, if the class declares one, with args.
func (c *Class) New(args ...any) (*Instance, error) {
	inst := &Instance{class: c, key: NewOwnerKey(), attrs: map[string]any{}}

	if m := c.member("init"); m != nil {
		if _, err := m.callOn(inst, args...); err != nil {
			return nil, err
		}
	}

	return inst, nil
}

// Call invokes a public class-level member: a class method or a static
// method. Hidden members are not here; asking for one is a NameError, the
// same as asking for a member that never existed.
func (c *Class) Call(name string, args ...any) (any, error) {
	m, ok := c.public[name]
	if !ok {
		return nil, &NameError{Name: name}
	}

	return m.callOnClass(args...)
}

// member finds a constructor-eligible member by name, public or hidden.
func (c *Class) member(name string) *member {
	if m, ok := c.public[name]; ok {
		return m
	}

	if m, ok := c.hidden[name]; ok {
		return m
	}

	return nil
}

func (c *Class) hiddenNames() []string {
	names := make([]string, 0, len(c.hidden))
	for k := range c.hidden {
		names = append(names, k)
	}

	return names
}
