// Released under an MIT license. See LICENSE.

package priv

import (
	"fmt"
)

// MethodFunc is the shape of an instance method. The Token is injected by
// the class machinery; callers never pass it.
type MethodFunc func(self *Instance, tok *Token, args ...any) (any, error)

// ClassFunc is the shape of a class-level method. It receives the class in
// place of an instance.
type ClassFunc func(cls *Class, tok *Token, args ...any) (any, error)

// GetterFunc computes a property value on read.
type GetterFunc func(self *Instance, tok *Token) (any, error)

// SetterFunc accepts a property value on write.
type SetterFunc func(self *Instance, tok *Token, v any) error

type memberKind uint8

const (
	kindMethod memberKind = iota
	kindClassMethod
	kindStaticMethod
	kindProperty
)

var kindNames = [...]string{
	kindMethod:       "method",
	kindClassMethod:  "class method",
	kindStaticMethod: "static method",
	kindProperty:     "property",
}

// Member describes one member of a class under construction: its name, its
// shape (method, class method, static method, or computed property), and
// whether it is hidden. Hidden is a flag, not a wrapping layer, so it
// composes with every shape in either order.
type Member struct {
	name   string
	kind   memberKind
	hidden bool
	method MethodFunc
	class  ClassFunc
	static GrantedFunc
	get    GetterFunc
	set    SetterFunc
}

// Method declares an instance method.
func Method(name string, fn MethodFunc) Member {
	return Member{name: name, kind: kindMethod, method: fn}
}

// ClassMethod declares a method shared across instances, bound to the class.
func ClassMethod(name string, fn ClassFunc) Member {
	return Member{name: name, kind: kindClassMethod, class: fn}
}

// StaticMethod declares a method with no receiver at all.
func StaticMethod(name string, fn GrantedFunc) Member {
	return Member{name: name, kind: kindStaticMethod, static: fn}
}

// Property declares a member computed on read. A nil setter makes it
// read-only.
func Property(name string, get GetterFunc, set SetterFunc) Member {
	return Member{name: name, kind: kindProperty, get: get, set: set}
}

// Hidden marks the member as removed from the class's ordinary member set.
// It stays invocable through the scope's Token only.
func (m Member) Hidden() Member {
	m.hidden = true

	return m
}

// Name returns the member's name.
func (m Member) Name() string {
	return m.name
}

func (m Member) valid() error {
	if m.name == "" {
		return fmt.Errorf("member has no name")
	}

	ok := false
	switch m.kind {
	case kindMethod:
		ok = m.method != nil
	case kindClassMethod:
		ok = m.class != nil
	case kindStaticMethod:
		ok = m.static != nil
	case kindProperty:
		ok = m.get != nil
	}

	if !ok {
		return fmt.Errorf("%s %q has no function", kindNames[m.kind], m.name)
	}

	return nil
}

// member is a finished class member: the declaration pre-wrapped with the
// class's Token at construction time. No interception happens at access
// time; invocation just runs the stored closure.
type member struct {
	def Member
	cls *Class
	tok *Token
}

// callOn invokes the member through an instance.
func (m *member) callOn(self *Instance, args ...any) (any, error) {
	switch m.def.kind {
	case kindMethod:
		return m.def.method(self, m.tok, args...)
	case kindClassMethod:
		return m.def.class(m.cls, m.tok, args...)
	case kindStaticMethod:
		return m.def.static(m.tok, args...)
	}

	return nil, fmt.Errorf("property %q is not callable", m.def.name)
}

// callOnClass invokes the member with no instance at hand.
func (m *member) callOnClass(args ...any) (any, error) {
	switch m.def.kind {
	case kindClassMethod:
		return m.def.class(m.cls, m.tok, args...)
	case kindStaticMethod:
		return m.def.static(m.tok, args...)
	}

	return nil, fmt.Errorf("%s %q requires an instance", kindNames[m.def.kind], m.def.name)
}

// read computes a property value.
func (m *member) read(self *Instance) (any, error) {
	return m.def.get(self, m.tok)
}

// write stores a property value through its setter.
func (m *member) write(self *Instance, v any) error {
	if m.def.set == nil {
		return fmt.Errorf("property %q is read-only", m.def.name)
	}

	return m.def.set(self, m.tok, v)
}

// bind resolves the member for a Token-mediated lookup: callables come back
// as a Func closed over the owner, properties as their computed value.
func (m *member) bind(owner Owner) (any, error) {
	self, _ := owner.(*Instance)

	switch m.def.kind {
	case kindMethod:
		if self == nil {
			return nil, fmt.Errorf("method %q requires an instance", m.def.name)
		}

		return Func(func(args ...any) (any, error) {
			return m.def.method(self, m.tok, args...)
		}), nil

	case kindClassMethod:
		return Func(func(args ...any) (any, error) {
			return m.def.class(m.cls, m.tok, args...)
		}), nil

	case kindStaticMethod:
		return Func(func(args ...any) (any, error) {
			return m.def.static(m.tok, args...)
		}), nil
	}

	if self == nil {
		return nil, fmt.Errorf("property %q requires an instance", m.def.name)
	}

	return m.read(self)
}
