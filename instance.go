// Released under an MIT license. See LICENSE.

package priv

import (
	"sort"
)

// Instance is one value of a scope-bound class. Its private state lives in
// the class scope's per-owner namespace under the instance's key; its public
// attributes live here, in plain sight.
type Instance struct {
	class *Class
	key   OwnerKey
	attrs map[string]any
}

// Class returns the instance's class.
func (i *Instance) Class() *Class {
	return i.class
}

// Key returns the instance's owner key.
func (i *Instance) Key() OwnerKey {
	return i.key
}

// Call invokes a public member. Hidden members are a NameError,
// indistinguishable from members that never existed.
func (i *Instance) Call(name string, args ...any) (any, error) {
	m, ok := i.class.public[name]
	if !ok {
		return nil, &NameError{Name: name}
	}

	return m.callOn(i, args...)
}

// Get reads a public attribute or computes a public property.
func (i *Instance) Get(name string) (any, error) {
	if m, ok := i.class.public[name]; ok && m.def.kind == kindProperty {
		return m.read(i)
	}

	if v, ok := i.attrs[name]; ok {
		return v, nil
	}

	return nil, &NameError{Name: name}
}

// Set writes a public attribute, or a public property through its setter.
func (i *Instance) Set(name string, v any) error {
	if m, ok := i.class.public[name]; ok && m.def.kind == kindProperty {
		return m.write(i, v)
	}

	i.attrs[name] = v

	return nil
}

// Attrs returns the names of the instance's public attributes and
// properties, sorted.
func (i *Instance) Attrs() []string {
	names := make([]string, 0, len(i.attrs))
	for k := range i.attrs {
		names = append(names, k)
	}

	for k, m := range i.class.public {
		if m.def.kind == kindProperty {
			names = append(names, k)
		}
	}

	sort.Strings(names)

	return names
}
