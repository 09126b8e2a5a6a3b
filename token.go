// Released under an MIT license. See LICENSE.

package priv

import (
	"fmt"
)

// Token is the capability through which all private reads and writes occur.
// It is bound to exactly one scope at creation and is an ordinary value: it
// may be stored, passed, or leaked, and no operation on it ever checks who
// is calling.
type Token struct {
	scope *Scope
}

// Vars returns the view of the bound scope's scope-level namespace.
func (t *Token) Vars() *Vars {
	return &Vars{ns: t.scope.values, tok: t}
}

// Of returns the view of the owner's namespace within the bound scope,
// creating the namespace on first use. Owners bound to another scope (an
// Instance or Class of a differently scoped class) are a MismatchError.
func (t *Token) Of(owner Owner) (*Vars, error) {
	if bound := boundScope(owner); bound != nil && bound != t.scope {
		return nil, &MismatchError{
			What: "owner " + owner.Key().String(),
			Want: bound.ID(),
			Got:  t.scope.ID(),
		}
	}

	return &Vars{ns: t.scope.namespaceFor(owner), owner: owner, tok: t}, nil
}

// Vars is an accessor-bound view of a Namespace. Its reads resolve hidden
// class members and its writes always land locally, shadowing rather than
// mutating anything further down the chain.
type Vars struct {
	ns    *Namespace
	owner Owner // nil for the scope-level view
	tok   *Token
}

// Get retrieves the value for the name. Hidden members of the owner's class
// come back bound to the owner: callables as a Func with the Token already
// injected, properties as their computed value.
func (v *Vars) Get(name string) (any, error) {
	if x, ok := v.ns.local(name); ok {
		return x, nil
	}

	if cl := ownerClass(v.owner); cl != nil {
		if m, ok := cl.hidden[name]; ok {
			return m.bind(v.owner)
		}
	}

	if v.ns.prev != nil {
		if x, ok := v.ns.prev.lookup(name); ok {
			return x, nil
		}
	}

	return nil, &LookupError{Name: name}
}

// Set writes the name locally. It always succeeds and creates the slot.
func (v *Vars) Set(name string, val any) {
	v.ns.Set(name, val)
}

// Delete removes the local entry for the name.
func (v *Vars) Delete(name string) error {
	return v.ns.Delete(name)
}

// Call looks the name up and invokes it.
func (v *Vars) Call(name string, args ...any) (any, error) {
	x, err := v.Get(name)
	if err != nil {
		return nil, err
	}

	switch fn := x.(type) {
	case *Callable:
		return fn.Call(args...)
	case Func:
		return fn(args...)
	case func(args ...any) (any, error):
		return fn(args...)
	}

	return nil, fmt.Errorf("%q is not callable", name)
}

// Namespace returns the raw store behind the view, without member binding.
func (v *Vars) Namespace() *Namespace {
	return v.ns
}

// Has returns true if the name is visible from this view.
func (v *Vars) Has(name string) bool {
	_, err := v.Get(name)

	return err == nil
}

// Keys returns every name visible from this view, sorted.
func (v *Vars) Keys() []string {
	keys := v.ns.Keys()

	cl := ownerClass(v.owner)
	if cl == nil {
		return keys
	}

	return mergeKeys(keys, cl.hiddenNames())
}
