// Released under an MIT license. See LICENSE.

package priv

// Callable gives a function a stable identity. Go function values cannot be
// compared, so the grant side-table is keyed by *Callable instead. Until a
// callable is registered for (or bound to) a scope, invoking it fails: its
// capability comes from the grant record, not from anything it closed over.
type Callable struct {
	name string
	fn   GrantedFunc
	reg  *Registry
}

// NewCallable wraps fn as a callable named name. The result is inert until
// it is registered for a scope or included in a static block.
func NewCallable(name string, fn GrantedFunc) *Callable {
	return &Callable{name: name, fn: fn}
}

// Name returns the name the callable registers under.
func (c *Callable) Name() string {
	return c.name
}

// Call invokes the callable with the Token of the scope it was granted,
// wherever the call happens to come from. An ungranted callable has no
// Token to receive, so the call fails with a NameError.
func (c *Callable) Call(args ...any) (any, error) {
	s, ok := c.granted()
	if !ok {
		return nil, &NameError{Name: c.name}
	}

	return c.fn(&Token{scope: s}, args...)
}

// Func adapts the callable to the plain Func shape.
func (c *Callable) Func() Func {
	return c.Call
}

func (c *Callable) granted() (*Scope, bool) {
	if c.reg == nil {
		return nil, false
	}

	return c.reg.scopeOf(c)
}
