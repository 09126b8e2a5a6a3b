// Released under an MIT license. See LICENSE.

// Package priv emulates lexical information hiding in Go.
//
// A Scope owns private storage. It hands out exactly one capability, its
// Token, and every private read or write goes through that Token. Code gets
// a Token in one of three ways: by being registered for the scope, by being
// explicitly bound to it, or automatically, as a member of a class built
// with NewClass. Nothing else can name the storage, so "access denied" is
// indistinguishable from "identifier not found".
//
// The package offers no defense against a Token that escapes. A Token copied
// out of its block keeps working after the scope closes. That is documented
// behavior, not a defect.
//
// Nothing here is safe for concurrent use. Callers that share a Scope,
// Namespace, or Token across goroutines must serialize access themselves.
package priv

// Func is an ordinary callable. Values of this shape can be stored in and
// invoked through a Namespace.
type Func func(args ...any) (any, error)

// GrantedFunc is a callable that wants a scope's Token. The Token is
// injected by the registration or binding machinery, never recovered from
// the environment.
type GrantedFunc func(tok *Token, args ...any) (any, error)

// Fields is the member list for a static block. Values of type GrantedFunc
// (or *Callable) are granted the declaring scope's Token; everything else is
// stored as-is.
type Fields map[string]any
