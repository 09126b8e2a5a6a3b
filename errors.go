// Released under an MIT license. See LICENSE.

package priv

import (
	"errors"
	"fmt"
)

// Sentinel targets for errors.Is. Every error produced by this package
// wraps exactly one of these.
var (
	// ErrLookupMiss is returned when reading a name that was never written.
	ErrLookupMiss = errors.New("name has not been written")

	// ErrScopeMismatch is returned when a Token, owner, or Callable is
	// applied to a scope other than the one it belongs to.
	ErrScopeMismatch = errors.New("scope mismatch")

	// ErrNameUnavailable is returned when the surrounding environment has
	// no binding for a name. Unauthorized access surfaces as this, never
	// as a distinguishable security error.
	ErrNameUnavailable = errors.New("identifier not found")
)

// LookupError reports a read of a never-written name.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%q: %s", e.Name, ErrLookupMiss)
}

func (e *LookupError) Unwrap() error {
	return ErrLookupMiss
}

// MismatchError reports an operation that crossed scopes.
type MismatchError struct {
	What string // what was misapplied: an owner, a callable, a class
	Want string // scope it belongs to
	Got  string // scope it was applied to
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s belongs to scope %s, not scope %s: %s",
		e.What, e.Want, e.Got, ErrScopeMismatch)
}

func (e *MismatchError) Unwrap() error {
	return ErrScopeMismatch
}

// NameError reports a name the ordinary environment cannot see.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%q: %s", e.Name, ErrNameUnavailable)
}

func (e *NameError) Unwrap() error {
	return ErrNameUnavailable
}

// errClosed is the error for using a scope handle after its block exited.
// Tokens issued while the scope was open are unaffected.
func errClosed() error {
	return fmt.Errorf("cannot access a closed scope: %w", ErrNameUnavailable)
}
