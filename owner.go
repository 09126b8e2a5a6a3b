// Released under an MIT license. See LICENSE.

package priv

import (
	"github.com/google/uuid"
)

// OwnerKey is the opaque, identity-based key under which a per-owner
// Namespace is filed. Two keys are equal only if they were minted by the
// same NewOwnerKey call.
type OwnerKey uuid.UUID

// NewOwnerKey mints a fresh owner key.
func NewOwnerKey() OwnerKey {
	return OwnerKey(uuid.New())
}

// String returns the text form of the key k.
func (k OwnerKey) String() string {
	return uuid.UUID(k).String()
}

// Owner is anything that can own a per-scope Namespace. Instance and Class
// are owners; arbitrary values become owners by holding the result of
// NewOwner.
type Owner interface {
	Key() OwnerKey
}

// NewOwner returns an anonymous owner. Useful for keying private state to a
// value the caller controls without building a class for it.
func NewOwner() Owner {
	return &anon{key: NewOwnerKey()}
}

type anon struct {
	key OwnerKey
}

func (a *anon) Key() OwnerKey {
	return a.key
}

// boundScope returns the scope an owner is bound to, or nil when the owner
// carries no binding and may be filed under any scope.
func boundScope(owner Owner) *Scope {
	switch o := owner.(type) {
	case *Instance:
		return o.class.scope
	case *Class:
		return o.scope
	}

	return nil
}

// ownerClass returns the class behind an owner, when there is one.
func ownerClass(owner Owner) *Class {
	switch o := owner.(type) {
	case *Instance:
		return o.class
	case *Class:
		return o
	}

	return nil
}
