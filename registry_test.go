// Released under an MIT license. See LICENSE.

package priv_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/privscope/priv"
)

func TestDefaultRegistry(t *testing.T) {
	require.NotNil(t, priv.Default())
}

func TestResetRevokesGrants(t *testing.T) {
	reg := priv.NewRegistry(priv.WithLogger(zaptest.NewLogger(t)))
	s := reg.NewScope()

	c, err := s.Register(priv.NewCallable("secret", func(tok *priv.Token, args ...any) (any, error) {
		return 1, nil
	}))
	require.NoError(t, err)

	_, err = c.Call()
	require.NoError(t, err)

	reg.Reset()

	// The grant side-table is authoritative: without its record the
	// callable has no capability left.
	_, err = c.Call()
	require.ErrorIs(t, err, priv.ErrNameUnavailable)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := priv.NewRegistry()
	b := priv.NewRegistry()

	s := a.NewScope()

	c, err := s.Register(priv.NewCallable("noop", func(tok *priv.Token, args ...any) (any, error) {
		return nil, nil
	}))
	require.NoError(t, err)

	b.Reset()

	// Tearing down one registry leaves the other's grants alone.
	_, err = c.Call()
	require.NoError(t, err)
}
