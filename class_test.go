// Released under an MIT license. See LICENSE.

package priv_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/privscope/priv"
)

var errNotLocked = errors.New("ticker is not locked")

// tickerClass builds the canonical exercise for scope-bound types: a counter
// with per-instance private state, a class-wide private registry, a hidden
// helper, and a computed property.
func tickerClass(t *testing.T, reg *priv.Registry) *priv.Class {
	t.Helper()

	cls, err := priv.NewClass("Ticker", []priv.Member{
		priv.Method("init", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			vars.Set("count", 0)
			vars.Set("mutable", true)

			return nil, nil
		}),

		priv.Method("lock", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			vars.Set("mutable", false)

			return nil, nil
		}),

		priv.Method("increment", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			mutable, err := vars.Get("mutable")
			if err != nil {
				return nil, err
			}

			if mutable.(bool) {
				count, err := vars.Get("count")
				if err != nil {
					return nil, err
				}

				vars.Set("count", count.(int)+1)

				statics, err := tok.Of(self.Class())
				if err != nil {
					return nil, err
				}

				total, err := statics.Get("globalCount")
				if err != nil {
					return nil, err
				}

				statics.Set("globalCount", total.(int)+1)
			}

			return vars.Get("count")
		}),

		priv.Property("doubleCount", func(self *priv.Instance, tok *priv.Token) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			count, err := vars.Get("count")
			if err != nil {
				return nil, err
			}

			return count.(int) * 2, nil
		}, nil),

		priv.ClassMethod("globalCount", func(cls *priv.Class, tok *priv.Token, args ...any) (any, error) {
			statics, err := tok.Of(cls)
			if err != nil {
				return nil, err
			}

			return statics.Get("globalCount")
		}),

		priv.Method("rmFromGlobal", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			count, err := vars.Get("count")
			if err != nil {
				return nil, err
			}

			statics, err := tok.Of(self.Class())
			if err != nil {
				return nil, err
			}

			total, err := statics.Get("globalCount")
			if err != nil {
				return nil, err
			}

			statics.Set("globalCount", total.(int)-count.(int))

			return nil, nil
		}).Hidden(),

		priv.Method("unlock", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			mutable, err := vars.Get("mutable")
			if err != nil {
				return nil, err
			}

			if mutable.(bool) {
				return nil, errNotLocked
			}

			if _, err := vars.Call("rmFromGlobal"); err != nil {
				return nil, err
			}

			vars.Set("count", 0)
			vars.Set("mutable", true)

			return nil, nil
		}),
	},
		priv.InRegistry(reg),
		priv.WithStatics(priv.Fields{"globalCount": 0}),
	)
	require.NoError(t, err)

	return cls
}

func TestTicker(t *testing.T) {
	reg := priv.NewRegistry()
	cls := tickerClass(t, reg)

	ticker, err := cls.New()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = ticker.Call("increment")
		require.NoError(t, err)
	}

	got, err := ticker.Call("increment")
	require.NoError(t, err)
	require.Equal(t, 4, got)

	double, err := ticker.Get("doubleCount")
	require.NoError(t, err)
	require.Equal(t, 8, double)

	// A second instance has its own count but shares the class registry.
	other, err := cls.New()
	require.NoError(t, err)

	_, err = other.Call("increment")
	require.NoError(t, err)

	got, err = other.Call("increment")
	require.NoError(t, err)
	require.Equal(t, 2, got)

	total, err := cls.Call("globalCount")
	require.NoError(t, err)
	require.Equal(t, 6, total)

	// Unlocking an unlocked ticker is refused.
	_, err = other.Call("unlock")
	require.ErrorIs(t, err, errNotLocked)

	_, err = other.Call("lock")
	require.NoError(t, err)

	_, err = other.Call("unlock")
	require.NoError(t, err)

	total, err = cls.Call("globalCount")
	require.NoError(t, err)
	require.Equal(t, 4, total)
}

func TestHiddenMembersAreUnreachable(t *testing.T) {
	reg := priv.NewRegistry()
	cls := tickerClass(t, reg)

	ticker, err := cls.New()
	require.NoError(t, err)

	// Hidden members are indistinguishable from absent ones.
	_, err = ticker.Call("rmFromGlobal")
	require.ErrorIs(t, err, priv.ErrNameUnavailable)

	_, err = ticker.Call("noSuchMember")
	require.ErrorIs(t, err, priv.ErrNameUnavailable)

	// Private state is not a public attribute.
	_, err = ticker.Get("count")
	require.ErrorIs(t, err, priv.ErrNameUnavailable)
}

func TestClassLevelStateIsShared(t *testing.T) {
	reg := priv.NewRegistry()
	cls := tickerClass(t, reg)

	a, err := cls.New()
	require.NoError(t, err)

	b, err := cls.New()
	require.NoError(t, err)

	_, err = a.Call("increment")
	require.NoError(t, err)

	// The update made through a is visible through b and through the
	// class-level function.
	_, err = b.Call("increment")
	require.NoError(t, err)

	total, err := cls.Call("globalCount")
	require.NoError(t, err)
	require.Equal(t, 2, total)
}

func TestSharedScopeCrossTypeAccess(t *testing.T) {
	reg := priv.NewRegistry()
	s := reg.NewScope()

	keeper, err := priv.NewClass("Keeper", []priv.Member{
		priv.Method("init", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			vars.Set("secret", args[0])

			return nil, nil
		}),
	}, priv.SharedScope(s))
	require.NoError(t, err)

	reader, err := priv.NewClass("Reader", []priv.Member{
		priv.Method("read", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(args[0].(*priv.Instance))
			if err != nil {
				return nil, err
			}

			return vars.Get("secret")
		}),
	}, priv.SharedScope(s))
	require.NoError(t, err)

	k, err := keeper.New("hunter2")
	require.NoError(t, err)

	r, err := reader.New()
	require.NoError(t, err)

	// The scope, not the type, is the unit of visibility.
	got, err := r.Call("read", k)
	require.NoError(t, err)
	require.Equal(t, "hunter2", got)

	// An instance of a differently scoped class is out of bounds.
	stranger, err := priv.NewClass("Stranger", []priv.Member{
		priv.Method("init", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			vars, err := tok.Of(self)
			if err != nil {
				return nil, err
			}

			vars.Set("secret", "other")

			return nil, nil
		}),
	}, priv.InRegistry(reg))
	require.NoError(t, err)

	st, err := stranger.New()
	require.NoError(t, err)

	_, err = r.Call("read", st)
	require.ErrorIs(t, err, priv.ErrScopeMismatch)
}

func TestHiddenStaticWithinScope(t *testing.T) {
	reg := priv.NewRegistry()

	cls, err := priv.NewClass("Math", []priv.Member{
		priv.StaticMethod("nine", func(tok *priv.Token, args ...any) (any, error) {
			return 9, nil
		}).Hidden(),

		priv.ClassMethod("square", func(cls *priv.Class, tok *priv.Token, args ...any) (any, error) {
			statics, err := tok.Of(cls)
			if err != nil {
				return nil, err
			}

			n, err := statics.Call("nine")
			if err != nil {
				return nil, err
			}

			return n.(int) * n.(int), nil
		}),
	}, priv.InRegistry(reg))
	require.NoError(t, err)

	// Not reachable the ordinary way.
	_, err = cls.Call("nine")
	require.ErrorIs(t, err, priv.ErrNameUnavailable)

	// Reachable through a member's token.
	got, err := cls.Call("square")
	require.NoError(t, err)
	require.Equal(t, 81, got)
}

func TestClassConstruction(t *testing.T) {
	_, err := priv.NewClass("Dup", []priv.Member{
		priv.Method("m", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			return nil, nil
		}),
		priv.Method("m", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			return nil, nil
		}),
	})
	require.Error(t, err)

	_, err = priv.NewClass("NoName", []priv.Member{
		priv.Method("", func(self *priv.Instance, tok *priv.Token, args ...any) (any, error) {
			return nil, nil
		}),
	})
	require.Error(t, err)

	closed := priv.NewRegistry().NewScope()
	closed.Close()

	_, err = priv.NewClass("Late", nil, priv.SharedScope(closed))
	require.ErrorIs(t, err, priv.ErrNameUnavailable)
}

func TestInstanceAttributes(t *testing.T) {
	cls, err := priv.NewClass("Point", []priv.Member{
		priv.Property("magnitude", func(self *priv.Instance, tok *priv.Token) (any, error) {
			x, err := self.Get("x")
			if err != nil {
				return nil, err
			}

			return x.(int) * x.(int), nil
		}, nil),
	}, priv.InRegistry(priv.NewRegistry()))
	require.NoError(t, err)

	p, err := cls.New()
	require.NoError(t, err)

	require.NoError(t, p.Set("x", 3))

	got, err := p.Get("x")
	require.NoError(t, err)
	require.Equal(t, 3, got)

	mag, err := p.Get("magnitude")
	require.NoError(t, err)
	require.Equal(t, 9, mag)

	// A read-only property refuses writes.
	require.Error(t, p.Set("magnitude", 0))

	require.Equal(t, []string{"magnitude", "x"}, p.Attrs())
}
