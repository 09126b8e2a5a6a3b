// Released under an MIT license. See LICENSE.

package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/privscope/priv"
)

func run(t *testing.T, script string) string {
	t.Helper()

	var out bytes.Buffer

	s := New(&out, priv.NewRegistry())
	require.NoError(t, s.Run(strings.NewReader(script)))

	return out.String()
}

func TestScriptRoundTrip(t *testing.T) {
	got := run(t, `
scope a
set greeting "hello"
get greeting
`)

	assert.Contains(t, got, "scope a opened\n")
	assert.Contains(t, got, "$'hello'\n")
}

func TestOwnerViews(t *testing.T) {
	got := run(t, `
scope a
owner alice
owner bob
set alice.n 1
set bob.n 2
get alice.n
get bob.n
set shared 9
get alice.shared
`)

	lines := strings.Split(strings.TrimSpace(got), "\n")

	// The tail of the transcript: per-owner values, then the fallback read.
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, []string{"1", "2", "9"}, lines[len(lines)-3:])
}

func TestTokenSurvivesClose(t *testing.T) {
	got := run(t, `
scope a
set secret 42
close a
get secret
`)

	assert.Contains(t, got, "scope a closed (its token still works)\n")
	assert.True(t, strings.HasSuffix(got, "42\n"), "transcript: %q", got)
}

func TestErrorsDoNotStopTheScript(t *testing.T) {
	got := run(t, `
scope a
get missing
set after 1
get after
`)

	assert.Contains(t, got, "error: ")
	assert.True(t, strings.HasSuffix(got, "1\n"), "transcript: %q", got)
}

func TestKeysWithPattern(t *testing.T) {
	got := run(t, `
scope a
set alpha 1
set beta 2
static gamma 3
keys a*
`)

	lines := strings.Split(strings.TrimSpace(got), "\n")
	assert.Equal(t, "alpha", lines[len(lines)-1])
}

func TestUseSwitchesScopes(t *testing.T) {
	got := run(t, `
scope a
set x 1
scope b
set x 2
get x
use a
get x
`)

	lines := strings.Split(strings.TrimSpace(got), "\n")

	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, []string{"2", "1"}, lines[len(lines)-2:])
}

func TestExit(t *testing.T) {
	var out bytes.Buffer

	s := New(&out, priv.NewRegistry())
	require.NoError(t, s.Run(strings.NewReader("exit\nscope never\n")))

	assert.NotContains(t, out.String(), "scope never opened")
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer

	s := New(&out, priv.NewRegistry())

	err := s.Eval("frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
