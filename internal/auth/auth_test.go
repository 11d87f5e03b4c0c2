package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hermes0001-boop/schedule-app-260122/internal/storage"
)

func newGate(t *testing.T) *Gate {
	t.Helper()
	backend, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return NewGate(backend)
}

func TestFirstRunFlow(t *testing.T) {
	g := newGate(t)

	set, err := g.IsSet()
	require.NoError(t, err)
	assert.False(t, set)

	require.NoError(t, g.Set("hunter2", "hunter2"))

	set, err = g.IsSet()
	require.NoError(t, err)
	assert.True(t, set)

	assert.NoError(t, g.Check("hunter2"))
	assert.ErrorIs(t, g.Check("wrong"), ErrIncorrect)
}

func TestSetValidation(t *testing.T) {
	g := newGate(t)

	assert.ErrorIs(t, g.Set("abc", "abc"), ErrTooShort)
	assert.ErrorIs(t, g.Set("hunter2", "hunter3"), ErrMismatch)

	set, err := g.IsSet()
	require.NoError(t, err)
	assert.False(t, set, "failed Set must not store anything")
}

func TestCheckBeforeSet(t *testing.T) {
	g := newGate(t)
	assert.ErrorIs(t, g.Check("anything"), ErrIncorrect)
}
