package txbind

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResourceHolder_New(t *testing.T) {
	t.Parallel()

	s := stubSession{}

	h := NewHolder(s)
	require.True(t, h.IsNew())
	require.Equal(t, s, h.Session())

	he := NewExternalHolder(s)
	require.False(t, he.IsNew())

	require.Panics(t, func() { NewHolder(nil) })
	require.Panics(t, func() { NewExternalHolder(nil) })
}

func TestResourceHolder_SetSession(t *testing.T) {
	t.Parallel()

	h := NewHolder(stubSession{})

	other := &struct{ stubSession }{}
	h.SetSession(other)
	require.Same(t, other, h.Session())

	require.Panics(t, func() { h.SetSession(nil) })
}

// TestResourceHolder_RefCount tests usage bookkeeping across nested scopes.
func TestResourceHolder_RefCount(t *testing.T) {
	t.Parallel()

	h := NewHolder(stubSession{})
	require.False(t, h.InUse())

	h.Requested()
	h.Requested()
	require.True(t, h.InUse())

	h.Released()
	require.True(t, h.InUse())

	h.Released()
	require.False(t, h.InUse())

	require.Panics(t, func() { h.Released() })
}

func TestResourceHolder_RollbackOnly(t *testing.T) {
	t.Parallel()

	h := NewHolder(stubSession{})
	require.False(t, h.RollbackOnly())

	h.SetRollbackOnly()
	require.True(t, h.RollbackOnly())

	h.Requested()
	h.Reset()
	require.False(t, h.RollbackOnly())
	require.False(t, h.InUse())
}
