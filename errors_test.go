package txbind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	t.Parallel()

	cause := errors.New("server says no")
	err := NewConfigError("set isolation level serializable", cause)

	require.True(t, IsConfigError(err))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "set isolation level serializable")

	// without cause
	require.Equal(t, "configuration: bad level", NewConfigError("bad level", nil).Error())

	require.False(t, IsConfigError(cause))
	require.False(t, IsConfigError(nil))
}

func TestRestoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection closed")
	err := &RestoreError{Setting: "autocommit", Err: cause}

	require.True(t, IsRestoreError(err))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "autocommit")

	require.False(t, IsRestoreError(cause))
}

// TestCompletionError verifies that the primary failure and the restoration
// failure stay distinguishable inside the composite error.
func TestCompletionError(t *testing.T) {
	t.Parallel()

	commitErr := errors.New("commit: broken pipe")
	restoreErr := &RestoreError{Setting: "isolation level", Err: errors.New("connection closed")}

	err := &CompletionError{Op: "commit", Err: commitErr, RestoreErr: restoreErr}

	require.ErrorIs(t, err, commitErr)
	require.True(t, IsRestoreError(err))

	var ce *CompletionError
	require.ErrorAs(t, error(err), &ce)
	require.Equal(t, "commit", ce.Op)
	require.Same(t, commitErr, ce.Err)

	require.Contains(t, err.Error(), "broken pipe")
	require.Contains(t, err.Error(), "restoration")
}

func TestIsProtocolViolation(t *testing.T) {
	t.Parallel()

	b := NewBinding()
	require.NoError(t, b.SetMustRestoreAutoCommit(true))

	err := b.SetMustRestoreAutoCommit(true)
	require.True(t, IsProtocolViolation(err))
	require.False(t, IsProtocolViolation(errors.New("other")))
}
