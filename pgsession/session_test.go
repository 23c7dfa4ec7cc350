package pgsession

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/n-r-w/txbind"
	"github.com/stretchr/testify/require"
)

// fakeConn records executed statements and fails the ones listed in failOn.
type fakeConn struct {
	stmts  []string
	failOn map[string]error
}

func (f *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.stmts = append(f.stmts, sql)

	if err, ok := f.failOn[sql]; ok {
		return pgconn.CommandTag{}, err
	}

	return pgconn.CommandTag{}, nil
}

func (f *fakeConn) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("not used in unit tests")
}

func (f *fakeConn) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return nil
}

func TestSession_SetIsolationLevel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	con := &fakeConn{}
	s := NewSession(con)

	require.NoError(t, s.SetIsolationLevel(ctx, txbind.LevelSerializable))
	require.Equal(t,
		[]string{"SET SESSION CHARACTERISTICS AS TRANSACTION ISOLATION LEVEL SERIALIZABLE"},
		con.stmts)

	// invalid levels are rejected before touching the server
	require.True(t, txbind.IsConfigError(s.SetIsolationLevel(ctx, txbind.LevelDefault)))
	require.True(t, txbind.IsConfigError(s.SetIsolationLevel(ctx, txbind.IsolationLevel(42))))
	require.Len(t, con.stmts, 1)
}

func TestSession_SetIsolationLevel_ServerReject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	stmt := "SET SESSION CHARACTERISTICS AS TRANSACTION ISOLATION LEVEL REPEATABLE READ"
	con := &fakeConn{failOn: map[string]error{
		stmt: &pgconn.PgError{Code: pgerrcode.FeatureNotSupported},
	}}
	s := NewSession(con)

	err := s.SetIsolationLevel(ctx, txbind.LevelRepeatableRead)
	require.True(t, txbind.IsConfigError(err))
}

func TestSession_SetReadOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	con := &fakeConn{}
	s := NewSession(con)

	require.NoError(t, s.SetReadOnly(ctx, true))
	require.NoError(t, s.SetReadOnly(ctx, false))
	require.Equal(t,
		[]string{
			"SET SESSION CHARACTERISTICS AS TRANSACTION READ ONLY",
			"SET SESSION CHARACTERISTICS AS TRANSACTION READ WRITE",
		},
		con.stmts)
}

// TestSession_AutoCommitEmulation tests the client-side autocommit state
// machine: disable opens a block, commit/rollback closes it, enable after a
// closed block issues nothing.
func TestSession_AutoCommitEmulation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	con := &fakeConn{}
	s := NewSession(con)

	on, err := s.AutoCommit(ctx)
	require.NoError(t, err)
	require.True(t, on)

	// already enabled: no statement
	require.NoError(t, s.SetAutoCommit(ctx, true))
	require.Empty(t, con.stmts)

	require.NoError(t, s.SetAutoCommit(ctx, false))
	require.Equal(t, []string{"BEGIN"}, con.stmts)

	on, err = s.AutoCommit(ctx)
	require.NoError(t, err)
	require.False(t, on)

	require.NoError(t, s.Commit(ctx))
	require.Equal(t, []string{"BEGIN", "COMMIT"}, con.stmts)

	// block already closed: switching back is bookkeeping only
	require.NoError(t, s.SetAutoCommit(ctx, true))
	require.Equal(t, []string{"BEGIN", "COMMIT"}, con.stmts)

	on, err = s.AutoCommit(ctx)
	require.NoError(t, err)
	require.True(t, on)

	// commit without an open block is a no-op
	require.NoError(t, s.Commit(ctx))
	require.NoError(t, s.Rollback(ctx))
	require.Equal(t, []string{"BEGIN", "COMMIT"}, con.stmts)
}

func TestSession_RollbackPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	con := &fakeConn{}
	s := NewSession(con)

	require.NoError(t, s.SetAutoCommit(ctx, false))
	require.NoError(t, s.Rollback(ctx))
	require.Equal(t, []string{"BEGIN", "ROLLBACK"}, con.stmts)
}

// TestSession_DanglingBlock: enabling autocommit with a block still open
// must close the block so it cannot leak into the pool.
func TestSession_DanglingBlock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	con := &fakeConn{}
	s := NewSession(con)

	require.NoError(t, s.SetAutoCommit(ctx, false))
	require.NoError(t, s.SetAutoCommit(ctx, true))
	require.Equal(t, []string{"BEGIN", "ROLLBACK"}, con.stmts)

	on, err := s.AutoCommit(ctx)
	require.NoError(t, err)
	require.True(t, on)
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	require.True(t, Retryable(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	require.True(t, Retryable(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
	require.False(t, Retryable(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	require.False(t, Retryable(errors.New("plain")))
	require.False(t, Retryable(nil))
}

func TestIsConnectionError(t *testing.T) {
	t.Parallel()

	require.True(t, IsConnectionError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure}))
	require.False(t, IsConnectionError(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	require.False(t, IsConnectionError(errors.New("plain")))
}
