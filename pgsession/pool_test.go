package pgsession

import (
	"context"
	"testing"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/n-r-w/testdock/v2"
	"github.com/n-r-w/txbind"
	"github.com/n-r-w/txbind/txmgr"
	"github.com/stretchr/testify/require"
)

// TestPool runs the full override/restore cycle against a real PostgreSQL.
func TestPool(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, informer := testdock.GetPgxPool(t, testdock.DefaultPostgresDSN)

	p := New(
		WithName("test"),
		WithDSN(informer.DSN()),
	)
	require.Equal(t, "test", p.name)

	ctxStart, cancelStart := context.WithTimeout(ctx, 2*time.Second)
	t.Cleanup(cancelStart)
	require.NoError(t, p.Start(ctxStart))
	t.Cleanup(func() { _ = p.Stop(ctx) })

	// session capability set against the live server
	isession, release, err := p.Acquire(ctx)
	require.NoError(t, err)

	level, err := isession.IsolationLevel(ctx)
	require.NoError(t, err)
	require.Equal(t, txbind.LevelReadCommitted, level)

	require.NoError(t, isession.SetIsolationLevel(ctx, txbind.LevelSerializable))

	level, err = isession.IsolationLevel(ctx)
	require.NoError(t, err)
	require.Equal(t, txbind.LevelSerializable, level)

	require.NoError(t, isession.SetIsolationLevel(ctx, txbind.LevelReadCommitted))

	ro, err := isession.ReadOnly(ctx)
	require.NoError(t, err)
	require.False(t, ro)

	require.NoError(t, isession.SetReadOnly(ctx, true))

	ro, err = isession.ReadOnly(ctx)
	require.NoError(t, err)
	require.True(t, ro)

	require.NoError(t, isession.SetReadOnly(ctx, false))
	release()

	// full transaction flow through the manager
	tm := txmgr.New(p, txmgr.WithRetryClassifier(Retryable))

	require.NoError(t, tm.Begin(ctx, func(ctxTr context.Context) error {
		s, ok := txmgr.SessionFromContext(ctxTr)
		require.True(t, ok)

		binding, ok := txmgr.BindingFromContext(ctxTr)
		require.True(t, ok)

		prev, hasPrev := binding.PreviousIsolationLevel()
		require.True(t, hasPrev)
		require.Equal(t, txbind.LevelReadCommitted, prev)
		require.True(t, binding.MustRestoreAutoCommit())

		con, ok := s.(*Session)
		require.True(t, ok)

		_, err = con.Exec(ctxTr, "CREATE TABLE test (id int)")
		require.NoError(t, err)

		_, err = con.Exec(ctxTr, "INSERT INTO test (id) VALUES (1), (2), (3)")
		require.NoError(t, err)

		var ids []int
		require.NoError(t, pgxscan.Select(ctxTr, con, &ids, "SELECT id FROM test ORDER BY id"))
		require.Equal(t, []int{1, 2, 3}, ids)

		return nil
	}, txmgr.WithIsolationLevel(txbind.LevelSerializable)))

	// restoration left the session characteristics as they were
	isession, release, err = p.Acquire(ctx)
	require.NoError(t, err)

	level, err = isession.IsolationLevel(ctx)
	require.NoError(t, err)
	require.Equal(t, txbind.LevelReadCommitted, level)
	release()

	// committed data is visible outside the transaction
	isession, release, err = p.Acquire(ctx)
	require.NoError(t, err)

	con, _ := isession.(*Session)

	var count int
	require.NoError(t, pgxscan.Get(ctx, con, &count, "SELECT count(*) FROM test"))
	require.Equal(t, 3, count)
	release()

	// a read-only transaction reads the data; a write inside it is rejected
	// by the server and the session comes back writable
	require.NoError(t, tm.Begin(ctx, func(ctxTr context.Context) error {
		s, _ := txmgr.SessionFromContext(ctxTr)
		roCon, _ := s.(*Session)

		require.NoError(t, pgxscan.Get(ctxTr, roCon, &count, "SELECT count(*) FROM test"))
		require.Equal(t, 3, count)

		_, err = roCon.Exec(ctxTr, "INSERT INTO test (id) VALUES (4)")
		require.Error(t, err)

		return nil
	}, txmgr.WithReadOnly()))

	isession, release, err = p.Acquire(ctx)
	require.NoError(t, err)

	ro, err = isession.ReadOnly(ctx)
	require.NoError(t, err)
	require.False(t, ro)
	release()
}
