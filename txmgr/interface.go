package txmgr

//go:generate mockgen -source interface.go -destination interface_mock.go -package txmgr

import (
	"context"

	"github.com/n-r-w/txbind"
)

// ITxSession extends the session capability set with transaction completion
// and the session access mode. Implemented in the pgsession and sqlsession
// packages.
type ITxSession interface {
	txbind.ISession

	// ReadOnly returns true if the session accepts only read-only
	// transactions.
	ReadOnly(ctx context.Context) (bool, error)
	// SetReadOnly switches the session access mode.
	SetReadOnly(ctx context.Context, on bool) error

	// Commit commits the transaction open on the session.
	Commit(ctx context.Context) error
	// Rollback rolls back the transaction open on the session.
	Rollback(ctx context.Context) error
}

// ReleaseFunc returns a session to its source. Called exactly once per
// acquired session, after restoration has been attempted.
type ReleaseFunc func()

// ISessionSource provides sessions to the transaction manager.
// Implemented in the pgsession and sqlsession packages.
type ISessionSource interface {
	// Acquire obtains a session for the duration of one transaction.
	Acquire(ctx context.Context) (ITxSession, ReleaseFunc, error)
}
