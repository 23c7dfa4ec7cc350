package txbind

import "context"

// ISession is the capability set a bound resource must expose to be managed
// by a transaction binding: reading and writing the session isolation level
// and the autocommit mode. Any connection-like handle exposing these four
// operations can be bound, the binding treats it as opaque otherwise.
type ISession interface {
	// IsolationLevel returns the isolation level currently in effect.
	IsolationLevel(ctx context.Context) (IsolationLevel, error)
	// SetIsolationLevel changes the session isolation level.
	SetIsolationLevel(ctx context.Context, level IsolationLevel) error
	// AutoCommit returns true if the session is in autocommit mode.
	AutoCommit(ctx context.Context) (bool, error)
	// SetAutoCommit switches the session autocommit mode.
	SetAutoCommit(ctx context.Context, on bool) error
}
