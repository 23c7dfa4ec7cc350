package txmgr

import (
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/n-r-w/txbind"
)

// AccessMode defines the transaction access mode.
type AccessMode int

const (
	// ModeDefault keeps the session's current access mode untouched.
	ModeDefault AccessMode = iota
	// ModeReadWrite requires a read-write session.
	ModeReadWrite
	// ModeReadOnly requires a read-only session.
	ModeReadOnly
)

// String implements fmt.Stringer.
func (m AccessMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeReadWrite:
		return "read write"
	case ModeReadOnly:
		return "read only"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Options represents per-transaction options.
type Options struct {
	// Level defines the transaction isolation level.
	// LevelDefault keeps the session's current level untouched.
	Level txbind.IsolationLevel
	// Mode defines the transaction access mode.
	// ModeDefault keeps the session's current mode untouched.
	Mode AccessMode
	// RollbackOnly starts the transaction already marked for rollback.
	// Work executes, but completion always rolls back.
	RollbackOnly bool
}

// Option transaction option function.
type Option func(*Options)

// WithIsolationLevel sets the transaction isolation level.
func WithIsolationLevel(level txbind.IsolationLevel) Option {
	return func(opts *Options) {
		opts.Level = level
	}
}

// WithAccessMode sets the transaction access mode.
func WithAccessMode(mode AccessMode) Option {
	return func(opts *Options) {
		opts.Mode = mode
	}
}

// WithReadOnly is shorthand for WithAccessMode(ModeReadOnly).
func WithReadOnly() Option {
	return func(opts *Options) {
		opts.Mode = ModeReadOnly
	}
}

// WithRollbackOnly marks the transaction for unconditional rollback.
func WithRollbackOnly() Option {
	return func(opts *Options) {
		opts.RollbackOnly = true
	}
}

// ManagerOption option for TransactionManager.
type ManagerOption func(*TransactionManager)

// WithLogger sets the logger.
func WithLogger(logger txbind.ILogger) ManagerOption {
	return func(m *TransactionManager) {
		m.logger = logger
	}
}

// WithRetryClassifier sets the function BeginWithRetry uses to decide
// whether a failed transaction may succeed on a clean retry
// (e.g. serialization failure, deadlock).
func WithRetryClassifier(f func(error) bool) ManagerOption {
	return func(m *TransactionManager) {
		m.retryClassifier = f
	}
}

// WithRetryOptions sets the backoff policy for BeginWithRetry.
func WithRetryOptions(opts ...backoff.RetryOption) ManagerOption {
	return func(m *TransactionManager) {
		m.retryOptions = opts
	}
}
