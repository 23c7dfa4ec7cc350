// Package txmgr implements a backend-agnostic transaction manager on top of
// the txbind binding contract: it acquires a session from a source, overrides
// session settings as requested, runs the transactional function and
// guarantees that every overridden setting is restored exactly once before
// the session goes back to its source, whatever the exit path.
package txmgr

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/n-r-w/txbind"
)

// TransactionManager handles transactions over sessions from an
// ISessionSource.
type TransactionManager struct {
	source ISessionSource

	logger          txbind.ILogger
	retryClassifier func(error) bool
	retryOptions    []backoff.RetryOption
}

// New creates a new TransactionManager.
func New(source ISessionSource, opt ...ManagerOption) *TransactionManager {
	m := &TransactionManager{
		source: source,
	}

	for _, o := range opt {
		o(m)
	}

	return m
}

// Begin starts a transaction and executes f within it. If a transaction is
// already active in ctx, f joins it as a participating scope: the session
// is not touched and completion stays with the outermost scope. A
// participating Begin requesting an isolation level or access mode different
// from the outer transaction fails with a configuration error.
//
// On return from f the transaction is committed (nil error) or rolled back,
// and the session settings overridden at begin time are restored. The
// session returns to its source only after restoration has been attempted.
func (m *TransactionManager) Begin(ctx context.Context, f func(ctxTr context.Context) error, opts ...Option) error {
	tmOpts := Options{}
	for _, opt := range opts {
		opt(&tmOpts)
	}

	if s, ok := scopeFromContext(ctx); ok { // transaction is already started
		// The inner scope cannot change the isolation level or the access
		// mode of a running transaction.
		if tmOpts.Level != txbind.LevelDefault && tmOpts.Level != s.opts.Level {
			return txbind.NewConfigError(
				fmt.Sprintf("isolation level mismatch: %s != %s", s.opts.Level, tmOpts.Level), nil)
		}

		if tmOpts.Mode != ModeDefault && tmOpts.Mode != s.opts.Mode {
			return txbind.NewConfigError(
				fmt.Sprintf("access mode mismatch: %s != %s", s.opts.Mode, tmOpts.Mode), nil)
		}

		if tmOpts.RollbackOnly {
			s.binding.Holder().SetRollbackOnly()
		}

		m.logf(ctx, "joining active transaction")

		// just execute the function
		return f(ctx)
	}

	return m.beginOuter(ctx, f, tmOpts)
}

// BeginWithRetry behaves like Begin, retrying the whole transaction when the
// configured classifier reports the failure as transient. Without a
// classifier it is equivalent to Begin.
func (m *TransactionManager) BeginWithRetry(ctx context.Context, f func(ctxTr context.Context) error, opts ...Option) error {
	if m.retryClassifier == nil {
		return m.Begin(ctx, f, opts...)
	}

	operation := func() (struct{}, error) {
		err := m.Begin(ctx, f, opts...)
		if err != nil && !m.retryClassifier(err) {
			return struct{}{}, backoff.Permanent(err)
		}

		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation, m.retryOptions...)

	return err
}

// WithoutTransaction returns context without a transaction.
func (m *TransactionManager) WithoutTransaction(ctx context.Context) context.Context {
	return WithoutTransaction(ctx)
}

func (m *TransactionManager) beginOuter(ctx context.Context, f func(ctxTr context.Context) error, opts Options) (err error) {
	session, release, err := m.source.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire session: %w", err)
	}

	holder := txbind.NewHolder(session)
	holder.Requested()
	binding := txbind.NewBindingFor(holder)

	// The session goes back to its source only after restoration has been
	// attempted on every path below.
	defer func() {
		holder.Released()
		release()
	}()

	// If panic occurs, roll back, restore session state and re-throw.
	defer func() {
		if rec := recover(); rec != nil {
			_ = session.Rollback(ctx)
			_ = RestoreSession(ctx, binding, session)
			panic(rec)
		}
	}()

	if err = m.prepareSession(ctx, binding, session, opts); err != nil {
		// A partially prepared session still carries recorded obligations.
		if restoreErr := RestoreSession(ctx, binding, session); restoreErr != nil {
			return &txbind.CompletionError{Op: "begin", Err: err, RestoreErr: restoreErr}
		}

		return err
	}

	if opts.RollbackOnly {
		holder.SetRollbackOnly()
	}

	m.logf(ctx, "transaction started: level=%s, mode=%s", opts.Level, opts.Mode)

	fErr := f(newScope(m, binding, session, opts).toContext(ctx))

	return m.complete(ctx, binding, session, holder, fErr)
}

// prepareSession reads the current session state and applies the requested
// overrides, recording into the binding exactly what was changed. All reads
// happen before any mutation, so the recorded pre-transaction state cannot
// be skewed by the manager's own changes.
func (m *TransactionManager) prepareSession(
	ctx context.Context, binding *txbind.TxBinding, session ITxSession, opts Options,
) error {
	var (
		currentLevel txbind.IsolationLevel
		readOnly     bool
		err          error
	)

	if opts.Level != txbind.LevelDefault {
		if currentLevel, err = session.IsolationLevel(ctx); err != nil {
			return fmt.Errorf("failed to read isolation level: %w", err)
		}
	}

	autoCommit, err := session.AutoCommit(ctx)
	if err != nil {
		return fmt.Errorf("failed to read autocommit: %w", err)
	}

	if opts.Mode != ModeDefault {
		if readOnly, err = session.ReadOnly(ctx); err != nil {
			return fmt.Errorf("failed to read access mode: %w", err)
		}
	}

	if opts.Level != txbind.LevelDefault && currentLevel != opts.Level {
		if err = binding.SetPreviousIsolationLevel(currentLevel); err != nil {
			return err
		}

		if err = session.SetIsolationLevel(ctx, opts.Level); err != nil {
			return fmt.Errorf("failed to set isolation level %s: %w", opts.Level, err)
		}

		m.logf(ctx, "isolation level changed: %s -> %s", currentLevel, opts.Level)
	}

	if wantReadOnly := opts.Mode == ModeReadOnly; opts.Mode != ModeDefault && readOnly != wantReadOnly {
		if err = binding.SetPreviousReadOnly(readOnly); err != nil {
			return err
		}

		if err = session.SetReadOnly(ctx, wantReadOnly); err != nil {
			return fmt.Errorf("failed to set access mode %s: %w", opts.Mode, err)
		}

		m.logf(ctx, "access mode changed: %s", opts.Mode)
	}

	// Autocommit is disabled only when observed enabled. A session already
	// running without autocommit belongs to an externally managed
	// transaction and is left alone. It goes last: a backend that opens a
	// transaction block here must see the level and mode already in place.
	if autoCommit {
		if err = session.SetAutoCommit(ctx, false); err != nil {
			return fmt.Errorf("failed to disable autocommit: %w", err)
		}

		if err = binding.SetMustRestoreAutoCommit(true); err != nil {
			return err
		}
	}

	return nil
}

// complete finishes the transaction: commit or rollback, then unconditional
// restoration, then error composition. Restoration runs even when commit or
// rollback failed.
func (m *TransactionManager) complete(
	ctx context.Context, binding *txbind.TxBinding, session ITxSession, holder *txbind.ResourceHolder, fErr error,
) error {
	var (
		opName string
		opErr  error
	)

	if fErr != nil || holder.RollbackOnly() {
		opName = "rollback"
		opErr = session.Rollback(ctx)
	} else {
		opName = "commit"
		opErr = session.Commit(ctx)
	}

	restoreErr := RestoreSession(ctx, binding, session)

	primary := fErr
	if opErr != nil {
		if primary != nil {
			primary = fmt.Errorf("%w (%s error: %v)", primary, opName, opErr) //nolint:errorlint // ok for 2 errors
		} else {
			primary = fmt.Errorf("%s failed: %w", opName, opErr)
		}
	}

	switch {
	case primary != nil && restoreErr != nil:
		return &txbind.CompletionError{Op: opName, Err: primary, RestoreErr: restoreErr}
	case restoreErr != nil:
		return restoreErr
	default:
		if primary == nil {
			m.logf(ctx, "transaction finished: %s", opName)
		}

		return primary
	}
}

// RestoreSession re-applies the session settings recorded in the binding:
// re-enables autocommit if the obligation was taken, then resets the access
// mode and the isolation level if previous values were recorded. Each
// obligation is consumed on first use, so a second call is a no-op. Settings
// that were never overridden are not touched: a participating scope may
// still own them.
func RestoreSession(ctx context.Context, binding *txbind.TxBinding, session ITxSession) error {
	var errs []error

	// Autocommit goes first: it closes any transaction block still open on
	// the session, so the characteristic resets below apply to the session
	// itself.
	if binding.TakeMustRestoreAutoCommit() {
		if err := session.SetAutoCommit(ctx, true); err != nil {
			errs = append(errs, &txbind.RestoreError{Setting: "autocommit", Err: err})
		}
	}

	if on, ok := binding.TakePreviousReadOnly(); ok {
		if err := session.SetReadOnly(ctx, on); err != nil {
			errs = append(errs, &txbind.RestoreError{Setting: "access mode", Err: err})
		}
	}

	if level, ok := binding.TakePreviousIsolationLevel(); ok {
		if err := session.SetIsolationLevel(ctx, level); err != nil {
			errs = append(errs, &txbind.RestoreError{Setting: "isolation level", Err: err})
		}
	}

	return errors.Join(errs...)
}

func (m *TransactionManager) logf(ctx context.Context, format string, args ...any) {
	if m.logger != nil {
		m.logger.Debugf(ctx, format, args...)
	}
}
