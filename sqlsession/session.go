// Package sqlsession provides a database/sql session backend (MySQL) for the
// txbind transaction manager.
//
// MySQL exposes the whole session capability set natively: the autocommit
// system variable, the session transaction isolation level and the session
// transaction access mode. The adapter
// works on a pinned *sql.Conn, so every statement of the transaction runs on
// the same physical connection.
package sqlsession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/n-r-w/txbind"
	"github.com/n-r-w/txbind/txmgr"
)

// IConn is the subset of *sql.Conn used by Session.
type IConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session adapts a pinned MySQL connection to the txbind session capability
// set.
type Session struct {
	con IConn
}

var _ txmgr.ITxSession = (*Session)(nil)

// NewSession wraps a pinned connection into a Session.
func NewSession(con IConn) *Session {
	if con == nil {
		panic("nil connection")
	}

	return &Session{con: con}
}

// IsolationLevel returns the session isolation level.
func (s *Session) IsolationLevel(ctx context.Context) (txbind.IsolationLevel, error) {
	var setting string
	if err := s.con.QueryRowContext(ctx, "SELECT @@session.transaction_isolation").Scan(&setting); err != nil {
		return txbind.LevelDefault, fmt.Errorf("failed to read isolation level: %w", err)
	}

	level, err := txbind.ParseIsolationLevel(setting)
	if err != nil {
		return txbind.LevelDefault, fmt.Errorf("unexpected server setting: %w", err)
	}

	return level, nil
}

// SetIsolationLevel changes the session isolation level.
func (s *Session) SetIsolationLevel(ctx context.Context, level txbind.IsolationLevel) error {
	if level == txbind.LevelDefault || !level.Valid() {
		return txbind.NewConfigError(fmt.Sprintf("unsupported isolation level %s", level), nil)
	}

	// The literal comes from the validated level constant, SET does not
	// take bind parameters.
	stmt := "SET SESSION TRANSACTION ISOLATION LEVEL " + strings.ToUpper(level.String())

	if _, err := s.con.ExecContext(ctx, stmt); err != nil {
		return classify(fmt.Sprintf("set isolation level %s", level), err)
	}

	return nil
}

// ReadOnly returns true if the session accepts only read-only transactions.
func (s *Session) ReadOnly(ctx context.Context) (bool, error) {
	var readOnly int64
	if err := s.con.QueryRowContext(ctx, "SELECT @@session.transaction_read_only").Scan(&readOnly); err != nil {
		return false, fmt.Errorf("failed to read access mode: %w", err)
	}

	return readOnly != 0, nil
}

// SetReadOnly switches the session access mode.
func (s *Session) SetReadOnly(ctx context.Context, on bool) error {
	stmt := "SET SESSION TRANSACTION READ WRITE"
	if on {
		stmt = "SET SESSION TRANSACTION READ ONLY"
	}

	if _, err := s.con.ExecContext(ctx, stmt); err != nil {
		return classify("set access mode", err)
	}

	return nil
}

// AutoCommit returns true if the session is in autocommit mode.
func (s *Session) AutoCommit(ctx context.Context) (bool, error) {
	var autoCommit int64
	if err := s.con.QueryRowContext(ctx, "SELECT @@session.autocommit").Scan(&autoCommit); err != nil {
		return false, fmt.Errorf("failed to read autocommit: %w", err)
	}

	return autoCommit != 0, nil
}

// SetAutoCommit switches the session autocommit mode.
func (s *Session) SetAutoCommit(ctx context.Context, on bool) error {
	stmt := "SET autocommit = 0"
	if on {
		stmt = "SET autocommit = 1"
	}

	if _, err := s.con.ExecContext(ctx, stmt); err != nil {
		return classify("set autocommit", err)
	}

	return nil
}

// Commit commits the transaction open on the session.
func (s *Session) Commit(ctx context.Context) error {
	if _, err := s.con.ExecContext(ctx, "COMMIT"); err != nil {
		return classify("commit", err)
	}

	return nil
}

// Rollback rolls back the transaction open on the session.
func (s *Session) Rollback(ctx context.Context) error {
	if _, err := s.con.ExecContext(ctx, "ROLLBACK"); err != nil {
		return classify("rollback", err)
	}

	return nil
}

// ExecContext executes a query on the bound connection.
func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.con.ExecContext(ctx, query, args...)
}

// QueryRowContext executes a query that should return no more than one row.
func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.con.QueryRowContext(ctx, query, args...)
}

// MySQL error numbers.
// https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errWrongValueForVar = 1231
	errUnknownSystemVar = 1193
	errLockDeadlock     = 1213
	errLockWaitTimeout  = 1205
)

// classify wraps a session configuration rejection into txbind.ConfigError,
// other errors are wrapped as is.
func classify(op string, err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errWrongValueForVar, errUnknownSystemVar:
			return txbind.NewConfigError(op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// Retryable reports whether a transaction that failed with err may succeed
// on a clean retry. Intended for txmgr.WithRetryClassifier.
func Retryable(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == errLockDeadlock || myErr.Number == errLockWaitTimeout
	}

	return false
}
