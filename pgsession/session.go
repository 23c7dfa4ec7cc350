package pgsession

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	sq "github.com/n-r-w/squirrel"
	"github.com/n-r-w/txbind"
	"github.com/n-r-w/txbind/txmgr"
)

// execQuerier is the subset of pgxpool.Conn used by Session.
type execQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Session adapts a pooled PostgreSQL connection to the txbind session
// capability set.
//
// The isolation level and the access mode are the session characteristics
// (default_transaction_isolation, default_transaction_read_only), changed via
// SET SESSION CHARACTERISTICS and read back from pg_settings.
//
// PostgreSQL has no server-side autocommit switch, so autocommit is emulated
// client-side the way Postgres drivers do: disabling it opens an explicit
// transaction block, enabling it returns the session to per-statement
// transactions. The session tracks the mode locally.
type Session struct {
	con execQuerier

	autoCommit bool
	inTxBlock  bool
}

var _ txmgr.ITxSession = (*Session)(nil)

// NewSession wraps a connection into a Session. A fresh pooled connection
// starts in autocommit mode.
func NewSession(con execQuerier) *Session {
	if con == nil {
		panic("nil connection")
	}

	return &Session{
		con:        con,
		autoCommit: true,
	}
}

// builder creates a query builder with PostgreSQL placeholders.
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// IsolationLevel returns the session isolation level.
func (s *Session) IsolationLevel(ctx context.Context) (txbind.IsolationLevel, error) {
	query, args, err := builder().
		Select("setting").
		From("pg_settings").
		Where(sq.Eq{"name": "default_transaction_isolation"}).
		ToSql()
	if err != nil {
		return txbind.LevelDefault, fmt.Errorf("build settings query: %w", err)
	}

	var setting string
	if err = pgxscan.Get(ctx, s.con, &setting, query, args...); err != nil {
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

	// The level cannot be a bind parameter in SET, but the literal comes
	// from the validated level constant, never from user input.
	stmt := "SET SESSION CHARACTERISTICS AS TRANSACTION ISOLATION LEVEL " + strings.ToUpper(level.String())

	if _, err := s.con.Exec(ctx, stmt); err != nil {
		return classify(fmt.Sprintf("set isolation level %s", level), err)
	}

	return nil
}

// ReadOnly returns true if the session accepts only read-only transactions
// (the default_transaction_read_only session characteristic).
func (s *Session) ReadOnly(ctx context.Context) (bool, error) {
	query, args, err := builder().
		Select("setting").
		From("pg_settings").
		Where(sq.Eq{"name": "default_transaction_read_only"}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build settings query: %w", err)
	}

	var setting string
	if err = pgxscan.Get(ctx, s.con, &setting, query, args...); err != nil {
		return false, fmt.Errorf("failed to read access mode: %w", err)
	}

	return setting == "on", nil
}

// SetReadOnly switches the session access mode.
func (s *Session) SetReadOnly(ctx context.Context, on bool) error {
	stmt := "SET SESSION CHARACTERISTICS AS TRANSACTION READ WRITE"
	if on {
		stmt = "SET SESSION CHARACTERISTICS AS TRANSACTION READ ONLY"
	}

	if _, err := s.con.Exec(ctx, stmt); err != nil {
		return classify("set access mode", err)
	}

	return nil
}

// AutoCommit returns true if the session is in autocommit mode.
func (s *Session) AutoCommit(_ context.Context) (bool, error) {
	return s.autoCommit, nil
}

// SetAutoCommit switches the session autocommit mode.
func (s *Session) SetAutoCommit(ctx context.Context, on bool) error {
	if on == s.autoCommit {
		return nil
	}

	if !on {
		if _, err := s.con.Exec(ctx, "BEGIN"); err != nil {
			return classify("disable autocommit", err)
		}

		s.inTxBlock = true
		s.autoCommit = false

		return nil
	}

	// A transaction block still open at this point would leak into the
	// pool with the connection; close it before switching the mode back.
	if s.inTxBlock {
		if _, err := s.con.Exec(ctx, "ROLLBACK"); err != nil {
			return classify("enable autocommit", err)
		}

		s.inTxBlock = false
	}

	s.autoCommit = true

	return nil
}

// Commit commits the open transaction block. No-op when no block is open:
// in autocommit mode every statement commits itself.
func (s *Session) Commit(ctx context.Context) error {
	if !s.inTxBlock {
		return nil
	}

	// The server ends the block either way.
	s.inTxBlock = false

	if _, err := s.con.Exec(ctx, "COMMIT"); err != nil {
		return classify("commit", err)
	}

	return nil
}

// Rollback rolls back the open transaction block. No-op when no block is open.
func (s *Session) Rollback(ctx context.Context) error {
	if !s.inTxBlock {
		return nil
	}

	s.inTxBlock = false

	if _, err := s.con.Exec(ctx, "ROLLBACK"); err != nil {
		return classify("rollback", err)
	}

	return nil
}

// Exec executes a query on the bound connection without returning data.
func (s *Session) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return s.con.Exec(ctx, sql, arguments...)
}

// Query executes a query on the bound connection and returns the result.
func (s *Session) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.con.Query(ctx, sql, args...)
}

// QueryRow executes a query that should return no more than one row.
func (s *Session) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.con.QueryRow(ctx, sql, args...)
}
