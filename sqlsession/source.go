package sqlsession

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/n-r-w/txbind/txmgr"
)

// Source provides MySQL sessions to the transaction manager from a *sql.DB
// pool. Implements txmgr.ISessionSource.
type Source struct {
	db *sql.DB
}

var _ txmgr.ISessionSource = (*Source)(nil)

// NewSource creates a session source over an opened database handle.
func NewSource(db *sql.DB) *Source {
	if db == nil {
		panic("nil db")
	}

	return &Source{db: db}
}

// Acquire pins a connection from the pool and wraps it as a transaction
// session. The release function returns the connection to the pool; the
// transaction manager calls it only after restoration was attempted.
func (s *Source) Acquire(ctx context.Context) (txmgr.ITxSession, txmgr.ReleaseFunc, error) {
	con, err := s.db.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	return NewSession(con), func() { _ = con.Close() }, nil
}
