package pgsession

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/n-r-w/txbind"
)

// Helpers for classifying Postgres errors into txbind error kinds.
// https://www.postgresql.org/docs/16/errcodes-appendix.html

// classify wraps a session configuration rejection into txbind.ConfigError,
// other errors are wrapped as is.
func classify(op string, err error) error {
	if pgErr, ok := toPgError(err); ok {
		switch pgErr.Code {
		case pgerrcode.InvalidParameterValue, pgerrcode.FeatureNotSupported, pgerrcode.ActiveSQLTransaction:
			return txbind.NewConfigError(op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// Retryable reports whether a transaction that failed with err may succeed
// on a clean retry. Intended for txmgr.WithRetryClassifier.
func Retryable(err error) bool {
	if pgErr, ok := toPgError(err); ok {
		return pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected
	}

	return false
}

// IsConnectionError checks if the error belongs to the connection exception
// class. Restoration failures with this kind mean the session is unusable
// and should not return to the pool as healthy.
func IsConnectionError(err error) bool {
	if pgErr, ok := toPgError(err); ok {
		return pgerrcode.IsConnectionException(pgErr.Code)
	}

	return false
}

func toPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
