package txbind

import (
	"errors"
	"fmt"
)

// ErrProtocolViolation reports misuse of the binding contract by the
// transaction manager: writing an obligation twice, writing after it was
// consumed, or releasing a holder more times than it was requested.
// This is a programming error, not a runtime condition.
var ErrProtocolViolation = errors.New("binding protocol violation")

// ConfigError reports an attempt to configure a session with parameters it
// does not support, or a nested transaction requesting settings that
// conflict with the outer transaction. Surfaced at begin time: the
// transaction does not start.
type ConfigError struct {
	Reason string
	Err    error
}

// NewConfigError creates a ConfigError. err is optional.
func NewConfigError(reason string, err error) *ConfigError {
	return &ConfigError{Reason: reason, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Err == nil {
		return "configuration: " + e.Reason
	}

	return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RestoreError reports a failure while resetting a session setting during
// transaction completion. It is never swallowed: if commit or rollback also
// failed, both are surfaced through CompletionError.
type RestoreError struct {
	Setting string // "autocommit" or "isolation level"
	Err     error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore %s: %v", e.Setting, e.Err)
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// CompletionError combines a commit/rollback failure with a session
// restoration failure when both occur during completion of the same
// transaction. The primary cause stays distinguishable from the cleanup
// cause: Err carries the commit/rollback failure, RestoreErr the
// restoration failure. Both participate in errors.Is/errors.As chains.
type CompletionError struct {
	Op         string // "begin", "commit" or "rollback"
	Err        error
	RestoreErr error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s: %v (restoration: %v)", e.Op, e.Err, e.RestoreErr)
}

func (e *CompletionError) Unwrap() []error {
	return []error{e.Err, e.RestoreErr}
}

// IsConfigError checks if the error is a session configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsRestoreError checks if the error is a session restoration error.
func IsRestoreError(err error) bool {
	var re *RestoreError
	return errors.As(err, &re)
}

// IsProtocolViolation checks if the error is a binding contract violation.
func IsProtocolViolation(err error) bool {
	return errors.Is(err, ErrProtocolViolation)
}
