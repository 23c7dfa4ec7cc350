package txbind

import "fmt"

// TxBinding is a per-transaction record that ties a ResourceHolder to the
// logical transaction and tracks the restoration obligations the transaction
// manager incurred when it overrode session settings at begin time:
//
//   - the isolation level that was in effect before the manager changed it
//     (absent when no change was made);
//   - whether autocommit was forcibly disabled and must be re-enabled;
//   - the access mode (read-only flag) that was in effect before the manager
//     changed it (absent when no change was made).
//
// The obligations follow a write-once / consume-once discipline: they are
// written at most once during begin, before any work executes on the session,
// and consumed at most once during completion. Consuming clears the stored
// value, so a second restoration pass is a no-op. Violating the discipline
// is a programming error in the transaction manager and is reported as
// ErrProtocolViolation.
//
// A binding is confined to one execution context; there is no internal
// locking. The transaction manager carries it through an explicit context
// parameter, never through shared state.
type TxBinding struct {
	holder *ResourceHolder

	prevLevel         IsolationLevel
	prevLevelSet      bool
	prevLevelConsumed bool

	restoreAutoCommit  bool
	autoCommitSet      bool
	autoCommitConsumed bool

	prevReadOnly         bool
	prevReadOnlySet      bool
	prevReadOnlyConsumed bool
}

// NewBinding creates a binding with no holder attached. The holder is
// attached later via SetHolder, once the physical session is known.
func NewBinding() *TxBinding {
	return &TxBinding{}
}

// NewBindingFor creates a binding wrapping an already obtained holder.
func NewBindingFor(holder *ResourceHolder) *TxBinding {
	if holder == nil {
		panic("nil holder")
	}

	return &TxBinding{holder: holder}
}

// SetHolder replaces the current holder reference. The holder is borrowed:
// its lifetime is managed by the surrounding transaction manager.
func (b *TxBinding) SetHolder(holder *ResourceHolder) {
	if holder == nil {
		panic("nil holder")
	}

	b.holder = holder
}

// Holder returns the current holder reference, or nil if unset.
func (b *TxBinding) Holder() *ResourceHolder {
	return b.holder
}

// HasHolder returns true if a holder is attached.
func (b *TxBinding) HasHolder() bool {
	return b.holder != nil
}

// SetPreviousIsolationLevel stores the isolation level that was in effect
// before the transaction manager changed it. Called at most once per
// transaction, at begin time. A second call, or a call after the value was
// consumed, returns ErrProtocolViolation: a participating scope must never
// overwrite the obligation owned by the outer scope.
func (b *TxBinding) SetPreviousIsolationLevel(level IsolationLevel) error {
	if b.prevLevelSet || b.prevLevelConsumed {
		return fmt.Errorf("%w: previous isolation level already recorded", ErrProtocolViolation)
	}
	if !level.Valid() {
		return fmt.Errorf("%w: invalid isolation level %d", ErrProtocolViolation, int(level))
	}

	b.prevLevel = level
	b.prevLevelSet = true

	return nil
}

// TakePreviousIsolationLevel returns the recorded pre-transaction isolation
// level and clears it. ok is false when no level was recorded or it was
// already consumed: nothing to restore.
func (b *TxBinding) TakePreviousIsolationLevel() (level IsolationLevel, ok bool) {
	if !b.prevLevelSet {
		return LevelDefault, false
	}

	b.prevLevelSet = false
	b.prevLevelConsumed = true

	return b.prevLevel, true
}

// PreviousIsolationLevel returns the recorded level without consuming it.
func (b *TxBinding) PreviousIsolationLevel() (level IsolationLevel, ok bool) {
	return b.prevLevel, b.prevLevelSet
}

// SetMustRestoreAutoCommit records whether autocommit was forcibly disabled
// and must be re-enabled on completion. Called at most once per transaction,
// at begin time, and only when the manager actually observed autocommit
// enabled before disabling it.
func (b *TxBinding) SetMustRestoreAutoCommit(must bool) error {
	if b.autoCommitSet || b.autoCommitConsumed {
		return fmt.Errorf("%w: autocommit obligation already recorded", ErrProtocolViolation)
	}

	b.restoreAutoCommit = must
	b.autoCommitSet = true

	return nil
}

// TakeMustRestoreAutoCommit returns the autocommit restoration obligation
// and clears it, so a second restoration pass does nothing.
func (b *TxBinding) TakeMustRestoreAutoCommit() bool {
	if !b.autoCommitSet {
		return false
	}

	b.autoCommitSet = false
	b.autoCommitConsumed = true

	return b.restoreAutoCommit
}

// MustRestoreAutoCommit returns the obligation without consuming it.
func (b *TxBinding) MustRestoreAutoCommit() bool {
	return b.autoCommitSet && b.restoreAutoCommit
}

// SetPreviousReadOnly stores the read-only flag that was in effect before
// the transaction manager changed the session access mode. Same write-once
// discipline as SetPreviousIsolationLevel.
func (b *TxBinding) SetPreviousReadOnly(on bool) error {
	if b.prevReadOnlySet || b.prevReadOnlyConsumed {
		return fmt.Errorf("%w: previous access mode already recorded", ErrProtocolViolation)
	}

	b.prevReadOnly = on
	b.prevReadOnlySet = true

	return nil
}

// TakePreviousReadOnly returns the recorded pre-transaction read-only flag
// and clears it. ok is false when no flag was recorded or it was already
// consumed: nothing to restore.
func (b *TxBinding) TakePreviousReadOnly() (on, ok bool) {
	if !b.prevReadOnlySet {
		return false, false
	}

	b.prevReadOnlySet = false
	b.prevReadOnlyConsumed = true

	return b.prevReadOnly, true
}

// PreviousReadOnly returns the recorded flag without consuming it.
func (b *TxBinding) PreviousReadOnly() (on, ok bool) {
	return b.prevReadOnly, b.prevReadOnlySet
}
