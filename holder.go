package txbind

// ResourceHolder wraps a single physical session together with usage
// bookkeeping, so the same session can be shared across nested operations
// within one transaction scope. The holder owns the wrapped session while
// bound; the session goes back to its pool only when the surrounding
// transaction manager discards the holder.
//
// A holder is confined to one execution context and is not safe for
// concurrent use. The transaction manager keeps it reachable only through
// the context of the transaction it belongs to.
type ResourceHolder struct {
	session      ISession
	isNew        bool
	refCount     int
	rollbackOnly bool
}

// NewHolder creates a holder for a session freshly obtained by the
// transaction manager.
func NewHolder(session ISession) *ResourceHolder {
	if session == nil {
		panic("nil session")
	}

	return &ResourceHolder{
		session: session,
		isNew:   true,
	}
}

// NewExternalHolder creates a holder for a pre-existing, externally supplied
// session (for example, one already participating in an outer transaction).
func NewExternalHolder(session ISession) *ResourceHolder {
	if session == nil {
		panic("nil session")
	}

	return &ResourceHolder{
		session: session,
		isNew:   false,
	}
}

// Session returns the wrapped session.
func (h *ResourceHolder) Session() ISession {
	return h.session
}

// SetSession replaces the wrapped session. Used when the transaction manager
// rebinds the holder to a fresh session.
func (h *ResourceHolder) SetSession(session ISession) {
	if session == nil {
		panic("nil session")
	}

	h.session = session
}

// IsNew returns true if the holder was created by the transaction manager
// rather than supplied externally.
func (h *ResourceHolder) IsNew() bool {
	return h.isNew
}

// Requested increments the usage count. Called when a transactional scope
// starts using the held session.
func (h *ResourceHolder) Requested() {
	h.refCount++
}

// Released decrements the usage count. Called when a transactional scope
// stops using the held session.
func (h *ResourceHolder) Released() {
	if h.refCount == 0 {
		panic("released more times than requested")
	}

	h.refCount--
}

// InUse returns true while at least one scope uses the held session.
func (h *ResourceHolder) InUse() bool {
	return h.refCount > 0
}

// SetRollbackOnly marks the current transaction for rollback.
// A nested scope may set this to veto the outer commit.
func (h *ResourceHolder) SetRollbackOnly() {
	h.rollbackOnly = true
}

// RollbackOnly returns true if the transaction was marked for rollback.
func (h *ResourceHolder) RollbackOnly() bool {
	return h.rollbackOnly
}

// Reset clears the bookkeeping state, keeping the wrapped session.
func (h *ResourceHolder) Reset() {
	h.refCount = 0
	h.rollbackOnly = false
}
