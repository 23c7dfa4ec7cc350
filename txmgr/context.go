package txmgr

import (
	"context"

	"github.com/n-r-w/txbind"
)

type scopeKeyType int

// scopeKey key for storing the transaction scope in context.
const scopeKey scopeKeyType = 0

// scope ties the binding, the bound session and the transaction options to
// one logical transaction. Carried through context instead of thread-local
// storage, so ownership is visible at every call site.
type scope struct {
	mgr     *TransactionManager
	binding *txbind.TxBinding
	session ITxSession
	opts    Options
}

func newScope(mgr *TransactionManager, binding *txbind.TxBinding, session ITxSession, opts Options) *scope {
	if mgr == nil || binding == nil || session == nil {
		panic("invalid arguments") // just in case
	}

	return &scope{
		mgr:     mgr,
		binding: binding,
		session: session,
		opts:    opts,
	}
}

// toContext puts the scope in context.
func (s *scope) toContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey, s)
}

// removeFromContext removes the scope from context.
func (s *scope) removeFromContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey, nil)
}

// scopeFromContext extracts the scope from context.
func scopeFromContext(ctx context.Context) (*scope, bool) {
	s, ok := ctx.Value(scopeKey).(*scope)

	if !ok || s == nil {
		return nil, false
	}

	return s, true
}

// BindingFromContext returns the binding of the transaction active in ctx.
func BindingFromContext(ctx context.Context) (*txbind.TxBinding, bool) {
	s, ok := scopeFromContext(ctx)
	if !ok {
		return nil, false
	}

	return s.binding, true
}

// SessionFromContext returns the session bound to the transaction active in
// ctx. Participating scopes get the session of the outermost transaction.
func SessionFromContext(ctx context.Context) (ITxSession, bool) {
	s, ok := scopeFromContext(ctx)
	if !ok {
		return nil, false
	}

	return s.session, true
}

// InTransaction returns true if a transaction is active in ctx.
func InTransaction(ctx context.Context) bool {
	_, ok := scopeFromContext(ctx)
	return ok
}

// TransactionOptions returns the options of the transaction active in ctx.
// Zero value if no transaction is active.
func TransactionOptions(ctx context.Context) Options {
	s, ok := scopeFromContext(ctx)
	if !ok {
		return Options{}
	}

	return s.opts
}

// WithoutTransaction returns context without a transaction.
func WithoutTransaction(ctx context.Context) context.Context {
	s, ok := scopeFromContext(ctx)
	if !ok {
		return ctx
	}

	return s.removeFromContext(ctx)
}
