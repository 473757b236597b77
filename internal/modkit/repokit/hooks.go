package repokit

import "context"

// BeginHook runs at the start of a transaction with the tx-bound Queryer.
// Typical use is priming session state (workspace GUCs) before repo calls
type BeginHook func(ctx context.Context, q Queryer) error

// MidHook is invoked explicitly inside a tx when a step needs it
type MidHook func(ctx context.Context, q Queryer) error

type hookedTx struct {
	inner TxRunner
	hooks []BeginHook
}

// WithBeginHooks wraps a TxRunner so every Tx runs hooks before fn,
// all inside the same transaction
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{inner: inner, hooks: hooks}
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.inner.Tx(ctx, func(q Queryer) error {
		if err := RunMidHooks(ctx, q, h.hooks...); err != nil {
			return err
		}
		return fn(q)
	})
}

// non-tx calls pass straight through to the inner runner

func (h hookedTx) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return h.inner.Exec(ctx, sql, args...)
}

func (h hookedTx) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return h.inner.Query(ctx, sql, args...)
}

func (h hookedTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return h.inner.QueryRow(ctx, sql, args...)
}

// RunMidHooks runs hooks in order against the tx-bound Queryer,
// stopping at the first error
func RunMidHooks[H ~func(context.Context, Queryer) error](ctx context.Context, q Queryer, hooks ...H) error {
	for _, hk := range hooks {
		if err := hk(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
