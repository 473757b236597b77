package store

import "context"

// RunInWorkspace opens a transaction scoped to workspaceID. The scoped ctx
// is what fn receives, so GUC-setting hooks and any nested calls see it
func RunInWorkspace(ctx context.Context, tx TxRunner, workspaceID string, fn func(ctx context.Context, q RowQuerier) error) error {
	return runScoped(WithWorkspace(ctx, workspaceID), tx, fn)
}

// RunAsSuperadmin opens a transaction that bypasses row level security
func RunAsSuperadmin(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	return runScoped(WithSuperadmin(ctx), tx, fn)
}

func runScoped(ctx context.Context, tx TxRunner, fn func(context.Context, RowQuerier) error) error {
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
