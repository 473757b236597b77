// Package repokit is the shared vocabulary between services and their
// repos: the SQL surface, binding, transactions and boot guards
package repokit

import (
	"context"

	"adrata/internal/platform/store"
)

// Aliases over the store seams so repo packages never import the store
// facade directly
type (
	// Queryer is the minimal read and write surface for SQL repos
	Queryer = store.RowQuerier

	// RowQuerier is the same surface under the store's name
	RowQuerier = store.RowQuerier

	// TxRunner can execute a function inside a transaction
	TxRunner = store.TxRunner

	// Rows is the result set of a query
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// CommandTag reports what a write statement did
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
