package repokit

import (
	"context"
	"strings"
	"testing"

	"adrata/internal/platform/store"
)

// recQueryer records every call so tests can assert delegation
type recQueryer struct {
	execCalls  int
	queryCalls int
	rowCalls   int

	lastSQL  string
	lastArgs []any
}

func (r *recQueryer) note(sql string, args []any) {
	r.lastSQL = sql
	r.lastArgs = append([]any(nil), args...)
}

func (r *recQueryer) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	r.execCalls++
	r.note(sql, args)
	var zero store.CommandTag
	return zero, nil
}

func (r *recQueryer) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	r.queryCalls++
	r.note(sql, args)
	var zero store.Rows
	return zero, nil
}

func (r *recQueryer) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	r.rowCalls++
	r.note(sql, args)
	var zero store.Row
	return zero
}

var _ Queryer = (*recQueryer)(nil)

// recTxRunner runs fn against q and records Tx calls.
// Non-tx calls delegate to its embedded recorder
type recTxRunner struct {
	recQueryer

	q       Queryer
	txErr   error
	txCalls int
}

func (r *recTxRunner) Tx(_ context.Context, fn func(q Queryer) error) error {
	r.txCalls++
	if fn != nil {
		if err := fn(r.q); err != nil {
			return err
		}
	}
	return r.txErr
}

var _ TxRunner = (*recTxRunner)(nil)

// mustPanicContains runs fn and asserts it panics with wantSub in the message.
// An empty wantSub only asserts that a panic happened
func mustPanicContains(t *testing.T, name, wantSub string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("%s: expected panic, got none", name)
		}
		if wantSub == "" {
			return
		}
		var msg string
		switch x := r.(type) {
		case string:
			msg = x
		case error:
			msg = x.Error()
		}
		if !strings.Contains(msg, wantSub) {
			t.Fatalf("%s: panic message %q does not contain %q", name, msg, wantSub)
		}
	}()
	fn()
}
