package store

import (
	"context"
	"errors"
	"testing"
)

// scopedTx captures the context the transaction opens with
type scopedTx struct {
	plainTx
	gotCtx context.Context
	txErr  error
}

func (s *scopedTx) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	s.gotCtx = ctx
	if err := fn(nil); err != nil {
		return err
	}
	return s.txErr
}

func TestRunInWorkspace_ScopesContext(t *testing.T) {
	t.Parallel()

	tx := &scopedTx{}
	var seen string
	err := RunInWorkspace(context.Background(), tx, "ws-acme", func(ctx context.Context, _ RowQuerier) error {
		seen, _ = WorkspaceID(ctx)
		return nil
	})
	if err != nil {
		t.Fatalf("RunInWorkspace: %v", err)
	}
	if seen != "ws-acme" {
		t.Fatalf("fn saw workspace %q, want ws-acme", seen)
	}
	if ws, ok := WorkspaceID(tx.gotCtx); !ok || ws != "ws-acme" {
		t.Fatalf("tx opened with workspace %q ok=%v", ws, ok)
	}
}

func TestRunAsSuperadmin_ScopesContext(t *testing.T) {
	t.Parallel()

	tx := &scopedTx{}
	sawSuper := false
	err := RunAsSuperadmin(context.Background(), tx, func(ctx context.Context, _ RowQuerier) error {
		sawSuper = IsSuperadmin(ctx)
		return nil
	})
	if err != nil {
		t.Fatalf("RunAsSuperadmin: %v", err)
	}
	if !sawSuper || !IsSuperadmin(tx.gotCtx) {
		t.Fatal("superadmin flag did not reach the transaction context")
	}
}

func TestRunScoped_PropagatesErrors(t *testing.T) {
	t.Parallel()

	fnErr := errors.New("outcome insert failed")
	err := RunInWorkspace(context.Background(), &scopedTx{}, "ws-1", func(context.Context, RowQuerier) error {
		return fnErr
	})
	if !errors.Is(err, fnErr) {
		t.Fatalf("error = %v, want %v", err, fnErr)
	}

	commitErr := errors.New("commit failed")
	err = RunAsSuperadmin(context.Background(), &scopedTx{txErr: commitErr}, func(context.Context, RowQuerier) error {
		return nil
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("error = %v, want %v", err, commitErr)
	}
}
