// Package net carries request identity across context boundaries
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keyWorkspaceID ctxKey = "workspace_id"
	keyUserID      ctxKey = "user_id"
)

// ctxGet reads a string value off ctx, empty when absent or wrong type
func ctxGet(ctx context.Context, key ctxKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// WithRequest annotates ctx with the request and workspace ids.
// The request id goes under chi's key so chimw.GetReqID sees it too
func WithRequest(ctx context.Context, reqID, workspaceID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if workspaceID != "" {
		ctx = context.WithValue(ctx, keyWorkspaceID, workspaceID)
	}
	return ctx
}

// WithUser annotates ctx with the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyUserID, userID)
}

// RequestID returns the request id on ctx, empty if none was assigned
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// WorkspaceID returns the workspace id on ctx if present
func WorkspaceID(ctx context.Context) string {
	return ctxGet(ctx, keyWorkspaceID)
}

// UserID returns the user id on ctx if present
func UserID(ctx context.Context) string {
	return ctxGet(ctx, keyUserID)
}
