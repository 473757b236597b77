package store

import "context"

type (
	workspaceKey  struct{}
	reqIDKey      struct{}
	superadminKey struct{}
)

// lookup reads a string value stored under key; ok is false for both
// missing and empty values so callers treat them the same
func lookup(ctx context.Context, key any) (string, bool) {
	s, _ := ctx.Value(key).(string)
	return s, s != ""
}

// WithWorkspace attaches a workspace id to the context
func WithWorkspace(ctx context.Context, workspaceID string) context.Context {
	return context.WithValue(ctx, workspaceKey{}, workspaceID)
}

// WorkspaceID retrieves the workspace id from ctx if present
func WorkspaceID(ctx context.Context) (string, bool) {
	return lookup(ctx, workspaceKey{})
}

// WithSuperadmin marks the context to bypass RLS via app.superadmin set_config
func WithSuperadmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, superadminKey{}, true)
}

// IsSuperadmin reports if the context has superadmin privileges
func IsSuperadmin(ctx context.Context) bool {
	b, _ := ctx.Value(superadminKey{}).(bool)
	return b
}

// WithRequestID attaches a request id to the context
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reqIDKey{}, id)
}

// RequestID retrieves the request id from ctx if present
func RequestID(ctx context.Context) (string, bool) {
	return lookup(ctx, reqIDKey{})
}
