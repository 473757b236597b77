// Package scope carries request-scoped attributes across module boundaries
package scope

import "context"

// Scope holds the attributes that travel with a request,
// workspace and conversation ids mostly
type Scope struct {
	Values map[string]string
}

type ctxKey struct{}

// With returns a child context whose scope is the parent's merged with kv.
// The parent's map is copied so contexts up the chain stay unchanged
func With(ctx context.Context, kv map[string]string) context.Context {
	parent := From(ctx)
	merged := make(map[string]string, len(parent.Values)+len(kv))
	for k, v := range parent.Values {
		merged[k] = v
	}
	for k, v := range kv {
		merged[k] = v
	}
	return context.WithValue(ctx, ctxKey{}, Scope{Values: merged})
}

// Get looks up k in the scope on ctx
func Get(ctx context.Context, k string) (string, bool) {
	v, ok := From(ctx).Values[k]
	return v, ok
}

// From returns the scope on ctx or an empty one; Values is never nil
func From(ctx context.Context) Scope {
	if s, ok := ctx.Value(ctxKey{}).(Scope); ok {
		if s.Values == nil {
			s.Values = make(map[string]string)
		}
		return s
	}
	return Scope{Values: make(map[string]string)}
}
