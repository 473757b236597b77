package middleware

import (
	"net/http"

	"adrata/internal/modkit/scope"
	pnet "adrata/internal/platform/net"
)

// Attribution headers; clients send these on every request
const (
	HeaderWorkspaceID = "X-Workspace-Id"
	HeaderUserID      = "X-User-Id"
)

// RequestScope copies workspace and user attribution from request headers
// onto the context and the cross boundary scope so repos and the access log
// can read them without touching the transport
func RequestScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ws := r.Header.Get(HeaderWorkspaceID)
			uid := r.Header.Get(HeaderUserID)
			if ws == "" && uid == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if ws != "" {
				ctx = pnet.WithRequest(ctx, "", ws)
			}
			if uid != "" {
				ctx = pnet.WithUser(ctx, uid)
			}
			kv := make(map[string]string, 2)
			if ws != "" {
				kv["workspace_id"] = ws
			}
			if uid != "" {
				kv["user_id"] = uid
			}
			ctx = scope.With(ctx, kv)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
