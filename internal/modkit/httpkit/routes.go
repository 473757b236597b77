package httpkit

import "net/http"

// MountUnder opens a subrouter at prefix, applies the per-module
// middlewares and hands the subrouter to mount
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
