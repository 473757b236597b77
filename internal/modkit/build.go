package modkit

import (
	"net/http"

	"adrata/internal/modkit/httpkit"
)

// Built is the flattened result of applying options; modules read its
// fields directly instead of threading buildCfg around
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool

	// router hooks set via options and exposed to modules
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies the options over defaulted hooks and returns the result.
// The middleware slice is copied so later mutation of the caller's slice
// cannot reach into the built module
func Build(opts ...Option) Built {
	c := buildCfg{
		subrouter: func(r httpkit.Router) httpkit.Router { return r },
		register:  func(httpkit.Router) {},
	}
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		SwaggerOn: c.swaggerOn,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}
