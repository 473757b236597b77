// Package module wires Oasis messaging into the API using modkit
package module

import (
	"net/http"

	modkit "adrata/internal/modkit"
	"adrata/internal/modkit/httpkit"
	str "adrata/internal/platform/strings"

	oasishttp "adrata/internal/services/api/oasis/http"
	dom "adrata/internal/services/oasis/domain"
)

// Ports declares the required injected worker port(s) for this API module
type Ports struct {
	Messaging dom.MessagingPort
	Typing    dom.TypingPort
}

// Module implements the oasis API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the oasis API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	// the worker module already owns the "oasis" registry slot; this module
	// publishes under its own name so neither replaces the other
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("oasis-api"),
		modkit.WithPrefix("/oasis"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Messaging == nil || injected.Typing == nil {
		panic("oasis API module requires Messaging and Typing ports (from services/oasis)")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		ports:     injected,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		oasishttp.Register(r, injected.Messaging, injected.Typing)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
