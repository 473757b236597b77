// Package module wires outreach into the API using modkit
package module

import (
	"net/http"

	"adrata/internal/adapters/mail"
	modkit "adrata/internal/modkit"
	"adrata/internal/modkit/httpkit"
	str "adrata/internal/platform/strings"

	orhttp "adrata/internal/services/api/outreach/http"
	orrepo "adrata/internal/services/outreach/repo"
	orsvc "adrata/internal/services/outreach/service"
)

// Module implements the outreach module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc orsvc.Service
}

// New constructs the outreach module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("outreach"),
		modkit.WithPrefix("/outreach"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)
	primary := senderFor(cfg.Primary, cfg)
	fallback := senderFor(cfg.Fallback, cfg)

	svc := orsvc.New(deps.PG, orrepo.NewPG(), primary, fallback)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptSendPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		orhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// senderFor maps a provider name to a configured client
// unknown or empty names yield nil so the service can skip the slot
func senderFor(name string, cfg Options) mail.Sender {
	switch name {
	case "resend":
		return mail.NewResend(mail.ResendOptions{APIKey: cfg.ResendAPIKey})
	case "sendgrid":
		return mail.NewSendgrid(mail.SendgridOptions{APIKey: cfg.SendgridAPIKey})
	default:
		return nil
	}
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
