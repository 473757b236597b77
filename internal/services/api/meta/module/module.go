// Package module mounts the operational endpoints (health, readiness,
// version, service info) every deployment carries
package module

import (
	"net/http"
	"time"

	"adrata/internal/modkit"
	"adrata/internal/modkit/httpkit"
	str "adrata/internal/platform/strings"

	metahttp "adrata/internal/services/api/meta/http"
)

// Module is the meta module. Unlike the product modules it owns no
// service layer; the handlers read straight from the deps bundle
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	mount  func(httpkit.Router)
}

// New builds the meta module; options can move the prefix or stack middleware
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	// uptime is measured from module construction, not first request
	started := time.Now()

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		mount: func(r httpkit.Router) {
			metahttp.Register(b.Subrouter(r), metahttp.Deps{
				ServiceName: "adrata-oasis",
				StartedAt:   started,
				PG:          deps.PG,
			})
			b.Register(r)
		},
	}
}

// MountRoutes attaches the meta routes under the module prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		m.mount(rr)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix reports where the module is mounted
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface; meta exposes none
func (m *Module) Ports() any { return nil }
