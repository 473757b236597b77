package modkit

import (
	phttp "adrata/internal/platform/net/http"
)

// Module is what every API module exposes to the composition root.
// Kept tiny on purpose so modules stay decoupled from each other
type Module interface {
	// Name identifies the module in logs and the registry
	Name() string

	// MountRoutes attaches the module's HTTP routes to the router seam
	MountRoutes(r phttp.Router)

	// Ports returns the module's cross-wiring surface; concrete type is
	// owned by the module that declares it
	Ports() any
}

// Builder is the conventional constructor shape: New(deps, opts...) Module
type Builder func(Deps, ...Option) Module
