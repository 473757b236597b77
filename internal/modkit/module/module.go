// Package module defines the minimal contract for a modkit module.
// It sits beside modkit so a module can export its own ports type
// without creating an import knot
package module

import (
	phttp "adrata/internal/platform/net/http"
)

// Module is the minimal contract used by modkit
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}
