package http

import (
	httpSwagger "github.com/swaggo/http-swagger"
)

// MountSwagger serves the generated API docs under /docs when enabled
func MountSwagger(r Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
