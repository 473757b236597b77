// Package swaggerkit mounts the Swagger UI and the generated JSON spec
package swaggerkit

import (
	"net/http"

	phttp "adrata/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const docsBase = "/api/docs"

// Mount wires the UI and spec routes onto r when docs are enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	// the UI's relative asset urls need the trailing slash
	r.Get(docsBase, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsBase+"/", http.StatusPermanentRedirect)
	})
	r.Get(docsBase+"/doc.json", serveDocJSON())
	r.Handle(docsBase+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(docsBase+"/doc.json"),
	))
}
