//go:build !swag

package swaggerkit

import "net/http"

// skeleton keeps the UI loadable in builds without generated docs
const skeleton = `{"openapi":"3.0.3","info":{"title":"Adrata API","version":"0.0.0"},"paths":{}}`

var docReader = func() string { return skeleton }

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}
