//go:build swag

package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"adrata/internal/platform/config"

	docs "adrata/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

// mutators is the in process registry for spec mutators
var mutators []SpecMutator

// docReader is a seam so tests can inject invalid JSON without patching swagger
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON parses the generated spec, normalizes it to OAS3 and applies
// the registered mutators before encoding
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		// OAS3 base url lives in servers, not BasePath
		normalizeOAS3(spec, "/api/v1")

		cfg := config.New().Prefix("CORE_API_")
		if suffix := cfg.MayString("DOCS_TITLE_SUFFIX", ""); suffix != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + suffix
				}
			}
		}

		ensureErrorSchema(spec)
		injectDefaultResponse(spec, "500", envelopeResponse(
			"Internal Server Error", 500, 1, "panic recovered"))
		injectDefaultResponse(spec, "400", envelopeResponse(
			"Bad Request", 400, 8, "status must be one of [started stopped]"))

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalizeOAS3 lifts swagger 2 specs to OAS3, downsamples 3.1 (the swagger
// http ui cannot render 3.1 yet) and guarantees a servers array
func normalizeOAS3(spec map[string]any, url string) {
	if _, hasSwagger := spec["swagger"]; hasSwagger {
		spec["openapi"] = "3.0.3"
		delete(spec, "swagger")
	}

	switch v, ok := spec["openapi"].(string); {
	case ok && strings.HasPrefix(v, "3.1"):
		spec["openapi"] = "3.0.3"
	case !ok:
		spec["openapi"] = "3.0.3"
	}

	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// ensureErrorSchema registers the error envelope model if the generated spec
// does not carry one. Kept minimal so it does not drift from the runtime wire
func ensureErrorSchema(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// envelopeResponse builds an OAS3 response node referencing ErrorResponse,
// with an example matching what the runtime actually writes
func envelopeResponse(status string, statusCode, code int, errMsg string) map[string]any {
	return map[string]any{
		"description": status,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": statusCode,
					"status":      status,
					"code":        code,
					"error":       errMsg,
					"request_id":  "3fa2b1c9d04e/oasis-000001",
				},
			},
		},
	}
}

// injectDefaultResponse walks every operation and adds resp under statusCode
// wherever an operation does not already declare one
func injectDefaultResponse(spec map[string]any, statusCode string, resp map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, exists := responses[statusCode]; !exists {
				responses[statusCode] = resp
			}
		}
	}
}
