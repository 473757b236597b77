package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiAdapter adapts chi.Router to the platform Router. The same type serves
// the root mux and every Group/Route subrouter, since *chi.Mux satisfies
// chi.Router and chi.Router satisfies http.Handler
type chiAdapter struct{ r chi.Router }

// AdaptChi wraps a *chi.Mux in the platform Router seam
func AdaptChi(m *chi.Mux) Router { return chiAdapter{r: m} }

func (a chiAdapter) method(verb, p string, h Handler) {
	a.r.Method(verb, p, http.HandlerFunc(h))
}

func (a chiAdapter) Get(p string, h Handler)     { a.method(http.MethodGet, p, h) }
func (a chiAdapter) Post(p string, h Handler)    { a.method(http.MethodPost, p, h) }
func (a chiAdapter) Put(p string, h Handler)     { a.method(http.MethodPut, p, h) }
func (a chiAdapter) Patch(p string, h Handler)   { a.method(http.MethodPatch, p, h) }
func (a chiAdapter) Delete(p string, h Handler)  { a.method(http.MethodDelete, p, h) }
func (a chiAdapter) Head(p string, h Handler)    { a.method(http.MethodHead, p, h) }
func (a chiAdapter) Options(p string, h Handler) { a.method(http.MethodOptions, p, h) }

func (a chiAdapter) Handle(p string, h http.Handler)           { a.r.Handle(p, h) }
func (a chiAdapter) Use(mw ...func(http.Handler) http.Handler) { a.r.Use(mw...) }

func (a chiAdapter) Group(fn func(Router)) {
	a.r.Group(func(sub chi.Router) { fn(chiAdapter{r: sub}) })
}

func (a chiAdapter) Route(pattern string, fn func(Router)) {
	a.r.Route(pattern, func(sub chi.Router) { fn(chiAdapter{r: sub}) })
}

func (a chiAdapter) Mux() http.Handler { return a.r }
