package httpkit

import (
	"net/http"
	"testing"

	phttp "adrata/internal/platform/net/http"
)

// routeRec is one captured registration
type routeRec struct {
	verb string
	path string
	h    phttp.Handler
}

// recordingRouter satisfies the platform Router surface and records
// every verb + path + handler it sees. routes_test and versioning_test
// reuse it for prefix and middleware assertions
type recordingRouter struct {
	recs      []routeRec
	prefixes  []string
	useCalls  int
	lastMWLen int
}

func (f *recordingRouter) add(verb, path string, h phttp.Handler) {
	f.recs = append(f.recs, routeRec{verb: verb, path: path, h: h})
}

func (f *recordingRouter) Route(prefix string, fn func(Router)) {
	f.prefixes = append(f.prefixes, prefix)
	fn(f) // pass itself as the subrouter
}

func (f *recordingRouter) Group(fn func(Router)) { fn(f) }
func (f *recordingRouter) Use(mw ...func(http.Handler) http.Handler) {
	f.useCalls++
	f.lastMWLen = len(mw)
}
func (f *recordingRouter) Mux() http.Handler                    { return http.NewServeMux() }
func (f *recordingRouter) Handle(string, http.Handler)          {}
func (f *recordingRouter) Get(path string, h phttp.Handler)     { f.add("GET", path, h) }
func (f *recordingRouter) Post(path string, h phttp.Handler)    { f.add("POST", path, h) }
func (f *recordingRouter) Put(path string, h phttp.Handler)     { f.add("PUT", path, h) }
func (f *recordingRouter) Patch(path string, h phttp.Handler)   { f.add("PATCH", path, h) }
func (f *recordingRouter) Delete(path string, h phttp.Handler)  { f.add("DELETE", path, h) }
func (f *recordingRouter) Options(path string, h phttp.Handler) { f.add("OPTIONS", path, h) }
func (f *recordingRouter) Head(path string, h phttp.Handler)    { f.add("HEAD", path, h) }

// assertSingle checks the router captured exactly one registration
func assertSingle(t *testing.T, r *recordingRouter, verb, path string) {
	t.Helper()
	if len(r.recs) != 1 {
		t.Fatalf("expected 1 registration, got %d", len(r.recs))
	}
	rec := r.recs[0]
	if rec.verb != verb || rec.path != path {
		t.Fatalf("expected %s %s, got %s %s", verb, path, rec.verb, rec.path)
	}
	if rec.h == nil {
		t.Fatalf("expected non-nil handler")
	}
}

func TestJSONSugar_MountsUnderEachVerb(t *testing.T) {
	type req struct{ A int }
	ok := func(_ *http.Request, _ req) (any, error) { return "ok", nil }

	cases := []struct {
		verb  string
		path  string
		mount func(r Router)
	}{
		{"GET", "/typing/active", func(r Router) { GetJSON[req](r, "/typing/active", ok) }},
		{"POST", "/messages", func(r Router) { PostJSON[req](r, "/messages", ok) }},
		{"PUT", "/leads", func(r Router) { PutJSON[req](r, "/leads", ok) }},
		{"PATCH", "/leads", func(r Router) { PatchJSON[req](r, "/leads", ok) }},
		{"DELETE", "/conversations", func(r Router) { DeleteJSON[req](r, "/conversations", ok) }},
		{"OPTIONS", "/send", func(r Router) { OptionsJSON[req](r, "/send", ok) }},
	}
	for _, c := range cases {
		t.Run(c.verb, func(t *testing.T) {
			r := &recordingRouter{}
			c.mount(r)
			assertSingle(t, r, c.verb, c.path)
		})
	}
}

func TestBodylessSugar_MountsUnderEachVerb(t *testing.T) {
	ok := func(_ *http.Request) (any, error) { return "ok", nil }

	cases := []struct {
		verb  string
		path  string
		mount func(r Router)
	}{
		{"GET", "/health", func(r Router) { Get(r, "/health", ok) }},
		{"POST", "/typing/stop", func(r Router) { Post(r, "/typing/stop", ok) }},
		{"PUT", "/flags", func(r Router) { Put(r, "/flags", ok) }},
		{"PATCH", "/flags", func(r Router) { Patch(r, "/flags", ok) }},
		{"DELETE", "/sessions", func(r Router) { Delete(r, "/sessions", ok) }},
		{"OPTIONS", "/sessions", func(r Router) { Options(r, "/sessions", ok) }},
	}
	for _, c := range cases {
		t.Run(c.verb, func(t *testing.T) {
			r := &recordingRouter{}
			c.mount(r)
			assertSingle(t, r, c.verb, c.path)
		})
	}
}
