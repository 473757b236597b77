package httpkit

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func mkReq(t *testing.T, method string, body io.Reader) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, "http://x.test/y", body)
	if err != nil {
		t.Fatalf("mkReq: %v", err)
	}
	return req
}

// run executes a Handler and returns status code and body
func run(h Handler, r *http.Request) (int, string) {
	rec := httptest.NewRecorder()
	h(rec, r)
	res := rec.Result()
	defer func() { _ = res.Body.Close() }()

	b, _ := io.ReadAll(res.Body)
	return rec.Code, string(b)
}

func TestAliases_SimpleConstructors(t *testing.T) {
	cases := map[string]Response{
		"OK":        OK("x"),
		"Created":   Created(123),
		"NoContent": NoContent(),
		"Data":      Data("alias"),
		"Error":     Error(errors.New("boom")),
		"List":      List([]int{1, 2, 3}, 3, 1, 50, "c"),
	}
	for name, resp := range cases {
		if reflect.ValueOf(resp).IsZero() {
			t.Fatalf("%s returned zero value", name)
		}
	}
}

func TestHandle_PassesResponseThrough(t *testing.T) {
	h := Handle(func(_ *http.Request) Response {
		return Created("made")
	})
	code, body := run(h, mkReq(t, http.MethodGet, nil))
	if code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, code)
	}
	if !strings.Contains(body, "made") {
		t.Fatalf("expected body to contain %q, got %q", "made", body)
	}
}

func TestCall_WrapsPlainValuesInOK(t *testing.T) {
	h := Call(func(_ *http.Request) (any, error) {
		return map[string]string{"depth": "9"}, nil
	})
	code, body := run(h, mkReq(t, http.MethodGet, nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", code)
	}
	if !strings.Contains(body, `"depth":"9"`) {
		t.Fatalf("expected body to contain depth=9, got %q", body)
	}
}

func TestCall_ResponsePassthrough(t *testing.T) {
	h := Call(func(_ *http.Request) (any, error) {
		return Created("queued"), nil
	})
	code, body := run(h, mkReq(t, http.MethodGet, nil))
	if code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", code)
	}
	if !strings.Contains(body, "queued") {
		t.Fatalf("expected body to contain %q, got %q", "queued", body)
	}
}

func TestCall_ErrorPath(t *testing.T) {
	h := Call(func(_ *http.Request) (any, error) {
		return nil, errors.New("nah")
	})
	code, body := run(h, mkReq(t, http.MethodGet, nil))
	if code < 400 {
		t.Fatalf("expected error status >=400, got %d", code)
	}
	if len(body) == 0 {
		t.Fatal("expected error body, got empty")
	}
}

func TestJSON_DecodesAndWrapsPlainValue(t *testing.T) {
	type in struct {
		Body     string `json:"body"`
		SenderID string `json:"sender_id"`
	}
	payload := in{Body: "quick question on pricing", SenderID: "u-7"}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		t.Fatalf("encode: %v", err)
	}

	h := JSON[in](func(r *http.Request, got in) (any, error) {
		if !reflect.DeepEqual(got, payload) {
			t.Fatalf("decoded mismatch: got %#v want %#v", got, payload)
		}
		return map[string]any{"seen": true, "ua": r.UserAgent()}, nil
	})

	req := mkReq(t, http.MethodPost, buf)
	req.Header.Set("User-Agent", "ua/1")
	code, body := run(h, req)
	if code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", code)
	}
	if !strings.Contains(body, `"seen":true`) {
		t.Fatalf("expected body to contain seen=true, got %q", body)
	}
}

func TestJSON_ResponsePassthrough(t *testing.T) {
	type in struct {
		X string `json:"x"`
	}
	h := JSON[in](func(_ *http.Request, _ in) (any, error) {
		return Created("nice"), nil
	})

	code, gotBody := run(h, mkReq(t, http.MethodPost, strings.NewReader(`{"x":"z"}`)))
	if code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", code)
	}
	if !strings.Contains(gotBody, "nice") {
		t.Fatalf("expected body to contain %q, got %q", "nice", gotBody)
	}
}

func TestJSON_DecodeErrors(t *testing.T) {
	type in struct {
		A int `json:"a"`
	}
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"unknown field", `{"a":1,"b":2}`}, // DisallowUnknownFields is on
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := JSON[in](func(_ *http.Request, _ in) (any, error) {
				t.Fatal("handler should not run on decode error")
				return nil, nil
			})
			code, body := run(h, mkReq(t, http.MethodPost, strings.NewReader(c.body)))
			if code < 400 {
				t.Fatalf("expected error status >=400, got %d", code)
			}
			if len(body) == 0 {
				t.Fatal("expected non-empty error body")
			}
		})
	}
}

func TestJSON_HandlerError(t *testing.T) {
	type in struct {
		A int `json:"a"`
	}
	h := JSON[in](func(_ *http.Request, _ in) (any, error) {
		return nil, errors.New("nope")
	})
	code, body := run(h, mkReq(t, http.MethodPost, strings.NewReader(`{"a":123}`)))
	if code < 400 {
		t.Fatalf("expected error status >=400, got %d", code)
	}
	if len(body) == 0 {
		t.Fatal("expected non-empty error body")
	}
}
