package http

import (
	"net/http"

	"adrata/internal/platform/net/http/bind"
)

// finish wraps a handler result into a Response
func finish(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	return OK(out)
}

// JSONHandler adapts a pure JSON handler to a platform Handler
// the request body is decoded and validated into T before fn runs
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return finish(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without parsing a request body
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return finish(fn(r))
	})
}
