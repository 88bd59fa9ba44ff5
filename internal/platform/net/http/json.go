package http

import (
	"net/http"

	"beaconpair/internal/platform/net/http/bind"
)

// JSONHandler binds and validates the body into T before fn runs. Bind failures never reach fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return JSONHandlerNoBody(func(r *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}

// JSONHandlerNoBody writes fn's result as a 200 envelope. A Response result is written as is
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
