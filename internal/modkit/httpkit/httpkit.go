// Package httpkit is the slice of the platform http layer that modules build routes with.
// Modules import this instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "beaconpair/internal/platform/net/http"
)

type (
	// Router is the platform router
	Router = phttp.Router

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Response is a return-style handler result
	Response = phttp.Response

	// Envelope is the JSON body every endpoint writes
	Envelope = phttp.Envelope
)

// OK is a 200 carrying data
func OK(data any) Response { return phttp.OK(data) }

// NoContent is a 204
func NoContent() Response { return phttp.NoContent() }

// Error maps err onto its status code when written
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }

// Get mounts fn under GET
func Get(r Router, path string, fn func(*http.Request) (any, error)) { r.Get(path, Call(fn)) }

// Post mounts fn under POST without binding a body
func Post(r Router, path string, fn func(*http.Request) (any, error)) { r.Post(path, Call(fn)) }

// Delete mounts fn under DELETE
func Delete(r Router, path string, fn func(*http.Request) (any, error)) { r.Delete(path, Call(fn)) }

// PostJSON mounts fn under POST. The body is decoded and validated into T before fn runs
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(fn))
}

// Param returns a path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }
