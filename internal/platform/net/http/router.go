package http

import "net/http"

// Handler is the handler shape routes take
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount against; chi backs it in production
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Delete(path string, h Handler)

	Handle(pattern string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(prefix string, fn func(Router))

	Mux() http.Handler
}
