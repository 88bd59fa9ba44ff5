package http

import (
	stdhttp "net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under prefix, e.g. /debug/pprof/, when enabled
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	h := stdhttp.StripPrefix(prefix, middleware.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
}
