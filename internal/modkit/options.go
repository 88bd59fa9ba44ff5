package modkit

import (
	"net/http"

	"beaconpair/internal/modkit/httpkit"
)

// Option adjusts how a module is built
type Option func(*buildCfg)

type buildCfg struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	ports  any
	extra  []func(httpkit.Router)
}

// WithName overrides the module name
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix overrides the route prefix
func WithPrefix(prefix string) Option { return func(c *buildCfg) { c.prefix = prefix } }

// WithMiddlewares appends middleware applied to the module's routes only
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts injects the collaborators a module declares in its own Ports type
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }

// WithRoutes registers extra routes under the module prefix, after the module's own
func WithRoutes(fn func(httpkit.Router)) Option {
	return func(c *buildCfg) { c.extra = append(c.extra, fn) }
}
