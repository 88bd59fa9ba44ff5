package modkit

import (
	"net/http"

	"beaconpair/internal/modkit/httpkit"
	str "beaconpair/internal/platform/strings"
)

// Base is embedded by modules. It carries everything but Ports
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	ports  any
	own    func(httpkit.Router)
	extra  []func(httpkit.Router)
}

// NewBase applies opts over the defaults. It panics on an empty name or a root prefix
func NewBase(name, prefix string, opts ...Option) *Base {
	c := buildCfg{name: name, prefix: prefix}
	for _, o := range opts {
		o(&c)
	}
	return &Base{
		name:   str.MustString(c.name, "module name"),
		prefix: str.MustPrefix(c.prefix),
		mw:     c.mw,
		ports:  c.ports,
		extra:  c.extra,
	}
}

// Routes sets the module's own route registration
func (b *Base) Routes(fn func(httpkit.Router)) { b.own = fn }

// Name implements Module
func (b *Base) Name() string { return b.name }

// Prefix is the normalized route prefix, e.g. "/peers"
func (b *Base) Prefix() string { return b.prefix }

// MountRoutes implements Module
func (b *Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.prefix, b.mw, func(sub httpkit.Router) {
		if b.own != nil {
			b.own(sub)
		}
		for _, fn := range b.extra {
			fn(sub)
		}
	})
}

// Injected returns the ports passed with WithPorts when they have type T
func Injected[T any](b *Base) (T, bool) {
	p, ok := b.ports.(T)
	return p, ok
}
