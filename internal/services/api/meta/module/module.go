// Package module mounts the meta endpoints
package module

import (
	"time"

	"beaconpair/internal/core/version"
	modkit "beaconpair/internal/modkit"
	"beaconpair/internal/modkit/httpkit"

	metahttp "beaconpair/internal/services/api/meta/http"
)

// Ports declares the readiness checks injected into the meta module
type Ports struct {
	Checks []metahttp.Check
}

// Module is the meta API module; it exposes no ports
type Module struct {
	*modkit.Base
}

// New mounts health, readiness, version and service info under /meta
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	base := modkit.NewBase("meta", "/meta", opts...)
	injected, _ := modkit.Injected[Ports](base)

	started := time.Now()
	base.Routes(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.ServiceName,
			StartedAt:   started,
			Checks:      injected.Checks,
		})
	})
	return &Module{Base: base}
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
