// Package module wires IAC pairing into the API
package module

import (
	"beaconpair/internal/core/beacon/serializer"
	modkit "beaconpair/internal/modkit"
	"beaconpair/internal/modkit/httpkit"

	pairhttp "beaconpair/internal/services/pairing/http"
	psvc "beaconpair/internal/services/pairing/service"
)

// Module is the pairing API module
type Module struct {
	*modkit.Base
	svc psvc.Service
}

// New builds the beacon handler and mounts the IAC endpoints under /iac.
// A Registrar must be injected with modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	base := modkit.NewBase("iac", "/iac", opts...)
	injected, _ := modkit.Injected[Ports](base)
	if injected.Registrar == nil {
		panic("pairing module requires a Registrar port (see RegistrarFrom)")
	}

	cfg := FromConfig(deps.Cfg)
	handler := psvc.NewBeaconHandler(injected.Registrar, serializer.New(), psvc.HandlerOptions{
		Name:         cfg.HandlerName,
		ReadyTimeout: cfg.ReadyTimeout,
	})

	m := &Module{Base: base, svc: psvc.New(handler)}
	m.Routes(func(r httpkit.Router) { pairhttp.Register(r, m.svc) })
	deps.Logger("iac").Debug().
		Str("handler", handler.Name()).
		Dur("ready_timeout", cfg.ReadyTimeout).
		Msg("module built")
	return m
}
