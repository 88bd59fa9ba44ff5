// Package module wires the peer registry into the API
package module

import (
	"context"

	modkit "beaconpair/internal/modkit"
	"beaconpair/internal/modkit/httpkit"

	peershttp "beaconpair/internal/services/peers/http"
	"beaconpair/internal/services/peers/repo"
	psvc "beaconpair/internal/services/peers/service"
)

// Module is the peers API module
type Module struct {
	*modkit.Base
	svc psvc.Service
}

// New builds the registry from PEERS_* settings and mounts it under /peers
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	cfg := FromConfig(deps.Cfg)
	svc := psvc.New(repo.NewMemory(), psvc.Config{MaxPeers: cfg.MaxPeers})
	if cfg.AutoConnect {
		_ = svc.Connect(context.Background())
	}

	m := &Module{Base: modkit.NewBase("peers", "/peers", opts...), svc: svc}
	m.Routes(func(r httpkit.Router) { peershttp.Register(r, m.svc) })
	deps.Logger("peers").Debug().
		Bool("autoconnect", cfg.AutoConnect).
		Int("max_peers", cfg.MaxPeers).
		Msg("module built")
	return m
}
