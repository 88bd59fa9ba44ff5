// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"beaconpair/internal/platform/config"
	perr "beaconpair/internal/platform/errors"
	"beaconpair/internal/platform/logger"
	phttp "beaconpair/internal/platform/net/http"

	"beaconpair/internal/modkit"
	"beaconpair/internal/modkit/httpkit"
	"beaconpair/internal/modkit/module"
	"beaconpair/internal/modkit/swaggerkit"

	metahttp "beaconpair/internal/services/api/meta/http"
	metamod "beaconpair/internal/services/api/meta/module"
	pairingmod "beaconpair/internal/services/pairing/module"
	peersdom "beaconpair/internal/services/peers/domain"
	peersmod "beaconpair/internal/services/peers/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config, Log: opt.Logger}

	// peers owns the registry the pairing handler registers into
	peers := peersmod.New(deps)
	registry := module.MustPortsOf[peersdom.ServicePort](peers)

	pairing := pairingmod.New(
		deps,
		modkit.WithPorts(pairingmod.Ports{
			Registrar: pairingmod.RegistrarFrom(registry),
		}),
	)

	meta := metamod.New(
		deps,
		modkit.WithPorts(metamod.Ports{
			Checks: []metahttp.Check{{Name: "peers", Pinger: peersReady(registry)}},
		}),
	)

	mods := []module.Module{meta, peers, pairing}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.RequestTimeout,
	})

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}

// peersReady reports ready once the peer client has connected
func peersReady(reg peersdom.ServicePort) metahttp.PingFunc {
	return func(ctx context.Context) error {
		st, err := reg.Status(ctx)
		if err != nil {
			return err
		}
		if !st.Connected {
			return perr.Unavailablef("peer client not connected")
		}
		return nil
	}
}
