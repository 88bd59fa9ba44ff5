package module

import (
	"context"

	"beaconpair/internal/core/beacon"
	"beaconpair/internal/services/pairing/domain"
	peersdom "beaconpair/internal/services/peers/domain"
)

// Ports declares the injected collaborator this module requires
type Ports struct {
	Registrar domain.RegistrarPort
}

// Ports returns the pairing service for cross module use
func (m *Module) Ports() any { return m.svc }

// RegistrarFrom adapts the peer registry to the registrar port
func RegistrarFrom(reg peersdom.ServicePort) domain.RegistrarPort {
	if reg == nil {
		return nil
	}
	return registrar{reg: reg}
}

type registrar struct{ reg peersdom.ServicePort }

func (r registrar) Connected(ctx context.Context) error { return r.reg.Connected(ctx) }

func (r registrar) AddPeer(ctx context.Context, req beacon.PairingRequest) error {
	_, err := r.reg.AddPeer(ctx, req)
	return err
}
