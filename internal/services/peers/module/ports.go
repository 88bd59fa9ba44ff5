package module

import "beaconpair/internal/services/peers/domain"

// Ports is the cross module surface of the peer registry
type Ports struct {
	Registry domain.ServicePort
}

// Ports implements modkit.Module
func (m *Module) Ports() any { return Ports{Registry: m.svc} }
