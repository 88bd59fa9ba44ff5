// Package domain holds the pairing types and ports
package domain

import (
	"context"

	"beaconpair/internal/core/beacon"
	"beaconpair/internal/core/iac"
)

// RegistrarPort is what the pairing handler needs from the peer registry
type RegistrarPort interface {
	// Connected blocks until the peer client is connected or ctx ends
	Connected(ctx context.Context) error

	// AddPeer registers the peer described by req
	AddPeer(ctx context.Context, req beacon.PairingRequest) error
}

// ServicePort is the contract the pairing transport consumes
type ServicePort interface {
	Receive(ctx context.Context, in ReceiveInput) (iac.Outcome, error)
	Handlers(ctx context.Context) []HandlerInfo
}
