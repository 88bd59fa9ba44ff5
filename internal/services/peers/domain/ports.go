package domain

import (
	"context"

	"beaconpair/internal/core/beacon"
)

// ServicePort defines the peer registry contract
type ServicePort interface {
	// Connect marks the registry client as connected and releases waiters, idempotent
	Connect(ctx context.Context) error

	// Connected blocks until the client is connected or ctx ends
	Connected(ctx context.Context) error

	// AddPeer registers the peer behind req, replacing any peer with the same public key
	AddPeer(ctx context.Context, req beacon.PairingRequest) (Peer, error)

	List(ctx context.Context) ([]Peer, error)
	Get(ctx context.Context, id string) (Peer, error)
	Remove(ctx context.Context, id string) error
	Status(ctx context.Context) (Status, error)
}
