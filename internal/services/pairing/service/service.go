// Package service contains the pairing workflows: the beacon IAC handler and
// the dispatcher that offers inbound payloads to it
package service

import (
	"context"

	"beaconpair/internal/core/iac"
	"beaconpair/internal/services/pairing/domain"
)

// Service defines the service contract for pairing
type Service interface{ domain.ServicePort }

// Svc implements the Service interface over an ordered set of IAC handlers
type Svc struct {
	dispatch *iac.Dispatcher
}

// New creates a pairing service dispatching to hs in order
func New(hs ...iac.Handler) *Svc {
	d := iac.NewDispatcher(hs...)
	if len(d.Handlers()) == 0 {
		panic("pairing.Service requires at least one iac.Handler")
	}
	return &Svc{dispatch: d}
}

// Receive implements domain.ServicePort
// An unrecognised payload is not an error; it is reported through the outcome status
func (s *Svc) Receive(ctx context.Context, in domain.ReceiveInput) (iac.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return iac.Outcome{}, err
	}
	return s.dispatch.Dispatch(ctx, in.Input()), nil
}

// Handlers implements domain.ServicePort
func (s *Svc) Handlers(context.Context) []domain.HandlerInfo {
	hs := s.dispatch.Handlers()
	out := make([]domain.HandlerInfo, len(hs))
	for i, h := range hs {
		out[i] = domain.HandlerInfo{Name: h.Name(), Position: i}
	}
	return out
}
