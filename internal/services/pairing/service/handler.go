package service

import (
	"context"
	"time"

	"beaconpair/internal/core/beacon"
	"beaconpair/internal/core/iac"
	"beaconpair/internal/platform/logger"
	"beaconpair/internal/services/pairing/domain"
)

// HandlerName is the name the beacon handler reports to the IAC host
const HandlerName = "BeaconHandler"

// BeaconHandler recognises Beacon pairing requests among IAC payloads and
// registers the peer they describe
type BeaconHandler struct {
	name         string
	registrar    domain.RegistrarPort
	codec        beacon.Deserializer
	readyTimeout time.Duration
	log          *logger.Logger
}

// HandlerOptions tunes a BeaconHandler
type HandlerOptions struct {
	// Name overrides HandlerName
	Name string

	// ReadyTimeout bounds the wait for the registrar to connect, 0 waits for as long as ctx allows
	ReadyTimeout time.Duration
}

// NewBeaconHandler builds the handler. registrar and codec are required
func NewBeaconHandler(registrar domain.RegistrarPort, codec beacon.Deserializer, opt HandlerOptions) *BeaconHandler {
	if registrar == nil {
		panic("pairing: BeaconHandler requires a non nil RegistrarPort")
	}
	if codec == nil {
		panic("pairing: BeaconHandler requires a non nil Deserializer")
	}
	name := opt.Name
	if name == "" {
		name = HandlerName
	}
	return &BeaconHandler{
		name:         name,
		registrar:    registrar,
		codec:        codec,
		readyTimeout: opt.ReadyTimeout,
		log:          logger.Named("pairing"),
	}
}

// Name implements iac.Handler
func (h *BeaconHandler) Name() string { return h.name }

// Receive implements iac.Handler
// Any decode, validation or registration failure yields StatusUnsupported
func (h *BeaconHandler) Receive(ctx context.Context, in iac.Input) (st iac.Status) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("pairing handler panicked")
			st = iac.StatusUnsupported
		}
	}()

	raw, ok := in.First()
	if !ok {
		h.log.Debug().Msg("empty input")
		return iac.StatusUnsupported
	}

	att := beacon.Decode(ctx, raw, h.codec)
	if !att.OK() {
		h.log.Debug().Str("stage", att.Stage.String()).Err(att.Err).Msg("not a pairing payload")
		return iac.StatusUnsupported
	}

	req, ok := beacon.FromValue(att.Value)
	if !ok {
		h.log.Debug().Str("stage", att.Stage.String()).Msg("decoded value is not a pairing request")
		return iac.StatusUnsupported
	}

	if err := h.register(ctx, req); err != nil {
		h.log.Warn().Err(err).Str("stage", att.Stage.String()).Str("name", req.Name).Msg("pairing request not registered")
		return iac.StatusUnsupported
	}

	h.log.Info().Str("stage", att.Stage.String()).Str("name", req.Name).Str("relay", req.RelayServer).Msg("pairing request registered")
	return iac.StatusSuccess
}

func (h *BeaconHandler) register(ctx context.Context, req beacon.PairingRequest) error {
	if err := h.awaitReady(ctx); err != nil {
		return err
	}
	return h.registrar.AddPeer(ctx, req)
}

func (h *BeaconHandler) awaitReady(ctx context.Context) error {
	if h.readyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.readyTimeout)
		defer cancel()
	}
	return h.registrar.Connected(ctx)
}

// Progress implements iac.Handler
func (h *BeaconHandler) Progress(context.Context) int { return 100 }

// Result implements iac.Handler
func (h *BeaconHandler) Result(context.Context) any { return nil }

// Reset implements iac.Handler
func (h *BeaconHandler) Reset(context.Context) {}

// HandleComplete implements iac.Handler
func (h *BeaconHandler) HandleComplete(context.Context) bool { return true }
