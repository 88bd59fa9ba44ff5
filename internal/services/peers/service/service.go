// Package service contains the peer registry workflows
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"beaconpair/internal/core/beacon"
	"beaconpair/internal/core/normalize"
	perr "beaconpair/internal/platform/errors"
	"beaconpair/internal/platform/logger"
	"beaconpair/internal/services/peers/domain"
	"beaconpair/internal/services/peers/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for peers
type Service interface{ domain.ServicePort }

// Config holds registry settings
type Config struct {
	// MaxPeers bounds how many distinct public keys are registered, 0 means unbounded
	MaxPeers int
}

// seams for tests
var (
	now   = time.Now
	newID = uuid.NewString
)

// Svc implements the Service interface
type Svc struct {
	repo  repo.Repo
	cfg   Config
	names *normalize.Normalizer
	log   *logger.Logger

	// admit serializes the capacity check with the store that follows it
	admit sync.Mutex

	once        sync.Once
	ready       chan struct{}
	connectedAt atomic.Pointer[time.Time]
}

// New creates a new peer registry service
func New(r repo.Repo, cfg Config) *Svc {
	if r == nil {
		panic("peers.Service requires a non nil Repo")
	}
	return &Svc{
		repo:  r,
		cfg:   cfg,
		names: normalize.New(),
		log:   logger.Named("peers"),
		ready: make(chan struct{}),
	}
}

// Connect implements domain.ServicePort
func (s *Svc) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.once.Do(func() {
		t := now().UTC()
		s.connectedAt.Store(&t)
		close(s.ready)
		s.log.Info().Time("connected_at", t).Msg("peer client connected")
	})
	return nil
}

// Connected implements domain.ServicePort
func (s *Svc) Connected(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "peer client not connected")
	}
}

// AddPeer implements domain.ServicePort
func (s *Svc) AddPeer(ctx context.Context, req beacon.PairingRequest) (domain.Peer, error) {
	if !beacon.IsPairingRequest(req.Value()) {
		return domain.Peer{}, perr.New(perr.ErrorCodeValidation, "not a pairing request")
	}
	p := domain.Peer{
		ID:          newID(),
		Name:        req.Name,
		DisplayName: s.names.Name(req.Name),
		PublicKey:   req.PublicKey,
		RelayServer: req.RelayServer,
		Version:     req.Version,
		AppURL:      req.AppURL,
		Icon:        req.Icon,
		AddedAt:     now().UTC(),
	}
	if sid, err := beacon.SenderID(req.PublicKey); err == nil {
		p.SenderID = sid
	}

	stored, replaced, err := s.store(ctx, p)
	if err != nil {
		return domain.Peer{}, err
	}
	s.log.Info().
		Str("peer_id", stored.ID).
		Str("name", stored.DisplayName).
		Str("relay", stored.RelayServer).
		Bool("replaced", replaced).
		Msg("peer added")
	return stored, nil
}

func (s *Svc) store(ctx context.Context, p domain.Peer) (domain.Peer, bool, error) {
	s.admit.Lock()
	defer s.admit.Unlock()
	if err := s.checkCapacity(ctx, p.PublicKey); err != nil {
		return domain.Peer{}, false, err
	}
	stored, replaced, err := s.repo.Upsert(ctx, p)
	if err != nil {
		return domain.Peer{}, false, perr.Wrap(err, perr.ErrorCodeUnavailable, "store peer")
	}
	return stored, replaced, nil
}

func (s *Svc) checkCapacity(ctx context.Context, publicKey string) error {
	if s.cfg.MaxPeers <= 0 {
		return nil
	}
	known, err := s.repo.HasKey(ctx, publicKey)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "lookup peer")
	}
	if known {
		return nil
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "count peers")
	}
	if n >= s.cfg.MaxPeers {
		return perr.Conflictf("peer limit of %d reached", s.cfg.MaxPeers)
	}
	return nil
}

// List implements domain.ServicePort
func (s *Svc) List(ctx context.Context) ([]domain.Peer, error) {
	return s.repo.List(ctx)
}

// Get implements domain.ServicePort
func (s *Svc) Get(ctx context.Context, id string) (domain.Peer, error) {
	p, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Peer{}, err
	}
	if !ok {
		return domain.Peer{}, perr.NotFoundf("peer %s not found", id)
	}
	return p, nil
}

// Remove implements domain.ServicePort
func (s *Svc) Remove(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return perr.NotFoundf("peer %s not found", id)
	}
	s.log.Info().Str("peer_id", id).Msg("peer removed")
	return nil
}

// Status implements domain.ServicePort
func (s *Svc) Status(ctx context.Context) (domain.Status, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	st := domain.Status{Peers: n, MaxPeers: s.cfg.MaxPeers}
	if t := s.connectedAt.Load(); t != nil {
		at := *t
		st.Connected, st.ConnectedAt = true, &at
	}
	return st, nil
}
