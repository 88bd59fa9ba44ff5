// Package repo provides in-memory storage for registered peers
// Peers live for the life of the process; nothing is persisted
package repo

import (
	"context"
	"sort"
	"sync"

	"beaconpair/internal/services/peers/domain"
)

// Repo defines the repository contract for peers
type Repo interface {
	// Upsert stores p; a stored peer with the same public key is replaced and keeps its id.
	// replaced reports whether that happened
	Upsert(ctx context.Context, p domain.Peer) (stored domain.Peer, replaced bool, err error)
	List(ctx context.Context) ([]domain.Peer, error)
	Get(ctx context.Context, id string) (domain.Peer, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
	HasKey(ctx context.Context, publicKey string) (bool, error)
}

// Memory implements Repo over maps guarded by a RWMutex
type Memory struct {
	mu    sync.RWMutex
	byID  map[string]domain.Peer
	byKey map[string]string // public key -> id
}

// NewMemory creates an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{
		byID:  map[string]domain.Peer{},
		byKey: map[string]string{},
	}
}

// Upsert implements Repo
func (m *Memory) Upsert(ctx context.Context, p domain.Peer) (domain.Peer, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Peer{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id, replaced := m.byKey[p.PublicKey]
	if replaced {
		p.ID = id
	}
	m.byID[p.ID] = p
	m.byKey[p.PublicKey] = p.ID
	return p, replaced, nil
}

// List implements Repo, oldest first
func (m *Memory) List(ctx context.Context) ([]domain.Peer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]domain.Peer, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AddedAt.Before(out[j].AddedAt)
	})
	return out, nil
}

// Get implements Repo
func (m *Memory) Get(ctx context.Context, id string) (domain.Peer, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Peer{}, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byID[id]
	return p, ok, nil
}

// Delete implements Repo
func (m *Memory) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	delete(m.byID, id)
	delete(m.byKey, p.PublicKey)
	return true, nil
}

// Count implements Repo
func (m *Memory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID), nil
}

// HasKey implements Repo
func (m *Memory) HasKey(ctx context.Context, publicKey string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.byKey[publicKey]
	return ok, nil
}
