package registry

import (
	"context"
	"sync"

	"github.com/DeBrosOfficial/marketplace/pkg/catalog"
)

// Store persists one contract snapshot per chain.
type Store interface {
	// Put replaces the snapshot of a chain.
	Put(ctx context.Context, chainID catalog.ChainID, contracts []catalog.Contract) error
	// Get returns the snapshot of a chain and whether one was ever stored.
	Get(ctx context.Context, chainID catalog.ChainID) ([]catalog.Contract, bool, error)
	// Close releases the backing resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps snapshots in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[catalog.ChainID][]catalog.Contract
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[catalog.ChainID][]catalog.Contract)}
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, chainID catalog.ChainID, contracts []catalog.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[chainID] = cloneContracts(contracts)
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, chainID catalog.ChainID) ([]catalog.Contract, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[chainID]
	if !ok {
		return nil, false, nil
	}
	return cloneContracts(snap), true, nil
}

// Close implements Store.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}

func cloneContracts(in []catalog.Contract) []catalog.Contract {
	out := make([]catalog.Contract, len(in))
	copy(out, in)
	return out
}
