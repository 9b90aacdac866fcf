package persistence

import (
	"bytes"
	"context"
	"sync"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// MemoryStore keeps blobs in a map.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[ports.Partition][]byte
}

var _ ports.BlobStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[ports.Partition][]byte)}
}

// Name implements ports.HealthChecker.
func (s *MemoryStore) Name() string { return "blobstore" }

// Check implements ports.HealthChecker.
func (s *MemoryStore) Check(ctx context.Context) error { return ctx.Err() }

// Load implements ports.BlobStore.
func (s *MemoryStore) Load(ctx context.Context, p ports.Partition) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[p]
	if !ok {
		return nil, domain.NewNotFoundError("partition", string(p))
	}

	return bytes.Clone(data), nil
}

// Save implements ports.BlobStore.
func (s *MemoryStore) Save(ctx context.Context, p ports.Partition, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[p] = bytes.Clone(data)

	return nil
}

// Close implements ports.BlobStore.
func (s *MemoryStore) Close() error { return nil }
