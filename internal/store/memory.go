package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore holds the snapshot in memory. Used by tests and as a
// throwaway backend when no persistence is wanted.
type MemoryStore struct {
	mu       sync.Mutex
	data     []byte
	modified time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStore) Save(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	s.modified = time.Now()
	return nil
}

func (s *MemoryStore) LastModified(_ context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified, nil
}

func (s *MemoryStore) Close() error { return nil }
