// Package store provides the verification result cache backends: memory
// for tests and single-process runs, Redis for shared deployments,
// PostgreSQL when results must survive restarts.
package store

import (
	"context"
	"sync"
	"time"

	"peselgate/internal/verify"
)

type memoryEntry struct {
	result   *verify.Result
	storedAt time.Time
}

// MemoryStore is an in-process TTL cache keyed by subject hash.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithMemoryClock overrides the time source, used by tests.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) FindResult(_ context.Context, subjectHash string) (*verify.Result, error) {
	s.mu.RLock()
	entry, ok := s.entries[subjectHash]
	s.mu.RUnlock()
	if !ok {
		return nil, verify.ErrNotFound
	}
	if s.ttl > 0 && s.now().Sub(entry.storedAt) > s.ttl {
		s.mu.Lock()
		delete(s.entries, subjectHash)
		s.mu.Unlock()
		return nil, verify.ErrNotFound
	}
	return entry.result, nil
}

func (s *MemoryStore) SaveResult(_ context.Context, result *verify.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[result.SubjectHash] = memoryEntry{result: result, storedAt: s.now()}
	return nil
}
