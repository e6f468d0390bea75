package waitlist

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory. Used when no Redis
// address is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*Entry)}
}

func (s *MemoryStore) Add(_ context.Context, email string) (*Entry, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[email]; ok {
		return nil, ErrExists
	}
	entry := newEntry(email)
	s.entries[email] = entry
	return entry, nil
}

func (s *MemoryStore) Exists(_ context.Context, email string) (bool, error) {
	email, err := NormalizeEmail(email)
	if err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[email]
	return ok, nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}
