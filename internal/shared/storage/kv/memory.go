package kv

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used in tests and when no durable
// backend is configured. A non-zero Quota caps the total stored bytes,
// mimicking the size limits of an origin-scoped browser store.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]string
	Quota int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Quota > 0 {
		total := len(key) + len(value)
		for k, v := range s.data {
			if k == key {
				continue
			}
			total += len(k) + len(v)
		}
		if total > s.Quota {
			return ErrQuotaExceeded
		}
	}
	s.data[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
