package memory

import (
	"fmt"
	"sync"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
)

// Ensure KVStore implements the interface.
var _ driven.KVStore = (*KVStore)(nil)

// KVStore is an in-memory implementation of driven.KVStore.
// A non-zero quota caps the total bytes of keys plus values, the way a
// browser-style storage area rejects writes once full.
type KVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	quota  int64
	used   int64
}

// NewKVStore creates an in-memory store. quota <= 0 means unlimited.
func NewKVStore(quota int64) *KVStore {
	return &KVStore{
		values: make(map[string][]byte),
		quota:  quota,
	}
}

// Get returns a copy of the value at key.
func (s *KVStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

// Set stores value at key, failing if it would exceed the quota.
func (s *KVStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used
	if old, ok := s.values[key]; ok {
		used -= int64(len(key) + len(old))
	}
	used += int64(len(key) + len(value))

	if s.quota > 0 && used > s.quota {
		return fmt.Errorf("set %s (%d of %d bytes): %w", key, used, s.quota, domain.ErrQuotaExceeded)
	}

	s.values[key] = append([]byte(nil), value...)
	s.used = used
	return nil
}

// Delete removes key. Absence is not an error.
func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.values[key]; ok {
		s.used -= int64(len(key) + len(old))
		delete(s.values, key)
	}
	return nil
}

// Used returns the bytes currently stored.
func (s *KVStore) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
