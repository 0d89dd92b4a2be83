package services

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/logger"
)

// PersistentStore is a JSON record store over the host key/value primitive.
// Reads never fail: missing, invalid or undecodable records yield the
// caller's default. Writes never fail: errors are logged and dropped.
type PersistentStore[T any] struct {
	kv        driven.KVStore
	validator driven.RecordValidator

	// mu serialises writes to the shared primitive.
	mu sync.Mutex
}

// NewPersistentStore creates a store. validator may be nil.
func NewPersistentStore[T any](kv driven.KVStore, validator driven.RecordValidator) *PersistentStore[T] {
	return &PersistentStore[T]{kv: kv, validator: validator}
}

// Load decodes the record at key over def, so fields missing from the
// stored record keep their default values.
func (s *PersistentStore[T]) Load(key string, def T) T {
	data, err := s.kv.Get(key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Debug("%v: %s: %v", domain.ErrPersistenceRead, key, err)
		}
		return def
	}

	if s.validator != nil {
		if err := s.validator.Validate(key, data); err != nil {
			logger.Debug("%v: %s: %v", domain.ErrPersistenceRead, key, err)
			return def
		}
	}

	// Probe first so a failed decode cannot leave def half-written.
	var probe T
	if err := json.Unmarshal(data, &probe); err != nil {
		logger.Debug("%v: %s: %v", domain.ErrPersistenceRead, key, err)
		return def
	}

	merged := def
	if err := json.Unmarshal(data, &merged); err != nil {
		return def
	}
	return merged
}

// Save encodes value and writes it at key. A record the validator would
// reject on load is not written, so the previous record survives.
func (s *PersistentStore[T]) Save(key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("%v: %s: encode: %v", domain.ErrPersistenceWrite, key, err)
		return
	}
	if s.validator != nil {
		if err := s.validator.Validate(key, data); err != nil {
			logger.Warn("%v: %s: %v", domain.ErrPersistenceWrite, key, err)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(key, data); err != nil {
		logger.Warn("%v: %s: %v", domain.ErrPersistenceWrite, key, err)
	}
}

// Clear removes the record at key.
func (s *PersistentStore[T]) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(key); err != nil {
		logger.Warn("%v: %s: delete: %v", domain.ErrPersistenceWrite, key, err)
	}
}
