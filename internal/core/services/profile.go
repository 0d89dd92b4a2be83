package services

import (
	"sync"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService owns the current-user profile and its persisted record.
type ProfileService struct {
	store *PersistentStore[domain.Profile]

	mu      sync.RWMutex
	current domain.Profile
}

// NewProfileService loads the persisted profile merged over defaults.
func NewProfileService(kv driven.KVStore, validator driven.RecordValidator) *ProfileService {
	store := NewPersistentStore[domain.Profile](kv, validator)
	return &ProfileService{
		store:   store,
		current: store.Load(domain.KeyProfile, domain.DefaultProfile()).Normalise(),
	}
}

// Get returns the current profile.
func (s *ProfileService) Get() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProfile(s.current)
}

// Save replaces the profile with input. The loan request fields are
// never part of the stored record, and amounts are normalised so the
// record always reloads.
func (s *ProfileService) Save(input domain.ProfileInput) domain.Profile {
	merged := cloneProfile(input.Profile).Normalise()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = merged
	s.store.Save(domain.KeyProfile, merged)
	return cloneProfile(merged)
}

// Clear resets the profile to defaults and removes the record.
func (s *ProfileService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.DefaultProfile()
	s.store.Clear(domain.KeyProfile)
}

// HasProfile reports whether name and income are both set.
func (s *ProfileService) HasProfile() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.IsComplete()
}

func cloneProfile(p domain.Profile) domain.Profile {
	if p.RiskExposure != nil {
		p.RiskExposure = append([]domain.RiskExposure(nil), p.RiskExposure...)
	}
	if p.ProfileImage != nil {
		img := *p.ProfileImage
		p.ProfileImage = &img
	}
	return p
}
