package driving

import "github.com/fundwise/fundwise-cli/internal/core/domain"

// ProfileService owns the single current-user profile.
type ProfileService interface {
	// Get returns the current in-memory profile.
	Get() domain.Profile

	// Save replaces the profile wholesale with input, dropping the loan
	// request fields, persists it and returns the stored profile.
	Save(input domain.ProfileInput) domain.Profile

	// Clear resets the profile to defaults and removes the persisted record.
	Clear()

	// HasProfile reports whether the profile has a name and an income.
	HasProfile() bool
}
