package driving

import "github.com/fundwise/fundwise-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetAdvisorURL updates the analysis service base URL.
	SetAdvisorURL(url string) error

	// SetStorageBackend selects the persistence backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
