package services

import (
	"fmt"
	"net/url"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAdvisorURL     = "advisor.base_url"
	keyAdvisorTimeout = "advisor.timeout_seconds"
	keyAdvisorRate    = "advisor.rate_per_second"
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
	keyStorageQuota   = "storage.quota_bytes"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Advisor: domain.AdvisorSettings{
			BaseURL:        s.getURL(keyAdvisorURL, defaults.Advisor.BaseURL),
			TimeoutSeconds: s.getNonNegativeInt(keyAdvisorTimeout, defaults.Advisor.TimeoutSeconds),
			RatePerSecond:  s.getPositiveFloat(keyAdvisorRate, defaults.Advisor.RatePerSecond),
		},
		Storage: domain.StorageSettings{
			Backend:    s.getBackend(defaults.Storage.Backend),
			DataDir:    s.configStore.GetString(keyStorageDataDir), // No default - empty means ~/.fundwise
			QuotaBytes: int64(s.getNonNegativeInt(keyStorageQuota, int(defaults.Storage.QuotaBytes))),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyAdvisorURL, settings.Advisor.BaseURL); err != nil {
		return fmt.Errorf("save advisor base_url: %w", err)
	}
	if err := s.configStore.Set(keyAdvisorTimeout, settings.Advisor.TimeoutSeconds); err != nil {
		return fmt.Errorf("save advisor timeout: %w", err)
	}
	if err := s.configStore.Set(keyAdvisorRate, settings.Advisor.RatePerSecond); err != nil {
		return fmt.Errorf("save advisor rate: %w", err)
	}

	if err := s.configStore.Set(keyStorageBackend, string(settings.Storage.Backend)); err != nil {
		return fmt.Errorf("save storage backend: %w", err)
	}
	if err := s.configStore.Set(keyStorageDataDir, settings.Storage.DataDir); err != nil {
		return fmt.Errorf("save storage data_dir: %w", err)
	}
	if err := s.configStore.Set(keyStorageQuota, settings.Storage.QuotaBytes); err != nil {
		return fmt.Errorf("save storage quota: %w", err)
	}

	return nil
}

// SetAdvisorURL updates the analysis service base URL.
func (s *SettingsService) SetAdvisorURL(raw string) error {
	if !isHTTPURL(raw) {
		return fmt.Errorf("%w: invalid advisor URL: %q", domain.ErrInvalidInput, raw)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Advisor.BaseURL = raw
	return s.Save(settings)
}

// SetStorageBackend selects the persistence backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: invalid storage backend: %s", domain.ErrInvalidInput, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.Backend = backend
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getURL(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if !isHTTPURL(val) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
