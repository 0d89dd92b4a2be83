package domain

// StorageBackend selects the host persistence primitive.
type StorageBackend string

// Supported storage backends.
const (
	StorageSQLite StorageBackend = "sqlite"
	StorageMemory StorageBackend = "memory"
)

// IsValid reports whether b is a known backend.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// AdvisorSettings configures the analysis service client.
type AdvisorSettings struct {
	// BaseURL is the service root, e.g. http://localhost:8000.
	BaseURL string

	// TimeoutSeconds bounds each call. Zero means no timeout.
	TimeoutSeconds int

	// RatePerSecond throttles outbound calls.
	RatePerSecond float64
}

// StorageSettings configures local persistence.
type StorageSettings struct {
	Backend StorageBackend

	// DataDir holds the sqlite database. Empty means ~/.fundwise.
	DataDir string

	// QuotaBytes limits the memory backend. Zero means unlimited.
	QuotaBytes int64
}

// AppSettings holds all configurable values.
type AppSettings struct {
	Advisor AdvisorSettings
	Storage StorageSettings
}

// Default setting values.
const (
	DefaultAdvisorURL     = "http://localhost:8000"
	DefaultRatePerSecond  = 2.0
	DefaultStorageBackend = StorageSQLite
)

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Advisor: AdvisorSettings{
			BaseURL:       DefaultAdvisorURL,
			RatePerSecond: DefaultRatePerSecond,
		},
		Storage: StorageSettings{
			Backend: DefaultStorageBackend,
		},
	}
}

// Persisted record keys in the host key/value store.
const (
	KeyProfile   = "fundwise.profile"
	KeyDocuments = "fundwise.documents"
)
