package driven

// KVStore is the host persistence primitive: a synchronous, possibly
// quota-limited key/value store holding opaque byte payloads.
// Implementations serialise their own writes.
type KVStore interface {
	// Get returns the value stored at key.
	// Returns domain.ErrNotFound if the key is absent.
	Get(key string) ([]byte, error)

	// Set writes value at key, replacing any previous value.
	// May fail with domain.ErrQuotaExceeded.
	Set(key string, value []byte) error

	// Delete removes key. Absence is not an error.
	Delete(key string) error
}
