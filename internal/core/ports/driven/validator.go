package driven

// RecordValidator checks persisted payloads before they are decoded.
type RecordValidator interface {
	// Validate returns an error if data does not match the schema
	// registered for key. Keys without a schema always pass.
	Validate(key string, data []byte) error
}
