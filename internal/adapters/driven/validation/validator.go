// Package validation checks persisted records against JSON schemas before
// they are decoded, so a tampered or outdated record is rejected as a whole
// instead of half-applied.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driven"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Ensure Validator implements the interface.
var _ driven.RecordValidator = (*Validator)(nil)

// schemaFiles maps record keys to their embedded schema.
var schemaFiles = map[string]string{
	domain.KeyProfile:   "schemas/profile.json",
	domain.KeyDocuments: "schemas/documents.json",
}

// Validator validates records by key.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(schemaFiles))}

	for key, file := range schemaFiles {
		raw, err := schemaFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", file, err)
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(file, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", file, err)
		}
		schema, err := compiler.Compile(file)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", file, err)
		}
		v.schemas[key] = schema
	}

	return v, nil
}

// Validate checks data against the schema for key. Unknown keys pass.
func (v *Validator) Validate(key string, data []byte) error {
	schema, ok := v.schemas[key]
	if !ok {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistenceRead, key, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s does not match schema: %v", domain.ErrPersistenceRead, key, err)
	}
	return nil
}
