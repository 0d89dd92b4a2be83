package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	errors := []error{
		ErrMissingProfileService,
		ErrMissingAnalysisGateway,
		ErrMissingNavigation,
	}

	seen := make(map[string]bool)
	for _, err := range errors {
		msg := err.Error()
		assert.False(t, seen[msg], "duplicate error message: %s", msg)
		seen[msg] = true
	}
}

func TestErrMissingProfileService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingProfileService.Error(), "profile service")
}

func TestErrMissingAnalysisGateway_Message(t *testing.T) {
	assert.Contains(t, ErrMissingAnalysisGateway.Error(), "analysis gateway")
}
