// Package tui provides an interactive terminal user interface for fundwise.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Profile owns the household profile.
	Profile driving.ProfileService

	// Documents manages the document library. Optional.
	Documents driving.DocumentService

	// Gateway calls the analysis service.
	Gateway driving.AnalysisGateway

	// Navigation gates movement between workflow steps.
	Navigation driving.NavigationController
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	profile driving.ProfileService,
	documents driving.DocumentService,
	gateway driving.AnalysisGateway,
	navigation driving.NavigationController,
) *Ports {
	return &Ports{
		Profile:    profile,
		Documents:  documents,
		Gateway:    gateway,
		Navigation: navigation,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Profile == nil {
		return ErrMissingProfileService
	}
	if p.Gateway == nil {
		return ErrMissingAnalysisGateway
	}
	if p.Navigation == nil {
		return ErrMissingNavigation
	}
	return nil
}
