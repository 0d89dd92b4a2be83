package mcp

import (
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server reads from.
type Ports struct {
	// Profile owns the saved household profile.
	Profile driving.ProfileService

	// Documents is the document library. Optional.
	Documents driving.DocumentService

	// Gateway holds the current analysis result. Optional.
	Gateway driving.AnalysisGateway
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Profile == nil {
		return ErrMissingProfileService
	}
	return nil
}
