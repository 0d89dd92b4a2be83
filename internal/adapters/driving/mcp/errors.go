// Package mcp provides an MCP (Model Context Protocol) server adapter for FundWise.
// It lets AI assistants read the saved profile, the document library and
// the current analysis charts.
package mcp

import "errors"

// ErrMissingProfileService is returned when the profile service is not provided.
var ErrMissingProfileService = errors.New("mcp: profile service is required")

// ErrNoResult is returned by chart tools when no analysis has run yet.
var ErrNoResult = errors.New("mcp: no analysis result available")
