package tui

import "errors"

// ErrMissingProfileService is returned when the profile service is not provided.
var ErrMissingProfileService = errors.New("tui: profile service is required")

// ErrMissingAnalysisGateway is returned when the analysis gateway is not provided.
var ErrMissingAnalysisGateway = errors.New("tui: analysis gateway is required")

// ErrMissingNavigation is returned when the navigation controller is not provided.
var ErrMissingNavigation = errors.New("tui: navigation controller is required")
