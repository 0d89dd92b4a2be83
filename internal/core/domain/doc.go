// Package domain defines the core business entities for FundWise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Profile: The durable description of a farmer's land, income and risks
//   - DocumentRecord: Metadata and optional content for one uploaded file
//   - Step: A named stage of the guided assessment workflow
//   - AnalysisResult: The output of the external advisory service
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
