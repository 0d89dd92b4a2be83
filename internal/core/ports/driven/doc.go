// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - KVStore: Synchronous device-local key/value persistence
//   - AdvisorClient: The external analysis service
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RecordValidator: Schema checks on persisted records. Without it, records are only JSON-decoded.
//   - PageCounter: PDF page metrics. Without it, page counts stay zero.
//   - ReportExporter: Spreadsheet export of an analysis result.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
