// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Persistence is best-effort: storage failures are logged and never
// block the in-memory workflow.
package services
