package driving

import "github.com/fundwise/fundwise-cli/internal/core/domain"

// NavigationController gates movement between workflow steps.
type NavigationController interface {
	// Current returns the active step.
	Current() domain.Step

	// CanEnter reports whether step is reachable from the current state.
	CanEnter(step domain.Step) bool

	// GoTo moves to step. Fails with domain.ErrStepLocked, leaving the
	// current step unchanged, if step cannot be entered.
	GoTo(step domain.Step) error

	// OrdinalOf returns the 1-based wizard position of step.
	// The boolean is false for steps outside the wizard.
	OrdinalOf(step domain.Step) (int, bool)

	// Next returns the wizard successor of step.
	Next(step domain.Step) (domain.Step, bool)

	// Prev returns the wizard predecessor of step.
	Prev(step domain.Step) (domain.Step, bool)

	// SetHasProfile updates the profile-exists flag.
	SetHasProfile(has bool)

	// SetHasResult updates the result-exists flag. Clearing it while on a
	// gated step falls back to the profile step.
	SetHasResult(has bool)

	// HasProfile returns the profile-exists flag.
	HasProfile() bool

	// HasResult returns the result-exists flag.
	HasResult() bool

	// OnAnalysisSucceeded marks a result as present and enters the snapshot step.
	OnAnalysisSucceeded()
}
