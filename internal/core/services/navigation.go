package services

import (
	"fmt"
	"sync"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// Ensure NavigationController implements the interface.
var _ driving.NavigationController = (*NavigationController)(nil)

// NavigationController is the single definition of step gating.
type NavigationController struct {
	mu         sync.RWMutex
	current    domain.Step
	hasProfile bool
	hasResult  bool
}

// NewNavigationController starts on the dashboard with no profile or result.
func NewNavigationController() *NavigationController {
	return &NavigationController{current: domain.StepDashboard}
}

// Current returns the active step.
func (n *NavigationController) Current() domain.Step {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// CanEnter reports whether step is reachable.
func (n *NavigationController) CanEnter(step domain.Step) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.canEnterLocked(step)
}

func (n *NavigationController) canEnterLocked(step domain.Step) bool {
	switch {
	case step.IsUtility(), step == domain.StepProfile:
		return true
	case step == domain.StepSnapshot, step == domain.StepSchemes,
		step == domain.StepDecisions, step == domain.StepLoan:
		return n.hasResult
	default:
		return false
	}
}

// GoTo moves to step if it can be entered.
func (n *NavigationController) GoTo(step domain.Step) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !step.IsValid() {
		return fmt.Errorf("%w: unknown step %q", domain.ErrInvalidInput, step)
	}
	if !n.canEnterLocked(step) {
		return fmt.Errorf("%s: %w", step, domain.ErrStepLocked)
	}
	n.current = step
	return nil
}

// OrdinalOf returns the 1-based wizard position of step.
func (n *NavigationController) OrdinalOf(step domain.Step) (int, bool) {
	idx := wizardIndex(step)
	if idx < 0 {
		return 0, false
	}
	return idx + 1, true
}

// Next returns the step after step in the wizard.
func (n *NavigationController) Next(step domain.Step) (domain.Step, bool) {
	idx := wizardIndex(step)
	if idx < 0 || idx+1 >= len(domain.WizardOrder) {
		return "", false
	}
	return domain.WizardOrder[idx+1], true
}

// Prev returns the step before step in the wizard.
func (n *NavigationController) Prev(step domain.Step) (domain.Step, bool) {
	idx := wizardIndex(step)
	if idx <= 0 {
		return "", false
	}
	return domain.WizardOrder[idx-1], true
}

// SetHasProfile updates the profile flag.
func (n *NavigationController) SetHasProfile(has bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hasProfile = has
}

// SetHasResult updates the result flag. Losing the result while on a
// gated step falls back to the profile step.
func (n *NavigationController) SetHasResult(has bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.hasResult = has
	if !n.canEnterLocked(n.current) {
		n.current = domain.StepProfile
	}
}

// HasProfile returns the profile flag.
func (n *NavigationController) HasProfile() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.hasProfile
}

// HasResult returns the result flag.
func (n *NavigationController) HasResult() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.hasResult
}

// OnAnalysisSucceeded is the only transition that first opens the snapshot.
func (n *NavigationController) OnAnalysisSucceeded() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.hasResult = true
	n.current = domain.StepSnapshot
}

func wizardIndex(step domain.Step) int {
	for i, s := range domain.WizardOrder {
		if s == step {
			return i
		}
	}
	return -1
}
