package stepbar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/services"
)

func TestBar_WizardStep(t *testing.T) {
	b := New(nil, services.NewNavigationController())

	assert.Contains(t, b.View(domain.StepProfile), "Step 1 of 4: Profile")
	assert.Contains(t, b.View(domain.StepDecisions), "Step 4 of 4: Decision")
}

func TestBar_NonWizardStep(t *testing.T) {
	b := New(nil, services.NewNavigationController())

	out := b.View(domain.StepCatalog)

	assert.Contains(t, out, "Scheme Catalog")
	assert.NotContains(t, out, "Step")
}
