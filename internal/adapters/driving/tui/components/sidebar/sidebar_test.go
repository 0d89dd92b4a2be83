package sidebar

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/services"
)

func TestNew_StartsOnFirstStep(t *testing.T) {
	b := New(nil, services.NewNavigationController())

	assert.Equal(t, domain.StepDashboard, b.Selected())
	assert.True(t, b.Focused())
}

func TestSidebar_MoveAndClamp(t *testing.T) {
	b := New(nil, services.NewNavigationController())

	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, domain.StepDashboard, b.Selected())

	b, _ = b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, domain.StepProfile, b.Selected())

	for range domain.AllSteps() {
		b, _ = b.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, domain.StepDocumentScan, b.Selected())
}

func TestSidebar_EnterRequestsStep(t *testing.T) {
	b := New(nil, services.NewNavigationController())
	b.Select(domain.StepSnapshot)

	_, cmd := b.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, messages.StepRequested{Step: domain.StepSnapshot}, cmd())
}

func TestSidebar_IgnoresKeysWhenBlurred(t *testing.T) {
	b := New(nil, services.NewNavigationController())
	b.SetFocused(false)

	b, cmd := b.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Nil(t, cmd)
	assert.Equal(t, domain.StepDashboard, b.Selected())
}

func TestSidebar_ViewListsSteps(t *testing.T) {
	nav := services.NewNavigationController()
	b := New(nil, nav)

	out := b.View()

	for _, step := range domain.AllSteps() {
		assert.Contains(t, out, step.Title())
	}
	assert.Contains(t, out, "● Dashboard")
}
