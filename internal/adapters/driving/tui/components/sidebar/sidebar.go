// Package sidebar provides the step navigation column for the TUI.
package sidebar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// Width is the rendered width of the sidebar column.
const Width = 22

// Sidebar lists every workflow step and lets the user pick one.
// Steps that cannot be entered yet are dimmed but stay selectable so the
// app can explain why they are locked.
type Sidebar struct {
	styles   *styles.Styles
	nav      driving.NavigationController
	steps    []domain.Step
	selected int
	height   int
	focused  bool
}

// New creates a sidebar over the navigation controller.
func New(s *styles.Styles, nav driving.NavigationController) *Sidebar {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Sidebar{
		styles:  s,
		nav:     nav,
		steps:   domain.AllSteps(),
		height:  24,
		focused: true,
	}
}

// Init initialises the sidebar.
func (b *Sidebar) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement and selection.
func (b *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !b.focused {
		return b, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if b.selected > 0 {
			b.selected--
		}
	case "down", "j":
		if b.selected < len(b.steps)-1 {
			b.selected++
		}
	case "enter":
		step := b.steps[b.selected]
		return b, func() tea.Msg {
			return messages.StepRequested{Step: step}
		}
	}
	return b, nil
}

// View renders the step list.
func (b *Sidebar) View() string {
	var sb strings.Builder

	sb.WriteString(b.styles.Title.Render("FundWise"))
	sb.WriteString("\n\n")

	current := b.nav.Current()
	for i, step := range b.steps {
		if i > 0 && step.IsUtility() && !b.steps[i-1].IsUtility() {
			sb.WriteString("\n")
		}

		cursor := "  "
		if b.focused && i == b.selected {
			cursor = "> "
		}

		label := step.Title()
		if step == current {
			label = "● " + label
		} else {
			label = "  " + label
		}

		var line string
		switch {
		case !b.nav.CanEnter(step):
			line = b.styles.Disabled.Render(label)
		case b.focused && i == b.selected:
			line = b.styles.Selected.Render(label)
		case step == current:
			line = b.styles.Subtitle.Render(label)
		default:
			line = b.styles.Normal.Render(label)
		}

		sb.WriteString(cursor + line + "\n")
	}

	return b.styles.Sidebar.Width(Width).Height(b.height).Render(sb.String())
}

// Select moves the cursor onto step.
func (b *Sidebar) Select(step domain.Step) {
	for i, s := range b.steps {
		if s == step {
			b.selected = i
			return
		}
	}
}

// Selected returns the step under the cursor.
func (b *Sidebar) Selected() domain.Step {
	return b.steps[b.selected]
}

// SetFocused toggles keyboard focus.
func (b *Sidebar) SetFocused(focused bool) {
	b.focused = focused
}

// Focused returns whether the sidebar has focus.
func (b *Sidebar) Focused() bool {
	return b.focused
}

// SetHeight sets the rendered height.
func (b *Sidebar) SetHeight(height int) {
	b.height = height
}
