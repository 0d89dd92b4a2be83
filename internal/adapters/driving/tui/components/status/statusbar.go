// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/keymap"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateWorking State = "working"
	StateSuccess State = "success"
	StateError   State = "error"
	StateLocked  State = "locked"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	wizard  bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateWorking:
		if s.message != "" {
			return s.styles.Caution.Render(s.message)
		}
		return s.styles.Caution.Render("Working...")
	case StateSuccess:
		return s.styles.Good.Render(s.message)
	case StateError:
		if s.message != "" {
			return s.styles.Risk.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Risk.Render("Error")
	case StateLocked:
		return s.styles.Caution.Render(s.message)
	case StateReady:
		if s.message != "" {
			return s.styles.Normal.Render(s.message)
		}
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.wizard {
		bindings = s.keymap.WizardHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Hints returns the bindings currently advertised.
func (s *Bar) Hints() []key.Binding {
	if s.wizard {
		return s.keymap.WizardHelp()
	}
	return s.keymap.ShortHelp()
}

// Set sets the state and message together.
func (s *Bar) Set(state State, message string) {
	s.state = state
	s.message = message
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetWizard selects wizard navigation hints.
func (s *Bar) SetWizard(wizard bool) {
	s.wizard = wizard
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
