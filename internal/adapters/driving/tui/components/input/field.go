// Package input provides labelled form inputs for the TUI.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
)

// labelWidth aligns field labels in a form column.
const labelWidth = 18

// Field wraps a bubbles textinput with a label.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	numeric   bool
	width     int
}

// NewField creates an unfocused text field.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 30

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     30,
	}
}

// NewNumberField creates a field that only accepts digits and a decimal point.
func NewNumberField(s *styles.Styles, label, placeholder string) *Field {
	f := NewField(s, label, placeholder)
	f.numeric = true
	f.textinput.CharLimit = 15
	f.textinput.Validate = func(v string) error {
		if v == "" {
			return nil
		}
		_, err := parseAmount(v)
		return err
	}
	return f
}

// parseAmount accepts plain decimals such as "2.5". Signs, exponents,
// NaN and Inf are rejected.
func parseAmount(v string) (float64, error) {
	if strings.Trim(v, "0123456789.") != "" || strings.Count(v, ".") > 1 {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", v)
	}
	return n, nil
}

// Init initialises the field.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input on one line.
func (f *Field) View() string {
	label := f.styles.Muted.Width(labelWidth).Render(f.label)
	if f.Focused() {
		label = f.styles.Subtitle.Width(labelWidth).Render(f.label)
	}
	input := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, input)
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the trimmed input value.
func (f *Field) Value() string {
	return strings.TrimSpace(f.textinput.Value())
}

// Float parses the value as a number. An empty field reads as zero.
func (f *Field) Float() (float64, error) {
	v := f.Value()
	if v == "" {
		return 0, nil
	}
	n, err := parseAmount(v)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number", f.label)
	}
	return n, nil
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// SetFloat sets a numeric value, leaving zero blank.
func (f *Field) SetFloat(v float64) {
	if v == 0 {
		f.textinput.SetValue("")
		return
	}
	f.textinput.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
}

// Numeric returns whether the field only accepts numbers.
func (f *Field) Numeric() bool {
	return f.numeric
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - labelWidth - 4
	if inputWidth < 12 {
		inputWidth = 12
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
