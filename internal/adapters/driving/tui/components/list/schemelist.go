// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// SchemeList displays schemes in a navigable list with a detail line
// for the selected entry.
type SchemeList struct {
	schemes  []domain.Scheme
	selected int
	styles   *styles.Styles
	title    string
	width    int
	height   int
}

// NewSchemeList creates a new scheme list component.
func NewSchemeList(s *styles.Styles, title string) *SchemeList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SchemeList{
		styles: s,
		title:  title,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *SchemeList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SchemeList) Update(msg tea.Msg) (*SchemeList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *SchemeList) View() string {
	if len(l.schemes) == 0 {
		return l.styles.Muted.Render("No schemes")
	}

	lines := make([]string, 0, len(l.schemes)+6)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.schemes))), "")

	// Each entry takes one line; the detail block below takes about five.
	visible := l.height - 8
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.schemes) {
		end = len(l.schemes)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, &l.schemes[i]))
	}

	if sel := l.SelectedScheme(); sel != nil {
		lines = append(lines, "", l.renderDetail(sel))
	}

	return strings.Join(lines, "\n")
}

func (l *SchemeList) renderRow(index int, s *domain.Scheme) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := truncate(s.Name, l.width-30)
	tag := s.SuitabilityLabel
	if tag == "" {
		tag = s.Category
	}

	row := fmt.Sprintf("%s%-*s  ", indicator, l.width-30, name)
	if index == l.selected {
		return l.styles.Selected.Render(row + tag)
	}
	return l.styles.Normal.Render(row) + l.styles.Muted.Render(tag)
}

func (l *SchemeList) renderDetail(s *domain.Scheme) string {
	var b strings.Builder
	if s.BenefitINR != "" {
		b.WriteString(l.styles.Good.Render("Benefit: " + s.BenefitINR))
		b.WriteString("\n")
	}
	desc := s.Reason
	if desc == "" {
		desc = s.Description
	}
	if desc != "" {
		b.WriteString(l.styles.Normal.Render(truncate(desc, l.width*2)))
		b.WriteString("\n")
	}
	if s.ActionRequired != "" {
		b.WriteString(l.styles.Caution.Render("Next: " + s.ActionRequired))
		b.WriteString("\n")
	}
	for _, hint := range s.EligibilityHints {
		b.WriteString(l.styles.Muted.Render("  - " + hint))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// SetSchemes replaces the list contents and resets the selection.
func (l *SchemeList) SetSchemes(schemes []domain.Scheme) {
	l.schemes = schemes
	l.selected = 0
}

// Schemes returns the current schemes.
func (l *SchemeList) Schemes() []domain.Scheme {
	return l.schemes
}

// Selected returns the index of the selected scheme.
func (l *SchemeList) Selected() int {
	return l.selected
}

// SelectedScheme returns the selected scheme, or nil if none.
func (l *SchemeList) SelectedScheme() *domain.Scheme {
	if len(l.schemes) == 0 || l.selected < 0 || l.selected >= len(l.schemes) {
		return nil
	}
	return &l.schemes[l.selected]
}

// MoveUp moves selection up.
func (l *SchemeList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SchemeList) MoveDown() {
	if l.selected < len(l.schemes)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SchemeList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of schemes.
func (l *SchemeList) Count() int {
	return len(l.schemes)
}

// IsEmpty returns whether the list is empty.
func (l *SchemeList) IsEmpty() bool {
	return len(l.schemes) == 0
}
