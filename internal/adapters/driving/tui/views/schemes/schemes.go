// Package schemes provides the recommended schemes view for the TUI.
package schemes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/list"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// View lists the schemes recommended by the latest analysis, best
// priority first.
type View struct {
	styles *styles.Styles
	list   *list.SchemeList
	result *domain.AnalysisResult
}

// NewView creates a new schemes view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		list:   list.NewSchemeList(s, "Recommended schemes"),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		v.list, _ = v.list.Update(msg)
	case messages.AnalysisCompleted:
		if msg.Err == nil {
			v.SetResult(msg.Result)
		}
	case messages.ResultCleared:
		v.SetResult(nil)
	}
	return v, nil
}

// SetResult replaces the displayed recommendations.
func (v *View) SetResult(r *domain.AnalysisResult) {
	v.result = r
	if r == nil {
		v.list.SetSchemes(nil)
		return
	}
	v.list.SetSchemes(r.SchemeRecommendations)
}

// View renders the schemes.
func (v *View) View() string {
	if v.result == nil {
		return v.styles.Muted.Render("No analysis yet. Press ctrl+r to analyse the profile.")
	}
	return v.list.View() + "\n\n" + v.styles.Help.Render("[↑/↓] browse schemes")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height)
}

// Selected returns the scheme under the cursor, or nil.
func (v *View) Selected() *domain.Scheme {
	return v.list.SelectedScheme()
}
