// Package catalog provides the scheme catalog browser for the TUI.
package catalog

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/list"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// View browses the full scheme catalog, independent of any analysis.
type View struct {
	styles  *styles.Styles
	gateway driving.AnalysisGateway
	list    *list.SchemeList
	loading bool
	loaded  bool
	err     error
}

// NewView creates a new catalog view.
func NewView(s *styles.Styles, gateway driving.AnalysisGateway) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		gateway: gateway,
		list:    list.NewSchemeList(s, "Scheme catalog"),
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load fetches the catalog unless it is already loaded.
func (v *View) Load() tea.Cmd {
	if v.loaded || v.loading {
		return nil
	}
	return v.fetch()
}

func (v *View) fetch() tea.Cmd {
	if v.gateway == nil {
		v.err = fmt.Errorf("analysis gateway not available")
		return nil
	}
	v.loading = true
	v.err = nil
	gateway := v.gateway
	return func() tea.Msg {
		schemes, err := gateway.FetchSchemes(context.Background())
		return messages.SchemesLoaded{Schemes: schemes, Err: err}
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "r" && !v.loading {
			return v, v.fetch()
		}
		v.list, _ = v.list.Update(msg)

	case messages.SchemesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.loaded = true
			v.list.SetSchemes(msg.Schemes)
		}
	}
	return v, nil
}

// View renders the catalog.
func (v *View) View() string {
	help := v.styles.Help.Render("[↑/↓] browse  [r] reload")
	switch {
	case v.loading:
		return v.styles.Muted.Render("Loading scheme catalog...")
	case v.err != nil:
		return v.styles.Risk.Render(v.err.Error()) + "\n\n" + help
	}
	return v.list.View() + "\n\n" + help
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.list.SetDimensions(width, height)
}

// Loaded reports whether the catalog has been fetched.
func (v *View) Loaded() bool {
	return v.loaded
}
