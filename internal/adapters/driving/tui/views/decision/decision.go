// Package decision provides the final recommendation view for the TUI.
package decision

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
)

// View renders the final decision of the latest analysis.
type View struct {
	styles *styles.Styles
	result *domain.AnalysisResult
	width  int
	height int
}

// NewView creates a new decision view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, width: 80, height: 24}
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
	case messages.AnalysisCompleted:
		if msg.Err == nil {
			v.result = msg.Result
		}
	case messages.ResultCleared:
		v.result = nil
	}
	return v, nil
}

// SetResult replaces the displayed result.
func (v *View) SetResult(r *domain.AnalysisResult) {
	v.result = r
}

// View renders the decision.
func (v *View) View() string {
	if v.result == nil {
		return v.styles.Muted.Render("No analysis yet. Press ctrl+r to analyse the profile.")
	}

	d := v.result.FinalDecision
	var b strings.Builder

	if d.Headline != "" {
		b.WriteString(v.styles.Title.Render(d.Headline))
		b.WriteString("\n")
	}
	if d.Recommendation != "" {
		b.WriteString(v.styles.Subtitle.Render(d.Recommendation))
		b.WriteString("\n")
	}
	if d.Reasoning != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Width(v.width).Render(d.Reasoning))
		b.WriteString("\n")
	}

	facts := []struct{ label, value string }{
		{"Overall risk", d.OverallRiskLevel},
		{"Success", d.SuccessLikelihood},
		{"Key benefit", d.KeyBenefit},
	}
	if d.TimelineWeeks > 0 {
		facts = append(facts, struct{ label, value string }{"Timeline", fmt.Sprintf("%.0f weeks", d.TimelineWeeks)})
	}
	wrote := false
	for _, f := range facts {
		if f.value == "" {
			continue
		}
		if !wrote {
			b.WriteString("\n")
			wrote = true
		}
		b.WriteString(v.styles.Muted.Width(14).Render(f.label))
		b.WriteString(" ")
		b.WriteString(v.riskStyled(f.label, f.value))
		b.WriteString("\n")
	}

	if len(d.PriorityActions) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Priority actions"))
		b.WriteString("\n")
		for _, a := range d.PriorityActions {
			b.WriteString(v.styles.Normal.Render(fmt.Sprintf("  %d. %s", a.Step, a.Action)))
			b.WriteString("\n")
			if a.Why != "" {
				b.WriteString(v.styles.Muted.Render("     " + a.Why))
				b.WriteString("\n")
			}
		}
	}

	if d.WhatToAvoid != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Risk.Render("Avoid: " + d.WhatToAvoid))
		b.WriteString("\n")
	}

	if len(d.DocumentsNeeded) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Documents needed"))
		b.WriteString("\n")
		for _, doc := range d.DocumentsNeeded {
			b.WriteString(v.styles.Normal.Render("  - " + doc))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (v *View) riskStyled(label, value string) string {
	if label != "Overall risk" {
		return v.styles.Normal.Render(value)
	}
	return v.styles.Band(strings.ToLower(value)).Render(value)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
