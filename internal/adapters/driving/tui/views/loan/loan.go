// Package loan provides the loan suitability view for the TUI.
package loan

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/input"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// View shows a loan verdict. It starts from the verdict embedded in the
// latest analysis and can ask for a fresh one for a typed-in loan.
type View struct {
	styles   *styles.Styles
	profiles driving.ProfileService
	gateway  driving.AnalysisGateway

	purpose *input.Field
	amount  *input.Field

	assessment *domain.LoanAssessment
	pending    bool
	err        error
	width      int
	height     int
}

// NewView creates a new loan view.
func NewView(s *styles.Styles, profiles driving.ProfileService, gateway driving.AnalysisGateway) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:   s,
		profiles: profiles,
		gateway:  gateway,
		purpose:  input.NewField(s, "Loan purpose", "Drip irrigation"),
		amount:   input.NewNumberField(s, "Loan amount ₹", "80000"),
		width:    80,
		height:   24,
	}
	v.purpose.Focus()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetResult shows the loan verdict carried by an analysis result.
func (v *View) SetResult(r *domain.AnalysisResult) {
	if r == nil {
		v.assessment = nil
		return
	}
	la := r.LoanAssessment
	v.assessment = &la
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.LoanAssessed:
		v.pending = false
		v.err = msg.Err
		if msg.Err == nil {
			v.assessment = msg.Assessment
		}
		return v, nil

	case messages.AnalysisCompleted:
		if msg.Err == nil {
			v.SetResult(msg.Result)
		}
	case messages.ResultCleared:
		v.assessment = nil
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "down":
		if v.purpose.Focused() {
			v.purpose.Blur()
			v.amount.Focus()
		} else {
			v.amount.Blur()
			v.purpose.Focus()
		}
		return v, nil
	case "enter":
		if v.purpose.Focused() {
			v.purpose.Blur()
			v.amount.Focus()
			return v, nil
		}
		return v, v.assess()
	}

	var cmd tea.Cmd
	if v.purpose.Focused() {
		_, cmd = v.purpose.Update(msg)
	} else {
		_, cmd = v.amount.Update(msg)
	}
	return v, cmd
}

// Input combines the saved profile with the typed-in loan request.
func (v *View) Input() (domain.ProfileInput, error) {
	in := domain.ProfileInput{LoanPurpose: v.purpose.Value()}
	if v.profiles != nil {
		in.Profile = v.profiles.Get()
	}
	if v.amount.Value() != "" {
		amount, err := v.amount.Float()
		if err != nil {
			return domain.ProfileInput{}, err
		}
		in.LoanAmountINR = &amount
	}
	return in, nil
}

func (v *View) assess() tea.Cmd {
	in, err := v.Input()
	if err != nil {
		v.err = err
		return nil
	}
	if v.gateway == nil {
		v.err = fmt.Errorf("analysis gateway not available")
		return nil
	}

	v.pending = true
	v.err = nil
	gateway := v.gateway
	return func() tea.Msg {
		assessment, err := gateway.AssessLoan(context.Background(), in)
		return messages.LoanAssessed{Assessment: assessment, Err: err}
	}
}

// View renders the form and the latest verdict.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.purpose.View())
	b.WriteString("\n")
	b.WriteString(v.amount.View())
	b.WriteString("\n\n")

	switch {
	case v.pending:
		b.WriteString(v.styles.Caution.Render("Assessing loan..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Risk.Render(v.err.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderAssessment())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] field  [enter] assess"))

	return b.String()
}

func (v *View) renderAssessment() string {
	a := v.assessment
	if a == nil {
		return v.styles.Muted.Render("No loan verdict yet.")
	}
	if !a.Assessed {
		msg := a.Message
		if msg == "" {
			msg = "No loan was requested."
		}
		return v.styles.Muted.Render(msg)
	}

	var b strings.Builder
	label := a.LabelDisplay
	if label == "" {
		label = a.Label
	}
	b.WriteString(v.labelStyle(a.Label).Render(label))
	b.WriteString("\n")
	if a.Reasoning != "" {
		b.WriteString(v.styles.Normal.Width(v.width).Render(a.Reasoning))
		b.WriteString("\n")
	}

	facts := []struct{ label, value string }{
		{"Key risk", a.KeyRisk},
		{"Interest rate", a.EstimatedInterestRate},
		{"Strategy", a.RepaymentStrategy},
		{"Confidence", a.Confidence},
	}
	if a.RecommendedTenureMonths > 0 {
		facts = append(facts, struct{ label, value string }{"Tenure", fmt.Sprintf("%.0f months", a.RecommendedTenureMonths)})
	}
	for _, f := range facts {
		if f.value == "" {
			continue
		}
		b.WriteString(v.styles.Muted.Width(14).Render(f.label))
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(f.value))
		b.WriteString("\n")
	}
	if a.EMIConcern {
		detail := "EMI may strain monthly cash flow"
		if a.EMIConcernDetail != nil && *a.EMIConcernDetail != "" {
			detail = *a.EMIConcernDetail
		}
		b.WriteString(v.styles.Caution.Render("EMI concern: " + detail))
		b.WriteString("\n")
	}
	if a.SaferAlternative != nil && *a.SaferAlternative != "" {
		b.WriteString(v.styles.Good.Render("Safer alternative: " + *a.SaferAlternative))
		b.WriteString("\n")
	}
	for _, item := range a.Checklist {
		b.WriteString(v.styles.Normal.Render("  [ ] " + item))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) labelStyle(label string) lipgloss.Style {
	switch strings.ToLower(label) {
	case "suitable":
		return v.styles.Good
	case "not_recommended":
		return v.styles.Risk
	default:
		return v.styles.Caution
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.purpose.SetWidth(width)
	v.amount.SetWidth(width)
}

// Assessment returns the verdict on display, or nil.
func (v *View) Assessment() *domain.LoanAssessment {
	return v.assessment
}

// Pending reports whether an assessment call is in flight.
func (v *View) Pending() bool {
	return v.pending
}
