// Package dashboard provides the landing view for the TUI.
package dashboard

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// View summarises the saved profile, the latest analysis and the
// document library.
type View struct {
	styles    *styles.Styles
	profiles  driving.ProfileService
	gateway   driving.AnalysisGateway
	documents driving.DocumentService
	width     int
	height    int
}

// NewView creates a new dashboard. documents may be nil.
func NewView(
	s *styles.Styles,
	profiles driving.ProfileService,
	gateway driving.AnalysisGateway,
	documents driving.DocumentService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		profiles:  profiles,
		gateway:   gateway,
		documents: documents,
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the view. The dashboard reads its services
// on every render, so it only tracks size.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		v.SetDimensions(msg.Width, msg.Height)
	}
	return v, nil
}

// View renders the dashboard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.renderProfile())
	b.WriteString("\n\n")
	b.WriteString(v.renderAnalysis())
	if v.documents != nil {
		b.WriteString("\n\n")
		b.WriteString(v.renderDocuments())
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] switch pane  [ctrl+r] analyse  [ctrl+n] start the wizard"))

	return b.String()
}

func (v *View) renderProfile() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Profile"))
	b.WriteString("\n")

	if v.profiles == nil {
		b.WriteString(v.styles.Muted.Render("No profile saved yet. Open Profile to fill one in."))
		return b.String()
	}
	p := v.profiles.Get()
	if p.Name == "" && p.MonthlyIncomeINR == 0 {
		b.WriteString(v.styles.Muted.Render("No profile saved yet. Open Profile to fill one in."))
		return b.String()
	}

	risks := make([]string, 0, len(p.RiskExposure))
	for _, r := range p.RiskExposure {
		risks = append(risks, r.Label())
	}
	rows := []struct{ label, value string }{
		{"Name", p.Name},
		{"Location", string(p.State)},
		{"Farm", fmt.Sprintf("%s acres of %s", humanize.Ftoa(p.LandAcres), p.CropType)},
		{"Income", fmt.Sprintf("₹%s/month (%s)", humanize.FormatFloat("#,###.", p.MonthlyIncomeINR), p.IncomeType)},
		{"Household", humanize.Comma(int64(p.HouseholdSize))},
		{"Debt", "₹" + humanize.FormatFloat("#,###.", p.ExistingDebtINR)},
		{"Risks", strings.Join(risks, ", ")},
	}
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		b.WriteString(v.styles.Muted.Width(12).Render(r.label))
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(r.value))
		b.WriteString("\n")
	}
	if !v.profiles.HasProfile() {
		b.WriteString(v.styles.Caution.Render("Profile is missing a name or income."))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderAnalysis() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Analysis"))
	b.WriteString("\n")

	if v.gateway == nil {
		b.WriteString(v.styles.Muted.Render("Analysis unavailable."))
		return b.String()
	}

	state := v.gateway.State(domain.OpAnalyse)
	switch state.Status {
	case domain.CallPending:
		b.WriteString(v.styles.Caution.Render("Analysing..."))
		return b.String()
	case domain.CallFailure:
		b.WriteString(v.styles.Risk.Render(state.Message()))
		return b.String()
	}

	r := v.gateway.Result()
	if r == nil {
		b.WriteString(v.styles.Muted.Render("No analysis yet."))
		return b.String()
	}

	d := r.FinalDecision
	if d.Headline != "" {
		b.WriteString(v.styles.Title.Render(d.Headline))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%d scheme(s) recommended", len(r.SchemeRecommendations))))
	if len(r.SchemeRecommendations) > 0 {
		b.WriteString(v.styles.Muted.Render(", top: " + r.SchemeRecommendations[0].Name))
	}
	if r.LoanAssessment.Assessed {
		label := r.LoanAssessment.LabelDisplay
		if label == "" {
			label = r.LoanAssessment.Label
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("Loan: " + label))
	}
	return b.String()
}

func (v *View) renderDocuments() string {
	docs := v.documents.List()

	var total int64
	flagged := 0
	for _, d := range docs {
		total += d.Size
		if d.RiskLevel != nil && *d.RiskLevel == domain.RiskLevelHigh {
			flagged++
		}
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Documents"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render(fmt.Sprintf("%d file(s), %s", len(docs), humanize.Bytes(uint64(total)))))
	if flagged > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Risk.Render(fmt.Sprintf("%d high-risk document(s)", flagged)))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
