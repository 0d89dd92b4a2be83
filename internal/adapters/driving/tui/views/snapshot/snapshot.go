// Package snapshot provides the financial snapshot view for the TUI.
package snapshot

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/meter"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/geometry"
)

// shareCircle is only used to derive slice fractions; the TUI draws
// shares as bars.
var shareCircle = geometry.Circle{CX: 50, CY: 50, R: 40}

// View renders the service's reading of the household's finances.
type View struct {
	styles *styles.Styles
	result *domain.AnalysisResult
	width  int
	height int
}

// NewView creates a new snapshot view.
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

func (v *View) barWidth() int {
	w := v.width - 40
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}

// View renders the snapshot.
func (v *View) View() string {
	if v.result == nil {
		return v.styles.Muted.Render("No analysis yet. Press ctrl+r to analyse the profile.")
	}

	fp := v.result.ProfileSummary
	width := v.barWidth()
	var b strings.Builder

	if fp.Summary != "" {
		b.WriteString(v.styles.Normal.Render(fp.Summary))
		b.WriteString("\n\n")
	}

	pct := geometry.ConfidencePercent(fp.Confidence)
	b.WriteString(meter.Row(v.styles, "Confidence", pct/100, width,
		string(geometry.ConfidenceBandFor(pct)), fmt.Sprintf("%s (%.0f%%)", orDash(fp.Confidence), pct)))
	b.WriteString("\n")
	if fp.ConfidenceReason != "" {
		b.WriteString(v.styles.Muted.Render("  " + fp.ConfidenceReason))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Income vs expenses (monthly)"))
	b.WriteString("\n")
	for _, bar := range geometry.IncomeExpenseBars(fp.IncomeVsExpense) {
		band := "good"
		if bar.Label == "Expenses" && bar.Fraction > 0.9 {
			band = "risk"
		}
		b.WriteString(meter.Row(v.styles, bar.Label, bar.Fraction, width, band, inr(bar.Value)))
		b.WriteString("\n")
	}

	if len(fp.RiskScores) > 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Risk scores"))
		b.WriteString("\n")
		for _, rs := range fp.RiskScores {
			score := geometry.ClampScore(rs.Score)
			b.WriteString(meter.Row(v.styles, rs.Label, geometry.GaugeFill(score), width,
				string(geometry.GaugeBand(score)), fmt.Sprintf("%.0f", score)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Expense breakdown"))
	b.WriteString("\n")
	segments := geometry.DonutSegments(shareCircle, fp.ExpenseBreakdown)
	if len(segments) == 0 {
		b.WriteString(v.styles.Muted.Render("  No expense data"))
		b.WriteString("\n")
	}
	for _, seg := range segments {
		b.WriteString(meter.Row(v.styles, seg.Label, seg.Fraction, width, "caution",
			fmt.Sprintf("%.0f%%", seg.Fraction*100)))
		b.WriteString("\n")
	}

	details := []struct{ label, value string }{
		{"Income pattern", fp.IncomePattern},
		{"Stability", fp.IncomeStability},
		{"Debt load", fp.DebtLoad},
		{"Vulnerability", fp.FinancialVulnerability},
	}
	b.WriteString("\n")
	for _, d := range details {
		if d.value == "" {
			continue
		}
		b.WriteString(v.styles.Muted.Width(16).Render(d.label))
		b.WriteString(" ")
		b.WriteString(v.styles.Normal.Render(d.value))
		b.WriteString("\n")
	}
	for _, risk := range fp.KeyFinancialRisks {
		b.WriteString(v.styles.Risk.Render("  ! " + risk))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

func inr(v float64) string {
	return "₹" + humanize.FormatFloat("#,###.", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
