// Package profile provides the household profile form for the TUI.
package profile

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/components/input"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/messages"
	"github.com/fundwise/fundwise-cli/internal/adapters/driving/tui/styles"
	"github.com/fundwise/fundwise-cli/internal/core/domain"
	"github.com/fundwise/fundwise-cli/internal/core/ports/driving"
)

// control identifies one focusable row of the form.
type control int

const (
	ctrlName control = iota
	ctrlState
	ctrlLand
	ctrlCrop
	ctrlIncomeType
	ctrlIncome
	ctrlHousehold
	ctrlDebt
	ctrlRisks
	ctrlLoanPurpose
	ctrlLoanAmount
	controlCount
)

// View is the profile form. The loan fields travel with an analysis
// request but are never saved with the profile.
type View struct {
	styles  *styles.Styles
	service driving.ProfileService

	name        *input.Field
	land        *input.Field
	income      *input.Field
	household   *input.Field
	debt        *input.Field
	loanPurpose *input.Field
	loanAmount  *input.Field

	state      int
	crop       int
	incomeType int
	risks      map[domain.RiskExposure]bool
	riskCursor int

	image *string

	focus  control
	err    error
	saved  bool
	width  int
	height int
}

// NewView creates a new profile form.
func NewView(s *styles.Styles, service driving.ProfileService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:      s,
		service:     service,
		name:        input.NewField(s, "Name", "Farmer name"),
		land:        input.NewNumberField(s, "Land (acres)", "2.5"),
		income:      input.NewNumberField(s, "Monthly income ₹", "12000"),
		household:   input.NewNumberField(s, "Household size", "4"),
		debt:        input.NewNumberField(s, "Existing debt ₹", "0"),
		loanPurpose: input.NewField(s, "Loan purpose", "optional"),
		loanAmount:  input.NewNumberField(s, "Loan amount ₹", "optional"),
		risks:       make(map[domain.RiskExposure]bool),
		width:       80,
		height:      24,
	}
	v.Load(domain.DefaultProfile())
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load fills the form from a stored profile and clears the loan fields.
func (v *View) Load(p domain.Profile) {
	p = p.Normalise()

	v.name.SetValue(p.Name)
	v.land.SetFloat(p.LandAcres)
	v.income.SetFloat(p.MonthlyIncomeINR)
	v.household.SetFloat(float64(p.HouseholdSize))
	v.debt.SetFloat(p.ExistingDebtINR)
	v.loanPurpose.Reset()
	v.loanAmount.Reset()

	v.state = indexOf(domain.AllStates(), p.State)
	v.crop = indexOf(domain.AllCropTypes(), p.CropType)
	v.incomeType = indexOf(domain.AllIncomeTypes(), p.IncomeType)

	v.risks = make(map[domain.RiskExposure]bool, len(p.RiskExposure))
	for _, r := range p.RiskExposure {
		v.risks[r] = true
	}
	v.image = p.ProfileImage
	v.err = nil
	v.saved = false
	v.setFocus(ctrlName)
}

// Reload reads the stored profile back into the form.
func (v *View) Reload() {
	if v.service != nil {
		v.Load(v.service.Get())
	}
}

// Update handles messages for the form.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.ProfileSaved:
		v.err = msg.Err
		v.saved = msg.Err == nil
		return v, nil
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up":
		if v.focus > 0 {
			v.setFocus(v.focus - 1)
		}
		return v, nil
	case "down", "enter":
		if v.focus < controlCount-1 {
			v.setFocus(v.focus + 1)
		}
		return v, nil
	case "ctrl+s":
		return v, v.save()
	}

	switch v.focus {
	case ctrlState:
		v.state = cycle(v.state, len(domain.AllStates()), msg.String())
		return v, nil
	case ctrlCrop:
		v.crop = cycle(v.crop, len(domain.AllCropTypes()), msg.String())
		return v, nil
	case ctrlIncomeType:
		v.incomeType = cycle(v.incomeType, len(domain.AllIncomeTypes()), msg.String())
		return v, nil
	case ctrlRisks:
		v.handleRiskKey(msg.String())
		return v, nil
	}

	if field := v.focusedField(); field != nil {
		var cmd tea.Cmd
		_, cmd = field.Update(msg)
		v.saved = false
		return v, cmd
	}
	return v, nil
}

func (v *View) handleRiskKey(key string) {
	all := domain.AllRiskExposures()
	switch key {
	case "left", "h":
		if v.riskCursor > 0 {
			v.riskCursor--
		}
	case "right", "l":
		if v.riskCursor < len(all)-1 {
			v.riskCursor++
		}
	case " ", "x":
		r := all[v.riskCursor]
		v.risks[r] = !v.risks[r]
		v.saved = false
	}
}

// cycle moves a select index left or right, wrapping around.
func cycle(idx, n int, key string) int {
	switch key {
	case "left", "h":
		return (idx - 1 + n) % n
	case "right", "l", " ":
		return (idx + 1) % n
	}
	return idx
}

func (v *View) save() tea.Cmd {
	in, err := v.Input()
	if err == nil {
		err = in.CheckAmounts()
	}
	if err != nil {
		return func() tea.Msg { return messages.ProfileSaved{Err: err} }
	}
	if v.service == nil {
		return func() tea.Msg {
			return messages.ProfileSaved{Err: fmt.Errorf("profile service not available")}
		}
	}
	saved := v.service.Save(in)
	return func() tea.Msg { return messages.ProfileSaved{Profile: saved} }
}

// Input reads the form into a profile input. Only malformed numbers are
// rejected here; required fields are checked when the input is submitted.
func (v *View) Input() (domain.ProfileInput, error) {
	land, err := v.land.Float()
	if err != nil {
		return domain.ProfileInput{}, err
	}
	income, err := v.income.Float()
	if err != nil {
		return domain.ProfileInput{}, err
	}
	household, err := v.household.Float()
	if err != nil {
		return domain.ProfileInput{}, err
	}
	debt, err := v.debt.Float()
	if err != nil {
		return domain.ProfileInput{}, err
	}

	risks := make([]domain.RiskExposure, 0, len(v.risks))
	for _, r := range domain.AllRiskExposures() {
		if v.risks[r] {
			risks = append(risks, r)
		}
	}

	in := domain.ProfileInput{
		Profile: domain.Profile{
			Name:             v.name.Value(),
			State:            domain.AllStates()[v.state],
			LandAcres:        land,
			CropType:         domain.AllCropTypes()[v.crop],
			IncomeType:       domain.AllIncomeTypes()[v.incomeType],
			MonthlyIncomeINR: income,
			HouseholdSize:    int(household),
			ExistingDebtINR:  debt,
			RiskExposure:     risks,
			ProfileImage:     v.image,
		},
		LoanPurpose: v.loanPurpose.Value(),
	}

	if v.loanAmount.Value() != "" {
		amount, err := v.loanAmount.Float()
		if err != nil {
			return domain.ProfileInput{}, err
		}
		in.LoanAmountINR = &amount
	}
	return in, nil
}

func (v *View) focusedField() *input.Field {
	switch v.focus {
	case ctrlName:
		return v.name
	case ctrlLand:
		return v.land
	case ctrlIncome:
		return v.income
	case ctrlHousehold:
		return v.household
	case ctrlDebt:
		return v.debt
	case ctrlLoanPurpose:
		return v.loanPurpose
	case ctrlLoanAmount:
		return v.loanAmount
	}
	return nil
}

func (v *View) setFocus(c control) {
	if field := v.focusedField(); field != nil {
		field.Blur()
	}
	v.focus = c
	if field := v.focusedField(); field != nil {
		field.Focus()
	}
}

// View renders the form.
func (v *View) View() string {
	var b strings.Builder

	rows := []string{
		v.name.View(),
		v.renderSelect(ctrlState, "State", string(domain.AllStates()[v.state])),
		v.land.View(),
		v.renderSelect(ctrlCrop, "Crop", string(domain.AllCropTypes()[v.crop])),
		v.renderSelect(ctrlIncomeType, "Income type", string(domain.AllIncomeTypes()[v.incomeType])),
		v.income.View(),
		v.household.View(),
		v.debt.View(),
		v.renderRisks(),
		"",
		v.styles.Muted.Render("Loan request (sent with analysis, not saved)"),
		v.loanPurpose.View(),
		v.loanAmount.View(),
	}
	for _, row := range rows {
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Risk.Render(v.err.Error()))
		b.WriteString("\n")
	case v.saved:
		b.WriteString(v.styles.Good.Render("Profile saved"))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render("[↑/↓] field  [←/→] change  [space] toggle risk  [ctrl+s] save  [ctrl+r] analyse"))

	return b.String()
}

func (v *View) label(c control, text string) string {
	if v.focus == c {
		return v.styles.Subtitle.Width(18).Render(text)
	}
	return v.styles.Muted.Width(18).Render(text)
}

func (v *View) renderSelect(c control, label, value string) string {
	shown := v.styles.Normal.Render(value)
	if v.focus == c {
		shown = v.styles.Selected.Render("‹ " + value + " ›")
	}
	return v.label(c, label) + shown
}

func (v *View) renderRisks() string {
	parts := make([]string, 0, len(domain.AllRiskExposures()))
	for i, r := range domain.AllRiskExposures() {
		box := "[ ]"
		if v.risks[r] {
			box = "[x]"
		}
		item := box + " " + r.Label()
		switch {
		case v.focus == ctrlRisks && i == v.riskCursor:
			parts = append(parts, v.styles.Selected.Render(item))
		case v.risks[r]:
			parts = append(parts, v.styles.Caution.Render(item))
		default:
			parts = append(parts, v.styles.Normal.Render(item))
		}
	}
	return v.label(ctrlRisks, "Risk exposure") + strings.Join(parts, "  ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range []*input.Field{v.name, v.land, v.income, v.household, v.debt, v.loanPurpose, v.loanAmount} {
		f.SetWidth(width)
	}
}

// Err returns the last save error.
func (v *View) Err() error {
	return v.err
}

func indexOf[T comparable](values []T, v T) int {
	for i, have := range values {
		if have == v {
			return i
		}
	}
	return 0
}
